package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/db"
	"github.com/joblane-hq/joblane/internal/http/middleware"
	"github.com/joblane-hq/joblane/internal/http/web"
	"github.com/joblane-hq/joblane/internal/session"
)

func main() {
	// load .env if present; real deployments set env vars directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(nil)
	files := InitStorage(env)

	rdb := session.NewRedisClient(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	sessions := session.NewManager(rdb, env.SessionSecret)

	tmpl := web.LoadTemplates(env.TemplatesGlob)

	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, env, store, files, sessions, tmpl)

	// browsers only speak GET and POST; _method form fields carry PUT and
	// DELETE, and the rewrite has to happen before gin routes the request
	handler := middleware.MethodOverride(r)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := http.ListenAndServe(env.ServerAddress, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
