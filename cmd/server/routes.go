package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joblane-hq/joblane/internal/db"
	"github.com/joblane-hq/joblane/internal/http/middleware"
	"github.com/joblane-hq/joblane/internal/http/web"
	"github.com/joblane-hq/joblane/internal/session"
	"github.com/joblane-hq/joblane/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, files storage.Storage, sessions *session.Manager, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestLogger())
	r.Use(middleware.SessionMiddleware(sessions, store))

	web.MountGroup(r, web.GroupConfig{},
		web.AuthPublicModule(store, sessions),
		web.ListingModule(store, files, sessions),
	)

	web.MountGroup(r, web.GroupConfig{
		Auth: true,
	},
		web.AuthSessionModule(store, sessions),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", env.UploadsDir)
	}
	r.Static("/static", "./web/static")
}
