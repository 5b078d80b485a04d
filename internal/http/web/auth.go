package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/db"
	"github.com/joblane-hq/joblane/internal/http/middleware"
	"github.com/joblane-hq/joblane/internal/model"
	"github.com/joblane-hq/joblane/internal/session"
)

// AuthPublicModule mounts the register and login pages.
func AuthPublicModule(store db.Store, sessions *session.Manager) Module {
	ctl := newAuthController(store, sessions)
	return ModuleFunc(func(c *Controller) {
		c.PUBLIC_GET("/register", ctl.showRegister)
		c.PUBLIC_POST("/register", ctl.register)
		c.PUBLIC_GET("/login", ctl.showLogin)
		c.PUBLIC_POST("/login", ctl.login)
	})
}

// AuthSessionModule mounts endpoints that need an established session.
func AuthSessionModule(store db.Store, sessions *session.Manager) Module {
	ctl := newAuthController(store, sessions)
	return ModuleFunc(func(c *Controller) {
		c.POST("/logout", ctl.logout)
	})
}

type AuthController struct {
	store    db.Store
	sessions *session.Manager
}

func newAuthController(store db.Store, sessions *session.Manager) *AuthController {
	return &AuthController{store: store, sessions: sessions}
}

// GET /register
func (a *AuthController) showRegister(ctx *gin.Context) {
	render(ctx, a.sessions, http.StatusOK, "users/register", nil)
}

// POST /register
func (a *AuthController) register(ctx *gin.Context) {
	var form RegisterForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, a.sessions, http.StatusUnprocessableEntity, "users/register", gin.H{
			"Errors": formErrors(err),
			"Form":   form,
		})
		return
	}

	if existing, _ := a.store.GetUserByEmail(form.Email); existing != nil {
		log.Warn().Str("email", form.Email).Msg("registration email already taken")
		render(ctx, a.sessions, http.StatusUnprocessableEntity, "users/register", gin.H{
			"Errors": map[string]string{"email": "Email is already registered"},
			"Form":   form,
		})
		return
	}

	hashed, err := middleware.HashPassword(form.Password)
	if err != nil {
		render(ctx, a.sessions, http.StatusInternalServerError, "users/register", gin.H{
			"Errors": map[string]string{"form": "Could not create account"},
			"Form":   form,
		})
		return
	}

	user, err := a.store.CreateUser(form.Name, form.Email, hashed)
	if err != nil {
		// unique-email race falls through to the same field error
		render(ctx, a.sessions, http.StatusUnprocessableEntity, "users/register", gin.H{
			"Errors": map[string]string{"email": "Email is already registered"},
			"Form":   form,
		})
		return
	}

	if err := a.establishSession(ctx, user); err != nil {
		render(ctx, a.sessions, http.StatusInternalServerError, "users/register", gin.H{
			"Errors": map[string]string{"form": "Could not sign you in"},
			"Form":   form,
		})
		return
	}

	redirectWithFlash(ctx, a.sessions, "/", "User created and logged in!")
}

// GET /login
func (a *AuthController) showLogin(ctx *gin.Context) {
	render(ctx, a.sessions, http.StatusOK, "users/login", nil)
}

// POST /login
func (a *AuthController) login(ctx *gin.Context) {
	var form LoginForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, a.sessions, http.StatusUnprocessableEntity, "users/login", gin.H{
			"Errors": formErrors(err),
			"Form":   form,
		})
		return
	}

	// a missing user and a wrong password produce the same field error, so
	// the response does not reveal whether the email exists
	user, err := a.store.GetUserByEmail(form.Email)
	if err != nil || user == nil || !middleware.CheckPassword(user.HashedPassword, form.Password) {
		render(ctx, a.sessions, http.StatusUnprocessableEntity, "users/login", gin.H{
			"Errors": map[string]string{"email": middleware.ErrInvalidCredentials.Error()},
			"Form":   form,
		})
		return
	}

	if err := a.establishSession(ctx, user); err != nil {
		render(ctx, a.sessions, http.StatusInternalServerError, "users/login", gin.H{
			"Errors": map[string]string{"form": "Could not sign you in"},
			"Form":   form,
		})
		return
	}

	redirectWithFlash(ctx, a.sessions, "/", "You are now logged in!")
}

// POST /logout
func (a *AuthController) logout(ctx *gin.Context, _ *model.User) {
	if sid := middleware.SessionID(ctx); sid != "" {
		if err := a.sessions.Destroy(ctx.Request.Context(), sid); err != nil {
			log.Error().Err(err).Msg("failed to destroy session on logout")
		}
	}
	ctx.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// establishSession opens a session, sets the cookie, and makes the session
// visible to the rest of this request so the redirect can flash.
func (a *AuthController) establishSession(ctx *gin.Context, user *model.User) error {
	token, sid, err := a.sessions.Create(ctx.Request.Context(), user.ID)
	if err != nil {
		return err
	}
	ctx.SetCookie(session.CookieName, token, int(session.TTL.Seconds()), "/", "", false, true)
	ctx.Set("currentUser", user)
	ctx.Set("sessionID", sid)
	return nil
}
