package web

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/http/middleware"
	"github.com/joblane-hq/joblane/internal/model"
	"github.com/joblane-hq/joblane/internal/session"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig tells the web package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Auth       bool              // redirect anonymous requests to /login
	Middleware []gin.HandlerFunc // optional additional middleware
}

// AuthedHandler is a page handler that needs the signed-in user.
type AuthedHandler func(ctx *gin.Context, user *model.User)

// Controller wraps a gin group. The plain verb methods require an
// authenticated session and redirect to /login otherwise; the PUBLIC_
// variants mount bare gin handlers.
type Controller struct {
	Group *gin.RouterGroup
}

func resolveAuthed(h AuthedHandler) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.CurrentUser(ctx)
		if !ok {
			ctx.Redirect(http.StatusSeeOther, "/login")
			ctx.Abort()
			return
		}
		h(ctx, user)
	}
}

func (c *Controller) GET(path string, h AuthedHandler)    { c.Group.GET(path, resolveAuthed(h)) }
func (c *Controller) POST(path string, h AuthedHandler)   { c.Group.POST(path, resolveAuthed(h)) }
func (c *Controller) PUT(path string, h AuthedHandler)    { c.Group.PUT(path, resolveAuthed(h)) }
func (c *Controller) DELETE(path string, h AuthedHandler) { c.Group.DELETE(path, resolveAuthed(h)) }

func (c *Controller) PUBLIC_GET(path string, h gin.HandlerFunc)  { c.Group.GET(path, h) }
func (c *Controller) PUBLIC_POST(path string, h gin.HandlerFunc) { c.Group.POST(path, h) }

// MountGroup mounts one or more Modules under a prefix with optional auth.
func MountGroup(parent gin.IRoutes, cfg GroupConfig, modules ...Module) {
	var grp *gin.RouterGroup

	switch v := parent.(type) {
	case *gin.Engine:
		grp = v.Group(cfg.Prefix)
	case *gin.RouterGroup:
		if cfg.Prefix != "" {
			grp = v.Group(cfg.Prefix)
		} else {
			grp = v
		}
	default:
		log.Fatal().Str("type", fmt.Sprintf("%T", parent)).Msg("web.MountGroup: unsupported router type")
	}

	for _, mw := range cfg.Middleware {
		grp.Use(mw)
	}
	if cfg.Auth {
		grp.Use(middleware.RequireAuth())
	}

	controller := &Controller{Group: grp}

	for _, m := range modules {
		m.Mount(controller)
	}
}

// render executes a template with the ambient view state every page shows:
// the signed-in user and the pending flash message, which pops here so it
// displays exactly once.
func render(c *gin.Context, sessions *session.Manager, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.CurrentUser(c); ok {
		data["CurrentUser"] = user
	}
	if sid := middleware.SessionID(c); sid != "" {
		if msg := sessions.PopFlash(c.Request.Context(), sid); msg != "" {
			data["Flash"] = msg
		}
	}
	c.HTML(status, name, data)
}

// redirectWithFlash stores a one-time confirmation and sends the browser on.
func redirectWithFlash(c *gin.Context, sessions *session.Manager, location, message string) {
	if sid := middleware.SessionID(c); sid != "" && message != "" {
		sessions.SetFlash(c.Request.Context(), sid, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}
