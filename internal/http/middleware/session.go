package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/db"
	"github.com/joblane-hq/joblane/internal/session"
)

// SessionMiddleware resolves the session cookie, loads the user, and sets
// "currentUser" and "sessionID" in the context. Requests without a valid
// session pass through as anonymous; RequireAuth is what blocks them.
func SessionMiddleware(sessions *session.Manager, store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, sid, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		user, err := store.GetUserByID(userID)
		if err != nil {
			log.Warn().Int("user", userID).Msg("session names a missing user")
			c.Next()
			return
		}

		c.Set("currentUser", user)
		c.Set("sessionID", sid)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
