package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/securecookie"
)

const (
	sessionCookieName = "storefront_session"
	sessionCtxKey     = "storefront.session"
	sessionMaxAge     = 30 * 24 * 60 * 60
)

// sessionMiddleware resolves the shopper's session from the signed cookie,
// issuing a new one when it is missing or does not verify.
func sessionMiddleware(codec *securecookie.SecureCookie, sessions Sessions, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(sessionCookieName); err == nil {
			if err := codec.Decode(sessionCookieName, raw, &id); err != nil {
				logger.Printf("session: rejected cookie error=%v", err)
				id = ""
			}
		}
		if id == "" {
			id = session.NewID()
			encoded, err := codec.Encode(sessionCookieName, id)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not issue session"})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookieName, encoded, sessionMaxAge, "/", "", false, true)
		}

		s, err := sessions.Open(c.Request.Context(), id)
		if err != nil {
			logger.Printf("session: open id=%s error=%v", id, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not open session"})
			return
		}
		c.Set(sessionCtxKey, s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}

func (h *handlers) resetSession(c *gin.Context) {
	s := currentSession(c)
	if err := h.sessions.Close(c.Request.Context(), s.ID); err != nil {
		writeError(c, err)
		return
	}
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
