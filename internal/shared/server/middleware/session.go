package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionIDKey = "sessionId"

	// SessionCookie is the cookie carrying the wizard session identifier.
	SessionCookie = "cvwizard_session"
)

// Session ensures every request carries a session identifier. A missing or
// malformed cookie gets a fresh UUID, issued on the response.
func Session(cookieMaxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !validSessionID(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, cookieMaxAge, "/", "", secure, true)
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

func validSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
