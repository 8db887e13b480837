// Package session issues the opaque per-user identifier that namespaces all
// stored state. The identifier lives in a signed client-side cookie; the
// server keeps no session record of its own.
package session

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cookieName = "readaloud_session"
	idKey      = "session_id"
)

// Middleware installs the cookie-backed session store, signed with secret
func Middleware(secret string) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
	})
	return sessions.Sessions(cookieName, store)
}

// GetOrCreateID returns the request's session id, minting and persisting a
// fresh one on first contact
func GetOrCreateID(c *gin.Context) string {
	sess := sessions.Default(c)

	if id, ok := sess.Get(idKey).(string); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	sess.Set(idKey, id)
	if err := sess.Save(); err != nil {
		log.Printf("[SESSION]: failed to persist session cookie: %v", err)
	}
	return id
}
