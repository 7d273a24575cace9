package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	guestSessionName = "chaikada_guest"
	CtxSessionID     = "session_id"
)

// NewSessionStore builds the cookie store backing anonymous guest sessions.
func NewSessionStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false in dev, true in prod
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// GuestSession mints (or restores) the anonymous session id keying the guest
// cart. One session, one cart.
func GuestSession(store *sessions.CookieStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := store.Get(c.Request, guestSessionName)

		id, _ := session.Values["id"].(string)
		if id == "" {
			id = uuid.NewString()
			session.Values["id"] = id
			if err := session.Save(c.Request, c.Writer); err != nil {
				log.Printf("⚠️ Failed to save guest session: %v", err)
			}
		}

		c.Set(CtxSessionID, id)
		c.Next()
	}
}
