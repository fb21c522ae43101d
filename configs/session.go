package configs

import (
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
)

const SessionCookieName = "openvdm_session"

// SetupSession creates the in-memory store backing flash messages.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}
