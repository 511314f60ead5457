package exts

import (
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	visitorLocalKey = "visitor"
	sessionLocalKey = "session"
)

// LinkSession identifies the visitor by cookie and restores its session,
// a new visitor id is issued when the cookie is missing or malformed.
func LinkSession(c *fiber.Ctx) error {
	name := viper.GetString("sessions.cookie")
	visitor := c.Cookies(name)
	if _, err := uuid.Parse(visitor); err != nil {
		visitor = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    visitor,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(365 * 24 * time.Hour),
		})
	}

	c.Locals(visitorLocalKey, visitor)
	c.Locals(sessionLocalKey, services.Sessions.Restore(c.UserContext(), visitor))

	return c.Next()
}

func GetSession(c *fiber.Ctx) *services.Session {
	if session, ok := c.Locals(sessionLocalKey).(*services.Session); ok {
		return session
	}
	visitor, _ := c.Locals(visitorLocalKey).(string)
	return &services.Session{VisitorID: visitor}
}

func GetWorkspace(c *fiber.Ctx) *services.Workspace {
	return services.Workspaces.Get(GetSession(c).VisitorID)
}

func EnsureAuthenticated(c *fiber.Ctx) error {
	if !GetSession(c).IsAuthenticated() {
		return fiber.NewError(fiber.StatusUnauthorized, services.ErrUnauthenticated.Error())
	}
	return nil
}
