package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getPreferences(c *fiber.Ctx) error {
	visitor := exts.GetSession(c).VisitorID
	return c.JSON(services.Sessions.LoadPreferences(c.UserContext(), visitor))
}

func updatePreferences(c *fiber.Ctx) error {
	var data services.Preferences

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	visitor := exts.GetSession(c).VisitorID
	if err := services.Sessions.SavePreferences(c.UserContext(), visitor, data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(data)
}
