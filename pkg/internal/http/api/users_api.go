package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func listUsers(c *fiber.Ctx) error {
	session := exts.GetSession(c)
	directory := exts.GetWorkspace(c).Directory

	_ = directory.Refresh(c.UserContext(), session)

	return c.JSON(directory.View())
}

func getCurrentUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	return c.JSON(exts.GetSession(c).Identity.Public())
}

func followUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	directory := exts.GetWorkspace(c).Directory

	_ = directory.Follow(c.UserContext(), session, c.Params("userId"))

	return c.JSON(directory.View())
}

func unfollowUser(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	directory := exts.GetWorkspace(c).Directory

	_ = directory.Unfollow(c.UserContext(), session, c.Params("userId"))

	return c.JSON(directory.View())
}
