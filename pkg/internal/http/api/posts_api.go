package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
)

func listPosts(c *fiber.Ctx) error {
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	_ = workspace.LoadPosts(c.UserContext(), session)

	view := workspace.FeedView(session)
	if c.QueryBool("truncate", false) {
		view = view.Truncated()
	}

	return c.JSON(view)
}

func createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	var data struct {
		Title   string `json:"title" validate:"max=256"`
		Content string `json:"content"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	workspace.Composer.Input(data.Title, data.Content)
	if !workspace.SubmitPost(c.UserContext(), session) {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(workspace.FeedView(session))
}

func editPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	var data models.PostPatch

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	_ = workspace.UpdatePost(c.UserContext(), session, c.Params("postId"), data)

	return renderPost(c, fiber.StatusOK)
}

func deletePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	_ = workspace.DeletePost(c.UserContext(), session, c.Params("postId"))

	return c.JSON(workspace.FeedView(session))
}
