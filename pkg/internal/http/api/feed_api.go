package api

import (
	"errors"

	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func getHome(c *fiber.Ctx) error {
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	_ = workspace.LoadHome(c.UserContext(), session)

	view := workspace.FeedView(session)
	if c.QueryBool("truncate", false) {
		view = view.Truncated()
	}

	return c.JSON(view)
}

func likePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	err := workspace.Like(c.UserContext(), session, c.Params("postId"))
	if errors.Is(err, services.ErrLikeInFlight) {
		return renderPost(c, fiber.StatusAccepted)
	}

	return renderPost(c, fiber.StatusOK)
}

func togglePostComments(c *fiber.Ctx) error {
	exts.GetWorkspace(c).ToggleExpanded(c.Params("postId"))
	return renderPost(c, fiber.StatusOK)
}

func updateCommentDraft(c *fiber.Ctx) error {
	var data struct {
		Content string `json:"content"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	composer := exts.GetWorkspace(c).CommentComposer(c.Params("postId"))
	composer.Input(data.Content)

	return c.JSON(fiber.Map{
		"content": composer.Draft(),
	})
}

func createComment(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	session := exts.GetSession(c)
	workspace := exts.GetWorkspace(c)

	var data struct {
		Content *string `json:"content"`
	}

	if len(c.Body()) > 0 {
		if err := exts.BindAndValidate(c, &data); err != nil {
			return err
		}
	}

	id := c.Params("postId")
	if data.Content != nil {
		workspace.CommentComposer(id).Input(*data.Content)
	}

	if !workspace.SubmitComment(c.UserContext(), session, id) {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return renderPost(c, fiber.StatusOK)
}
