package api

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"github.com/gofiber/fiber/v2"
)

func MapControllers(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		home := api.Group("/home").Name("Home API")
		{
			home.Get("/", getHome)
			home.Post("/posts/:postId/like", likePost)
			home.Post("/posts/:postId/expand", togglePostComments)
			home.Put("/posts/:postId/draft", updateCommentDraft)
			home.Post("/posts/:postId/comments", createComment)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPosts)
			posts.Post("/", createPost)
			posts.Patch("/:postId", editPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/like", likePost)
			posts.Post("/:postId/comments", createComment)
		}

		users := api.Group("/users").Name("Users API")
		{
			users.Get("/", listUsers)
			users.Get("/me", getCurrentUser)
			users.Post("/:userId/follow", followUser)
			users.Delete("/:userId/follow", unfollowUser)
		}

		auth := api.Group("/auth").Name("Auth API")
		{
			auth.Post("/login", login)
			auth.Post("/register", register)
			auth.Post("/logout", logout)
		}

		api.Get("/preferences", getPreferences)
		api.Put("/preferences", updatePreferences)
	}
}

// renderPost answers with the current view of the post, or nothing when it
// is no longer in the feed.
func renderPost(c *fiber.Ctx, status int) error {
	view, ok := exts.GetWorkspace(c).PostView(exts.GetSession(c), c.Params("postId"))
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(status).JSON(view)
}
