package services

import (
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/samber/lo"
)

// FilterFollowedPosts keeps the posts written by someone the viewer follows
// or by the viewer. The gateway order is preserved.
func FilterFollowedPosts(posts []models.Post, viewer *models.Identity) []models.Post {
	if viewer == nil {
		return []models.Post{}
	}
	return lo.Filter(posts, func(item models.Post, _ int) bool {
		return item.UserID == viewer.LocalID || lo.Contains(viewer.Following, item.UserID)
	})
}
