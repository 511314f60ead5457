package services

import (
	"strings"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/go-playground/assert/v2"
)

func TestPostViewFallbacks(t *testing.T) {
	view := NewPostView(models.Post{ID: "1", UserID: "u2"}, FeedViewState{})

	assert.Equal(t, view.AuthorName, FallbackAuthorName)
	assert.Equal(t, view.AuthorInitial, "A")
	assert.Equal(t, view.Title, FallbackTitle)
	assert.Equal(t, view.Content, FallbackContent)
	assert.Equal(t, view.CreatedAt == nil, true)
	assert.Equal(t, view.CanDelete, false)
	assert.Equal(t, view.IsLiked, false)
}

func TestPostViewDerivedFlags(t *testing.T) {
	post := models.Post{
		ID:         "1",
		UserID:     "u1",
		AuthorName: "émilie",
		CreatedAt:  time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),
		Likes:      []string{"u1", "u3"},
		Comments:   []models.Comment{{UserID: "u3", Content: "hey"}},
	}
	state := FeedViewState{
		Viewer:   &models.Identity{LocalID: "u1"},
		Liking:   func(id string) bool { return id == "1" },
		Expanded: "1",
		Drafts:   func(id string) string { return "draft of " + id },
	}

	view := NewPostView(post, state)
	assert.Equal(t, view.AuthorInitial, "é")
	assert.Equal(t, *view.CreatedAt, "2024-03-09")
	assert.Equal(t, view.LikeCount, 2)
	assert.Equal(t, view.CommentCount, 1)
	assert.Equal(t, view.IsLiked, true)
	assert.Equal(t, view.IsLiking, true)
	assert.Equal(t, view.IsExpanded, true)
	assert.Equal(t, view.CanDelete, true)
	assert.Equal(t, view.CommentDraft, "draft of 1")
}

func TestTruncatePostContent(t *testing.T) {
	long := strings.Repeat("ab", TruncatePostContentThreshold)
	feed := NewFeedView(FeedSnapshot{
		Posts: []models.Post{
			{ID: "1", Content: long},
			{ID: "2", Content: "short"},
			{ID: "3", Content: long},
		},
		Status: FeedStatusIdle,
	}, FeedViewState{Expanded: "3"})

	truncated := feed.Truncated()
	assert.Equal(t, truncated.Posts[0].ContentTruncated, true)
	assert.Equal(t, len([]rune(truncated.Posts[0].Content)), TruncatePostContentThreshold+3)
	assert.Equal(t, truncated.Posts[0].ContentLength, len(long))
	assert.Equal(t, truncated.Posts[1].ContentTruncated, false)
	assert.Equal(t, truncated.Posts[1].Content, "short")
	assert.Equal(t, truncated.Posts[2].Content, long)

	// the source view is left alone
	assert.Equal(t, feed.Posts[0].Content, long)
}

func TestTruncatePostContentAtThreshold(t *testing.T) {
	exact := strings.Repeat("é", TruncatePostContentThreshold)
	view := TruncatePostContent(PostView{Content: exact})
	assert.Equal(t, view.ContentTruncated, false)
	assert.Equal(t, view.Content, exact)
	assert.Equal(t, view.ContentLength, TruncatePostContentThreshold)

	over := exact + "x"
	view = TruncatePostContent(PostView{Content: over})
	assert.Equal(t, view.ContentTruncated, true)
	assert.Equal(t, view.Content, exact+"...")
	assert.Equal(t, view.ContentLength, TruncatePostContentThreshold+1)
}

func TestDetectLanguage(t *testing.T) {
	languageDetector = nil
	assert.Equal(t, DetectLanguage("Hello there, how are you doing today?"), "")

	InitializeLanguageDetector([]string{"en", "fr"})
	defer func() { languageDetector = nil }()

	assert.Equal(t, DetectLanguage("The weather is lovely today and I am going for a long walk."), "en")
	assert.Equal(t, DetectLanguage("Il fait très beau aujourd'hui et je vais faire une longue promenade."), "fr")
	assert.Equal(t, DetectLanguage("   "), "")
}
