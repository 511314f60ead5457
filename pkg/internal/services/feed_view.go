package services

import (
	"strings"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/samber/lo"
)

const (
	FallbackAuthorName = "Anonymous"
	FallbackTitle      = "Untitled"
	FallbackContent    = "No content"
)

// PostView is a post with every affordance the feed renders already derived.
type PostView struct {
	models.Post

	AuthorName       string  `json:"authorName"`
	AuthorInitial    string  `json:"authorInitial"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	ContentLength    int     `json:"contentLength,omitempty"`
	ContentTruncated bool    `json:"contentTruncated,omitempty"`
	CreatedAt        *string `json:"createdAt"`
	LikeCount        int     `json:"likeCount"`
	CommentCount     int     `json:"commentCount"`
	IsLiked          bool    `json:"isLiked"`
	IsLiking         bool    `json:"isLiking"`
	IsExpanded       bool    `json:"isExpanded"`
	CanDelete        bool    `json:"canDelete"`
	CommentDraft     string  `json:"commentDraft,omitempty"`
}

type FeedView struct {
	Posts  []PostView `json:"posts"`
	Status FeedStatus `json:"status"`
	Error  *string    `json:"error"`
}

// FeedViewState carries the transient per visitor bits the view mixes in.
type FeedViewState struct {
	Viewer   *models.Identity
	Liking   func(id string) bool
	Expanded string
	Drafts   func(id string) string
}

func NewPostView(post models.Post, state FeedViewState) PostView {
	var viewerID string
	if state.Viewer != nil {
		viewerID = state.Viewer.LocalID
	}

	author := strings.TrimSpace(post.AuthorName)
	if len(author) == 0 {
		author = FallbackAuthorName
	}

	view := PostView{
		Post:          post,
		AuthorName:    author,
		AuthorInitial: string([]rune(author)[:1]),
		Title:         lo.Ternary(len(post.Title) > 0, post.Title, FallbackTitle),
		Content:       lo.Ternary(len(post.Content) > 0, post.Content, FallbackContent),
		LikeCount:     len(post.Likes),
		CommentCount:  len(post.Comments),
		IsLiked:       post.LikedBy(viewerID),
		IsExpanded:    len(state.Expanded) > 0 && state.Expanded == post.ID,
		CanDelete:     len(viewerID) > 0 && post.UserID == viewerID,
	}
	if !post.CreatedAt.IsZero() {
		view.CreatedAt = lo.ToPtr(post.CreatedAt.Format(time.DateOnly))
	}
	if state.Liking != nil {
		view.IsLiking = state.Liking(post.ID)
	}
	if state.Drafts != nil && view.IsExpanded {
		view.CommentDraft = state.Drafts(post.ID)
	}
	return view
}

func NewFeedView(snapshot FeedSnapshot, state FeedViewState) FeedView {
	return FeedView{
		Posts: lo.Map(snapshot.Posts, func(item models.Post, _ int) PostView {
			return NewPostView(item, state)
		}),
		Status: snapshot.Status,
		Error:  snapshot.Error,
	}
}

const TruncatePostContentThreshold = 160

// TruncatePostContent shortens the content of collapsed posts for list
// previews. The open post is left whole.
func TruncatePostContent(view PostView) PostView {
	if view.IsExpanded {
		return view
	}
	runes := []rune(view.Content)
	view.ContentLength = len(runes)
	if len(runes) > TruncatePostContentThreshold {
		view.Content = string(runes[:TruncatePostContentThreshold]) + "..."
		view.ContentTruncated = true
	}
	return view
}

func (v FeedView) Truncated() FeedView {
	v.Posts = lo.Map(v.Posts, func(item PostView, _ int) PostView {
		return TruncatePostContent(item)
	})
	return v
}
