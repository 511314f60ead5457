package services

import (
	"context"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// Workspace is everything one visitor has loaded, the equivalent of an open
// browser tab. The home and posts views share the same feed store.
type Workspace struct {
	VisitorID string

	Feed      *FeedStore
	Likes     *LikeTracker
	Directory *Directory
	Composer  *PostComposer

	gw       gap.Gateway
	mutex    sync.Mutex
	comments map[string]*CommentComposer
	expanded string
	lastSeen time.Time
}

func NewWorkspace(visitor string, gw gap.Gateway) *Workspace {
	return &Workspace{
		VisitorID: visitor,
		Feed:      NewFeedStore(),
		Likes:     NewLikeTracker(),
		Directory: NewDirectory(gw),
		Composer:  NewPostComposer(),
		gw:        gw,
		comments:  make(map[string]*CommentComposer),
		lastSeen:  time.Now(),
	}
}

func (v *Workspace) touch() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.lastSeen = time.Now()
}

func (v *Workspace) LastSeen() time.Time {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.lastSeen
}

// LoadHome fetches every post and keeps the ones the viewer should see.
func (v *Workspace) LoadHome(ctx context.Context, session *Session) error {
	v.Feed.StartLoad()
	posts, err := v.gw.GetPosts(session.Context(ctx))
	if err != nil {
		log.Error().Err(err).Str("visitor", v.VisitorID).Msg("An error occurred when fetching posts...")
		v.Feed.LoadFailed(FeedLoadFailedMessage)
		return err
	}

	filtered := FilterFollowedPosts(posts, session.Viewer())
	log.Debug().Int("fetched", len(posts)).Int("kept", len(filtered)).Msg("Fetched followed posts.")
	v.Feed.LoadSucceeded(filtered)
	return nil
}

// LoadPosts fetches every post unfiltered.
func (v *Workspace) LoadPosts(ctx context.Context, session *Session) error {
	v.Feed.StartLoad()
	posts, err := v.gw.GetPosts(session.Context(ctx))
	if err != nil {
		log.Error().Err(err).Str("visitor", v.VisitorID).Msg("An error occurred when fetching posts...")
		v.Feed.LoadFailed(FeedLoadFailedMessage)
		return err
	}
	v.Feed.LoadSucceeded(posts)
	return nil
}

func (v *Workspace) Like(ctx context.Context, session *Session, id string) error {
	return v.Likes.Like(session.Context(ctx), v.gw, v.Feed, id)
}

// ToggleExpanded opens the comments of a post, or closes them when the post
// is already the open one. Only one post is open at a time.
func (v *Workspace) ToggleExpanded(id string) string {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.expanded == id {
		v.expanded = ""
	} else {
		v.expanded = id
	}
	return v.expanded
}

func (v *Workspace) Expanded() string {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.expanded
}

func (v *Workspace) CommentComposer(postID string) *CommentComposer {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	composer, ok := v.comments[postID]
	if !ok {
		composer = NewCommentComposer(postID)
		v.comments[postID] = composer
	}
	return composer
}

func (v *Workspace) commentDraft(postID string) string {
	v.mutex.Lock()
	composer, ok := v.comments[postID]
	v.mutex.Unlock()
	if !ok {
		return ""
	}
	return composer.Draft()
}

// SubmitComment submits the post's comment draft. It reports false, without
// calling the gateway, when the draft is blank.
func (v *Workspace) SubmitComment(ctx context.Context, session *Session, postID string) bool {
	return v.CommentComposer(postID).Submit(func(postID, text string) {
		_ = v.AddComment(ctx, session, postID, text)
	})
}

// AddComment sends the comment and reconciles the returned post.
// A failure is logged and leaves nothing behind.
func (v *Workspace) AddComment(ctx context.Context, session *Session, postID, text string) error {
	post, err := v.gw.AddComment(session.Context(ctx), postID, text)
	if err != nil {
		log.Error().Err(err).Str("post", postID).Msg("An error occurred when adding comment...")
		return err
	}
	v.Feed.ApplyUpdatedPost(post)
	return nil
}

// SubmitPost submits the new post form. A failed creation is surfaced as
// the feed error.
func (v *Workspace) SubmitPost(ctx context.Context, session *Session) bool {
	return v.Composer.Submit(func(draft models.PostDraft) {
		post, err := v.gw.CreatePost(session.Context(ctx), draft)
		if err != nil {
			log.Error().Err(err).Msg("An error occurred when creating post...")
			v.Feed.LoadFailed(errorMessage(err))
			return
		}
		v.Feed.AppendPost(post)
	})
}

func (v *Workspace) UpdatePost(ctx context.Context, session *Session, id string, patch models.PostPatch) error {
	post, err := v.gw.UpdatePost(session.Context(ctx), id, patch)
	if err != nil {
		log.Error().Err(err).Str("post", id).Msg("An error occurred when updating post...")
		return err
	}
	v.Feed.ApplyUpdatedPost(post)
	return nil
}

func (v *Workspace) DeletePost(ctx context.Context, session *Session, id string) error {
	if err := v.gw.DeletePost(session.Context(ctx), id); err != nil {
		log.Error().Err(err).Str("post", id).Msg("An error occurred when deleting post...")
		return err
	}
	v.Feed.RemovePost(id)
	return nil
}

func (v *Workspace) viewState(session *Session) FeedViewState {
	return FeedViewState{
		Viewer:   session.Viewer(),
		Liking:   v.Likes.IsLiking,
		Expanded: v.Expanded(),
		Drafts:   v.commentDraft,
	}
}

func (v *Workspace) FeedView(session *Session) FeedView {
	return NewFeedView(v.Feed.Snapshot(), v.viewState(session))
}

// PostView renders a single post of the feed, false when it is not loaded.
func (v *Workspace) PostView(session *Session, id string) (PostView, bool) {
	post, ok := v.Feed.Get(id)
	if !ok {
		return PostView{}, false
	}
	return NewPostView(post, v.viewState(session)), true
}

var Workspaces *WorkspaceRegistry

// WorkspaceRegistry keeps one workspace per visitor until it goes idle.
type WorkspaceRegistry struct {
	mutex sync.Mutex
	gw    gap.Gateway
	idle  time.Duration
	items map[string]*Workspace
}

func NewWorkspaceRegistry(gw gap.Gateway, idle time.Duration) *WorkspaceRegistry {
	return &WorkspaceRegistry{
		gw:    gw,
		idle:  idle,
		items: make(map[string]*Workspace),
	}
}

func (v *WorkspaceRegistry) Get(visitor string) *Workspace {
	v.mutex.Lock()
	workspace, ok := v.items[visitor]
	if !ok {
		workspace = NewWorkspace(visitor, v.gw)
		v.items[visitor] = workspace
	}
	v.mutex.Unlock()

	workspace.touch()
	return workspace
}

func (v *WorkspaceRegistry) Drop(visitor string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	delete(v.items, visitor)
}

func (v *WorkspaceRegistry) Count() int {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return len(v.items)
}

// Sweep forgets the workspaces nobody touched for longer than the idle
// duration. Requests still running against them finish on their own copy.
func (v *WorkspaceRegistry) Sweep() int {
	if v.idle <= 0 {
		return 0
	}

	deadline := time.Now().Add(-v.idle)

	v.mutex.Lock()
	defer v.mutex.Unlock()
	var count int
	for visitor, workspace := range v.items {
		if workspace.LastSeen().Before(deadline) {
			delete(v.items, visitor)
			count++
		}
	}
	return count
}

func DoWorkspaceSweep() {
	if Workspaces == nil {
		return
	}
	if count := Workspaces.Sweep(); count > 0 {
		log.Info().Int("count", count).Msg("Swept idle workspaces.")
	}
}
