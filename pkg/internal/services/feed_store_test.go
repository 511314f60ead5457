package services

import (
	"testing"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/go-playground/assert/v2"
)

func samplePosts(ids ...string) []models.Post {
	posts := make([]models.Post, len(ids))
	for idx, id := range ids {
		posts[idx] = models.Post{ID: id, UserID: "author-" + id, Title: "Post " + id}
	}
	return posts
}

func postIDs(posts []models.Post) []string {
	ids := make([]string, len(posts))
	for idx, post := range posts {
		ids[idx] = post.ID
	}
	return ids
}

func TestFeedStoreLoadLifecycle(t *testing.T) {
	store := NewFeedStore()
	assert.Equal(t, store.Snapshot().Status, FeedStatusIdle)

	store.StartLoad()
	assert.Equal(t, store.Snapshot().Status, FeedStatusLoading)

	store.LoadSucceeded(samplePosts("1", "2"))
	snapshot := store.Snapshot()
	assert.Equal(t, snapshot.Status, FeedStatusIdle)
	assert.Equal(t, snapshot.Error == nil, true)
	assert.Equal(t, postIDs(snapshot.Posts), []string{"1", "2"})
}

func TestFeedStoreFailureKeepsStalePosts(t *testing.T) {
	store := NewFeedStore()
	store.LoadSucceeded(samplePosts("1", "2"))

	store.StartLoad()
	store.LoadFailed(FeedLoadFailedMessage)

	snapshot := store.Snapshot()
	assert.Equal(t, snapshot.Status, FeedStatusError)
	assert.Equal(t, *snapshot.Error, FeedLoadFailedMessage)
	assert.Equal(t, postIDs(snapshot.Posts), []string{"1", "2"})

	store.StartLoad()
	assert.Equal(t, store.Snapshot().Error == nil, true)
}

func TestFeedStoreApplyUpdatedPostNeverAppends(t *testing.T) {
	store := NewFeedStore()
	store.LoadSucceeded(samplePosts("1", "2", "3"))

	updated := models.Post{ID: "2", Title: "Edited", Likes: []string{"u1"}}
	assert.Equal(t, store.ApplyUpdatedPost(updated), true)

	snapshot := store.Snapshot()
	assert.Equal(t, postIDs(snapshot.Posts), []string{"1", "2", "3"})
	assert.Equal(t, snapshot.Posts[1].Title, "Edited")
	assert.Equal(t, len(snapshot.Posts[1].Likes), 1)

	assert.Equal(t, store.ApplyUpdatedPost(models.Post{ID: "404"}), false)
	assert.Equal(t, len(store.Snapshot().Posts), 3)
}

func TestFeedStoreRemoveThenApplyStaysAbsent(t *testing.T) {
	store := NewFeedStore()
	store.LoadSucceeded(samplePosts("1", "2"))

	assert.Equal(t, store.RemovePost("1"), true)
	assert.Equal(t, store.RemovePost("1"), false)

	// a late response for the removed post must not resurrect it
	assert.Equal(t, store.ApplyUpdatedPost(models.Post{ID: "1"}), false)
	assert.Equal(t, postIDs(store.Snapshot().Posts), []string{"2"})

	_, ok := store.Get("1")
	assert.Equal(t, ok, false)
}

func TestFeedStoreAppendPostInsertsAtHead(t *testing.T) {
	store := NewFeedStore()
	store.LoadSucceeded(samplePosts("1", "2"))

	store.AppendPost(models.Post{ID: "0"})
	assert.Equal(t, postIDs(store.Snapshot().Posts), []string{"0", "1", "2"})
}

func TestFeedStoreSnapshotIsACopy(t *testing.T) {
	store := NewFeedStore()
	store.LoadSucceeded(samplePosts("1"))

	snapshot := store.Snapshot()
	snapshot.Posts[0].Title = "Mutated"

	post, ok := store.Get("1")
	assert.Equal(t, ok, true)
	assert.Equal(t, post.Title, "Post 1")
}
