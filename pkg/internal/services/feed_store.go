package services

import (
	"sync"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/samber/lo"
)

type FeedStatus string

const (
	FeedStatusIdle    = FeedStatus("idle")
	FeedStatusLoading = FeedStatus("loading")
	FeedStatusError   = FeedStatus("error")
)

const FeedLoadFailedMessage = "Failed to fetch posts"

// FeedStore is the in-memory ordered post collection behind the feed views.
// It is only ever mutated from completion handlers of gateway calls, so every
// operation tolerates the store having changed shape since the call was issued.
type FeedStore struct {
	mutex  sync.RWMutex
	posts  []models.Post
	status FeedStatus
	err    *string
}

type FeedSnapshot struct {
	Posts  []models.Post `json:"posts"`
	Status FeedStatus    `json:"status"`
	Error  *string       `json:"error"`
}

func NewFeedStore() *FeedStore {
	return &FeedStore{status: FeedStatusIdle}
}

// StartLoad does not guard against a load already running, a second call
// simply marks the store loading again.
func (v *FeedStore) StartLoad() {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.status = FeedStatusLoading
	v.err = nil
}

func (v *FeedStore) LoadSucceeded(posts []models.Post) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.posts = append([]models.Post{}, posts...)
	v.status = FeedStatusIdle
}

// LoadFailed keeps whatever was loaded before visible.
func (v *FeedStore) LoadFailed(message string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.status = FeedStatusError
	v.err = &message
}

// ApplyUpdatedPost replaces the entry with the same id. Posts the store does
// not hold are dropped, this never appends.
func (v *FeedStore) ApplyUpdatedPost(post models.Post) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	_, idx, ok := lo.FindIndexOf(v.posts, func(item models.Post) bool {
		return item.ID == post.ID
	})
	if !ok {
		return false
	}
	v.posts[idx] = post
	return true
}

func (v *FeedStore) AppendPost(post models.Post) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.posts = append([]models.Post{post}, v.posts...)
}

func (v *FeedStore) RemovePost(id string) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	before := len(v.posts)
	v.posts = lo.Reject(v.posts, func(item models.Post, _ int) bool {
		return item.ID == id
	})
	return len(v.posts) != before
}

func (v *FeedStore) Get(id string) (models.Post, bool) {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	return lo.Find(v.posts, func(item models.Post) bool {
		return item.ID == id
	})
}

func (v *FeedStore) Snapshot() FeedSnapshot {
	v.mutex.RLock()
	defer v.mutex.RUnlock()
	snapshot := FeedSnapshot{
		Posts:  append([]models.Post{}, v.posts...),
		Status: v.status,
	}
	if v.err != nil {
		snapshot.Error = lo.ToPtr(*v.err)
	}
	return snapshot
}
