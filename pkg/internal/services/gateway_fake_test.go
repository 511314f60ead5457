package services

import (
	"context"
	"sync"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// fakeGateway answers from memory and counts every call it receives.
// LikePost blocks on likeGate when it is set.
type fakeGateway struct {
	mutex sync.Mutex
	calls map[string]int

	posts []models.Post
	users []models.User
	err   error

	likeGate    chan struct{}
	likeStarted chan struct{}
	likeErr     error
	commentErr  error
	followErr   error

	identity  models.Identity
	loginErr  error
	lastToken string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{calls: make(map[string]int)}
}

func (v *fakeGateway) record(ctx context.Context, name string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.calls[name]++
	v.lastToken = gap.CredentialFromContext(ctx)
}

func (v *fakeGateway) count(name string) int {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.calls[name]
}

func (v *fakeGateway) find(id string) (models.Post, bool) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return lo.Find(v.posts, func(item models.Post) bool {
		return item.ID == id
	})
}

func (v *fakeGateway) GetPosts(ctx context.Context) ([]models.Post, error) {
	v.record(ctx, "GetPosts")
	if v.err != nil {
		return nil, v.err
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return append([]models.Post{}, v.posts...), nil
}

func (v *fakeGateway) CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error) {
	v.record(ctx, "CreatePost")
	if v.err != nil {
		return models.Post{}, v.err
	}
	return models.Post{
		ID:       "new",
		UserID:   "me",
		Title:    draft.Title,
		Content:  draft.Content,
		Language: draft.Language,
	}, nil
}

func (v *fakeGateway) DeletePost(ctx context.Context, id string) error {
	v.record(ctx, "DeletePost")
	return v.err
}

func (v *fakeGateway) LikePost(ctx context.Context, id string) (models.Post, error) {
	v.record(ctx, "LikePost")
	if v.likeStarted != nil {
		v.likeStarted <- struct{}{}
	}
	if v.likeGate != nil {
		<-v.likeGate
	}
	if v.likeErr != nil {
		return models.Post{}, v.likeErr
	}
	post, _ := v.find(id)
	post.Likes = append(append([]string{}, post.Likes...), "u1")
	return post, nil
}

func (v *fakeGateway) AddComment(ctx context.Context, id, text string) (models.Post, error) {
	v.record(ctx, "AddComment")
	if v.commentErr != nil {
		return models.Post{}, v.commentErr
	}
	post, _ := v.find(id)
	post.Comments = append(append([]models.Comment{}, post.Comments...), models.Comment{
		UserID:  "u1",
		Content: text,
	})
	return post, nil
}

func (v *fakeGateway) UpdatePost(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	v.record(ctx, "UpdatePost")
	if v.err != nil {
		return models.Post{}, v.err
	}
	post, _ := v.find(id)
	if patch.Title != nil {
		post.Title = *patch.Title
	}
	if patch.Content != nil {
		post.Content = *patch.Content
	}
	return post, nil
}

func (v *fakeGateway) GetAllUsers(ctx context.Context) ([]models.User, error) {
	v.record(ctx, "GetAllUsers")
	if v.err != nil {
		return nil, v.err
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return append([]models.User{}, v.users...), nil
}

func (v *fakeGateway) FollowUser(ctx context.Context, id string) error {
	v.record(ctx, "FollowUser")
	return v.followErr
}

func (v *fakeGateway) UnfollowUser(ctx context.Context, id string) error {
	v.record(ctx, "UnfollowUser")
	return v.followErr
}

func (v *fakeGateway) LoginWithEmailPassword(ctx context.Context, email, password string) (models.Identity, error) {
	v.record(ctx, "LoginWithEmailPassword")
	return v.identity, v.loginErr
}

func (v *fakeGateway) Register(ctx context.Context, form models.Registration) (models.Identity, error) {
	v.record(ctx, "Register")
	return v.identity, v.loginErr
}

// memorySessionStore is a synchronous SessionStore, the ristretto backed one
// applies writes asynchronously.
type memorySessionStore struct {
	mutex sync.Mutex
	items map[string][]byte
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{items: make(map[string][]byte)}
}

func (v *memorySessionStore) Load(ctx context.Context, key string, out any) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	raw, ok := v.items[key]
	if !ok {
		return ErrSessionNotFound
	}
	return jsoniter.Unmarshal(raw, out)
}

func (v *memorySessionStore) Save(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := jsoniter.Marshal(value)
	if err != nil {
		return err
	}
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.items[key] = raw
	return nil
}

func (v *memorySessionStore) Remove(ctx context.Context, key string) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	delete(v.items, key)
	return nil
}
