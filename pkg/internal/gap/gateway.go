package gap

import (
	"context"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
)

// Gateway is the remote data API every view talks to.
// Each call is a single request/response; failures come back as *Error.
type Gateway interface {
	GetPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, draft models.PostDraft) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	LikePost(ctx context.Context, id string) (models.Post, error)
	AddComment(ctx context.Context, id, text string) (models.Post, error)
	UpdatePost(ctx context.Context, id string, patch models.PostPatch) (models.Post, error)

	GetAllUsers(ctx context.Context) ([]models.User, error)
	FollowUser(ctx context.Context, id string) error
	UnfollowUser(ctx context.Context, id string) error

	LoginWithEmailPassword(ctx context.Context, email, password string) (models.Identity, error)
	Register(ctx context.Context, form models.Registration) (models.Identity, error)
}

type credentialKey struct{}

// WithCredential attaches the viewer's id token to the context,
// the client sends it as a bearer token.
func WithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialKey{}, token)
}

func CredentialFromContext(ctx context.Context) string {
	raw, _ := ctx.Value(credentialKey{}).(string)
	return raw
}
