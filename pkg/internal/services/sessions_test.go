package services

import (
	"context"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/go-playground/assert/v2"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	raw, err := token.SignedString([]byte("test-secret"))
	assert.Equal(t, err, nil)
	return raw
}

func TestTokenExpiry(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	expiry, ok := TokenExpiry(signToken(t, expiresAt))
	assert.Equal(t, ok, true)
	assert.Equal(t, expiry.Equal(expiresAt), true)

	_, ok = TokenExpiry("")
	assert.Equal(t, ok, false)
	_, ok = TokenExpiry("not-a-jwt")
	assert.Equal(t, ok, false)
}

func TestSessionBeginRestoreEnd(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore(), time.Hour)
	ctx := context.Background()

	assert.Equal(t, manager.Restore(ctx, "visitor").IsAuthenticated(), false)

	identity := models.Identity{
		LocalID:   "u1",
		Email:     "me@example.com",
		Following: []string{"u2"},
		IDToken:   signToken(t, time.Now().Add(time.Hour)),
	}
	session, err := manager.Begin(ctx, "visitor", identity)
	assert.Equal(t, err, nil)
	assert.Equal(t, session.IsAuthenticated(), true)
	assert.Equal(t, session.Identity.ExpiresAt.IsZero(), false)

	restored := manager.Restore(ctx, "visitor")
	assert.Equal(t, restored.IsAuthenticated(), true)
	assert.Equal(t, restored.Viewer().LocalID, "u1")
	assert.Equal(t, restored.Viewer().Following, []string{"u2"})

	// another visitor does not see it
	assert.Equal(t, manager.Restore(ctx, "someone-else").IsAuthenticated(), false)

	assert.Equal(t, manager.End(ctx, restored), nil)
	assert.Equal(t, restored.IsAuthenticated(), false)
	assert.Equal(t, manager.Restore(ctx, "visitor").IsAuthenticated(), false)
}

func TestSessionRejectsExpiredIdentity(t *testing.T) {
	store := newMemorySessionStore()
	manager := NewSessionManager(store, time.Hour)
	ctx := context.Background()

	_, err := manager.Begin(ctx, "visitor", models.Identity{
		LocalID: "u1",
		IDToken: signToken(t, time.Now().Add(-time.Minute)),
	})
	assert.NotEqual(t, err, nil)

	// a stale record left in the store is discarded on restore
	_ = store.Save(ctx, manager.key("visitor", SessionUserKey), models.Identity{
		LocalID:   "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}, 0)
	assert.Equal(t, manager.Restore(ctx, "visitor").IsAuthenticated(), false)
	assert.Equal(t, len(store.items), 0)
}

func TestSessionPreferences(t *testing.T) {
	manager := NewSessionManager(newMemorySessionStore(), time.Hour)
	ctx := context.Background()

	assert.Equal(t, manager.LoadPreferences(ctx, "visitor").DarkMode, false)
	assert.Equal(t, manager.SavePreferences(ctx, "visitor", Preferences{DarkMode: true}), nil)
	assert.Equal(t, manager.LoadPreferences(ctx, "visitor").DarkMode, true)
	assert.Equal(t, manager.LoadPreferences(ctx, "other").DarkMode, false)
}

func TestAnonymousSessionIsNilSafe(t *testing.T) {
	var session *Session
	assert.Equal(t, session.IsAuthenticated(), false)
	assert.Equal(t, session.Viewer() == nil, true)

	ctx := context.Background()
	assert.Equal(t, session.Context(ctx) == ctx, true)
}
