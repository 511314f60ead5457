package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	SessionUserKey        = "user"
	SessionPreferencesKey = "darkMode"
)

var (
	ErrSessionNotFound = errors.New("session record not found")
	ErrUnauthenticated = errors.New("you need to sign in first")
)

// SessionStore is the visitor local key value store the identity is kept in.
type SessionStore interface {
	Load(ctx context.Context, key string, out any) error
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// Session is the viewer of a single visitor. It is restored when a view mounts
// and may be stale compared with what the gateway knows.
type Session struct {
	VisitorID string
	Identity  *models.Identity
}

func (v *Session) IsAuthenticated() bool {
	return v != nil && v.Identity != nil
}

func (v *Session) Viewer() *models.Identity {
	if v == nil {
		return nil
	}
	return v.Identity
}

// Context attaches the viewer credential used by the gateway client.
func (v *Session) Context(ctx context.Context) context.Context {
	if !v.IsAuthenticated() {
		return ctx
	}
	return gap.WithCredential(ctx, v.Identity.IDToken)
}

type Preferences struct {
	DarkMode bool `json:"darkMode"`
}

var Sessions *SessionManager

type SessionManager struct {
	store SessionStore
	ttl   time.Duration
}

func NewSessionManager(store SessionStore, ttl time.Duration) *SessionManager {
	return &SessionManager{store: store, ttl: ttl}
}

func (v *SessionManager) key(visitor, name string) string {
	return fmt.Sprintf("%s#%s", name, visitor)
}

// Restore reads the persisted identity of the visitor. A missing or expired
// record yields an anonymous session.
func (v *SessionManager) Restore(ctx context.Context, visitor string) *Session {
	session := &Session{VisitorID: visitor}

	var identity models.Identity
	if err := v.store.Load(ctx, v.key(visitor, SessionUserKey), &identity); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Warn().Err(err).Str("visitor", visitor).Msg("Unable to restore session...")
		}
		return session
	}

	if !identity.ExpiresAt.IsZero() && identity.ExpiresAt.Before(time.Now()) {
		log.Debug().Str("visitor", visitor).Msg("Persisted identity expired, discarding...")
		_ = v.store.Remove(ctx, v.key(visitor, SessionUserKey))
		return session
	}

	session.Identity = &identity
	return session
}

// Begin persists the identity issued at login or registration.
func (v *SessionManager) Begin(ctx context.Context, visitor string, identity models.Identity) (*Session, error) {
	if identity.ExpiresAt.IsZero() {
		if expiry, ok := TokenExpiry(identity.IDToken); ok {
			identity.ExpiresAt = expiry
		}
	}

	ttl := v.ttl
	if !identity.ExpiresAt.IsZero() {
		if until := time.Until(identity.ExpiresAt); ttl <= 0 || until < ttl {
			ttl = until
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("issued identity is already expired")
		}
	}

	if err := v.store.Save(ctx, v.key(visitor, SessionUserKey), identity, ttl); err != nil {
		return nil, fmt.Errorf("unable to persist session: %v", err)
	}

	log.Debug().Str("visitor", visitor).Str("user", identity.LocalID).Msg("Session began.")
	return &Session{VisitorID: visitor, Identity: &identity}, nil
}

// End tears the session down, the persisted identity is removed.
func (v *SessionManager) End(ctx context.Context, session *Session) error {
	if session == nil {
		return nil
	}
	if err := v.store.Remove(ctx, v.key(session.VisitorID, SessionUserKey)); err != nil {
		return fmt.Errorf("unable to remove session: %v", err)
	}
	session.Identity = nil
	log.Debug().Str("visitor", session.VisitorID).Msg("Session ended.")
	return nil
}

func (v *SessionManager) LoadPreferences(ctx context.Context, visitor string) Preferences {
	var prefs Preferences
	if err := v.store.Load(ctx, v.key(visitor, SessionPreferencesKey), &prefs); err != nil {
		return Preferences{}
	}
	return prefs
}

func (v *SessionManager) SavePreferences(ctx context.Context, visitor string, prefs Preferences) error {
	return v.store.Save(ctx, v.key(visitor, SessionPreferencesKey), prefs, 0)
}

// TokenExpiry reads the exp claim of an id token without verifying it,
// the gateway is the one checking signatures.
func TokenExpiry(token string) (time.Time, bool) {
	if len(token) == 0 {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
