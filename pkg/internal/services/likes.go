package services

import (
	"context"
	"errors"
	"sync"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrLikeInFlight = errors.New("a like request for this post is already in flight")

// LikeTracker is the in-flight set of post ids waiting for a like response.
// A post is either idle or liking, a like intent on a liking post is dropped.
type LikeTracker struct {
	mutex    sync.Mutex
	inFlight map[string]struct{}
}

func NewLikeTracker() *LikeTracker {
	return &LikeTracker{inFlight: make(map[string]struct{})}
}

func (v *LikeTracker) acquire(id string) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if _, ok := v.inFlight[id]; ok {
		return false
	}
	v.inFlight[id] = struct{}{}
	return true
}

func (v *LikeTracker) release(id string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	delete(v.inFlight, id)
}

func (v *LikeTracker) IsLiking(id string) bool {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	_, ok := v.inFlight[id]
	return ok
}

func (v *LikeTracker) InFlight() []string {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return lo.Keys(v.inFlight)
}

// Like issues the like request and reconciles the returned post into the store.
// Nothing is shown before the gateway answers, a failure is only logged and
// leaves the store as it was. ErrLikeInFlight is returned without any call
// when the same post is still liking.
func (v *LikeTracker) Like(ctx context.Context, gw gap.Gateway, store *FeedStore, id string) error {
	if !v.acquire(id) {
		log.Debug().Str("post", id).Msg("Like request already in flight, ignored.")
		return ErrLikeInFlight
	}
	defer v.release(id)

	post, err := gw.LikePost(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("post", id).Msg("An error occurred when liking post...")
		return err
	}

	if !store.ApplyUpdatedPost(post) {
		log.Debug().Str("post", id).Msg("Liked post is no longer in the feed, update dropped.")
	}
	return nil
}
