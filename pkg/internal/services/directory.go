package services

import (
	"context"
	"sync"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// DeriveDirectory lists everyone but the viewer, flagged with whether the
// viewer follows them. The flag comes from the session follow list only.
func DeriveDirectory(users []models.User, viewer *models.Identity) []models.DirectoryEntry {
	var viewerID string
	var following []string
	if viewer != nil {
		viewerID = viewer.LocalID
		following = viewer.Following
	}

	entries := lo.FilterMap(users, func(item models.User, _ int) (models.DirectoryEntry, bool) {
		if len(viewerID) > 0 && item.ID == viewerID {
			return models.DirectoryEntry{}, false
		}
		return models.DirectoryEntry{
			User:          item,
			IsFollowing:   lo.Contains(following, item.ID),
			FollowerCount: len(item.Followers),
		}, true
	})
	return entries
}

type DirectoryView struct {
	Users   []models.DirectoryEntry `json:"users"`
	Loading bool                    `json:"loading"`
	Error   *string                 `json:"error"`
}

// Directory is the user listing. Follow and unfollow only trigger a full
// re-list, and any failure replaces the listing with an error until the
// next successful fetch.
type Directory struct {
	mutex   sync.Mutex
	gw      gap.Gateway
	entries []models.DirectoryEntry
	loading bool
	err     *string
}

func NewDirectory(gw gap.Gateway) *Directory {
	return &Directory{gw: gw, loading: true}
}

func (v *Directory) fail(err error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.err = lo.ToPtr(errorMessage(err))
	v.loading = false
}

func (v *Directory) Refresh(ctx context.Context, session *Session) error {
	users, err := v.gw.GetAllUsers(session.Context(ctx))
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when listing users...")
		v.fail(err)
		return err
	}

	entries := DeriveDirectory(users, session.Viewer())

	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.entries = entries
	v.loading = false
	v.err = nil
	return nil
}

func (v *Directory) Follow(ctx context.Context, session *Session, id string) error {
	if err := v.gw.FollowUser(session.Context(ctx), id); err != nil {
		log.Error().Err(err).Str("user", id).Msg("An error occurred when following user...")
		v.fail(err)
		return err
	}
	return v.Refresh(ctx, session)
}

func (v *Directory) Unfollow(ctx context.Context, session *Session, id string) error {
	if err := v.gw.UnfollowUser(session.Context(ctx), id); err != nil {
		log.Error().Err(err).Str("user", id).Msg("An error occurred when unfollowing user...")
		v.fail(err)
		return err
	}
	return v.Refresh(ctx, session)
}

func (v *Directory) View() DirectoryView {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	if v.err != nil {
		return DirectoryView{Users: []models.DirectoryEntry{}, Error: lo.ToPtr(*v.err)}
	}
	return DirectoryView{
		Users:   append([]models.DirectoryEntry{}, v.entries...),
		Loading: v.loading,
	}
}

func errorMessage(err error) string {
	if code := gap.CodeOf(err); code != gap.CodeUnknown {
		return code
	}
	return err.Error()
}
