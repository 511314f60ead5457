package models

// DirectoryEntry is a user decorated with the viewer's follow state.
// The flag is derived on every listing and never stored on its own.
type DirectoryEntry struct {
	User
	IsFollowing   bool `json:"isFollowing"`
	FollowerCount int  `json:"followerCount"`
}
