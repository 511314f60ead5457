package models

import "time"

type Post struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhoto *string   `json:"authorPhoto,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Language    string    `json:"language,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Comments    []Comment `json:"comments"`
	Likes       []string  `json:"likes"`
}

// LikedBy reports whether the given account is among the likers.
// The likers list is assumed to be duplicate free.
func (v Post) LikedBy(id string) bool {
	if len(id) == 0 {
		return false
	}
	for _, liker := range v.Likes {
		if liker == id {
			return true
		}
	}
	return false
}

type Comment struct {
	UserID      string    `json:"userId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhoto *string   `json:"authorPhoto,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

type PostDraft struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
