package services

import (
	"strings"
	"sync"

	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
)

// CommentComposer holds the comment input of a single post.
// A submission hands the draft off and clears the input right away,
// it does not wait for the comment to be confirmed.
type CommentComposer struct {
	mutex  sync.Mutex
	postID string
	draft  string
}

func NewCommentComposer(postID string) *CommentComposer {
	return &CommentComposer{postID: postID}
}

func (v *CommentComposer) Input(text string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.draft = text
}

func (v *CommentComposer) Draft() string {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return v.draft
}

// Submit does nothing for a blank draft. Otherwise the untrimmed draft is
// dispatched and the input is already empty when dispatch runs.
func (v *CommentComposer) Submit(dispatch func(postID, text string)) bool {
	v.mutex.Lock()
	text := v.draft
	if len(strings.TrimSpace(text)) == 0 {
		v.mutex.Unlock()
		return false
	}
	v.draft = ""
	v.mutex.Unlock()

	if dispatch != nil {
		dispatch(v.postID, text)
	}
	return true
}

// PostComposer is the new post form. It follows the comment composer
// contract, the content being the required field.
type PostComposer struct {
	mutex   sync.Mutex
	title   string
	content string
}

func NewPostComposer() *PostComposer {
	return &PostComposer{}
}

func (v *PostComposer) Input(title, content string) {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	v.title = title
	v.content = content
}

func (v *PostComposer) Draft() models.PostDraft {
	v.mutex.Lock()
	defer v.mutex.Unlock()
	return models.PostDraft{Title: v.title, Content: v.content}
}

func (v *PostComposer) Submit(dispatch func(draft models.PostDraft)) bool {
	v.mutex.Lock()
	draft := models.PostDraft{Title: v.title, Content: v.content}
	if len(strings.TrimSpace(draft.Content)) == 0 {
		v.mutex.Unlock()
		return false
	}
	v.title, v.content = "", ""
	v.mutex.Unlock()

	draft.Language = DetectLanguage(draft.Content)
	if dispatch != nil {
		dispatch(draft)
	}
	return true
}
