// Package posts holds the in-memory, session scoped post lists.
package posts

import (
	"slices"
	"sync"

	"coverpost_api/types"

	"github.com/google/uuid"
)

// List is an ordered sequence of posts, newest first.
type List struct {
	mu    sync.RWMutex
	posts []types.Post
}

func NewList() *List {
	return &List{posts: []types.Post{}}
}

// Append gives the draft a fresh id and prepends it. The previous slice is
// never written to.
func (l *List) Append(draft types.PostDraft) types.Post {
	post := types.Post{
		Id:      uuid.NewString(),
		Title:   draft.Title,
		Content: draft.Content,
		Image:   draft.Image,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]types.Post, 0, len(l.posts)+1)
	next = append(next, post)
	next = append(next, l.posts...)
	l.posts = next

	return post
}

// Posts returns a copy of the current posts, newest first
func (l *List) Posts() []types.Post {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.posts)
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.posts)
}
