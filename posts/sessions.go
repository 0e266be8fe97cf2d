package posts

import "sync"

// Sessions maps a session id to its post list.
// Entries are only created by Get, which callers reach when a session
// actually adds a post.
type Sessions struct {
	mu    sync.Mutex
	lists map[string]*List
}

func NewSessions() *Sessions {
	return &Sessions{lists: map[string]*List{}}
}

// Get returns the list of sessionId, creating an empty one on first use
func (s *Sessions) Get(sessionId string) *List {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.lists[sessionId]
	if !ok {
		list = NewList()
		s.lists[sessionId] = list
	}
	return list
}

// Peek returns the list of sessionId without registering it. Unknown
// sessions get a fresh empty list that is not kept.
func (s *Sessions) Peek(sessionId string) *List {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list, ok := s.lists[sessionId]; ok {
		return list
	}
	return NewList()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lists)
}
