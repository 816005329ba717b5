package session

import (
	"github.com/cuelink/cuelink/chapter"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Registry tracks every session created for the page. Sessions are never removed.
type Registry struct {
	sessions []*Session
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a session for id. An empty id gets a generated one.
// Registering an id twice returns the existing session unchanged.
func (r *Registry) Register(id string, marks []*chapter.Mark) *Session {
	if id == "" {
		id = uuid.NewString()
	}

	if existing, ok := r.Get(id).Get(); ok {
		return existing
	}

	s := &Session{
		ID:       id,
		Marks:    marks,
		registry: r,
	}
	r.sessions = append(r.sessions, s)
	return s
}

// Get looks a session up by id.
func (r *Registry) Get(id string) mo.Option[*Session] {
	s, ok := lo.Find(r.sessions, func(s *Session) bool {
		return s.ID == id
	})
	if !ok {
		return mo.None[*Session]()
	}
	return mo.Some(s)
}

// Count returns the number of registered sessions.
func (r *Registry) Count() int {
	return len(r.sessions)
}

// Sole reports whether exactly one session exists. Deep linking is only enabled then.
func (r *Registry) Sole() bool {
	return len(r.sessions) == 1
}

// All returns the sessions in registration order.
func (r *Registry) All() []*Session {
	return r.sessions
}
