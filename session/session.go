// Package session keeps the page-wide registry of player sessions.
package session

import (
	"github.com/cuelink/cuelink/chapter"
	"github.com/samber/mo"
)

// PendingTarget is a one-shot seek and stop request waiting for the next tick.
type PendingTarget struct {
	StartAt mo.Option[float64]
	StopAt  mo.Option[float64]
}

// Idle reports whether neither a seek nor a stop is pending.
func (p PendingTarget) Idle() bool {
	return p.StartAt.IsAbsent() && p.StopAt.IsAbsent()
}

// Clear drops both targets.
func (p *PendingTarget) Clear() {
	*p = PendingTarget{}
}

// Session is one player instance with its marks and pending targets.
type Session struct {
	ID      string
	Marks   []*chapter.Mark
	Pending PendingTarget

	registry *Registry
}

// IsSole reports whether this is the only session in its registry.
func (s *Session) IsSole() bool {
	return s.registry != nil && s.registry.Sole()
}
