package deeplink

import (
	"strings"

	"github.com/cuelink/cuelink/timecode"
)

// Address is the page address the controller reads deep links from and writes them to.
// Writes go through ReplaceFragment so the controller never hears its own updates.
type Address interface {
	Href() string
	ReplaceFragment(fragment string)
}

// Location is an in-memory page address.
// Listeners run synchronously on every fragment change, like a hashchange handler would.
type Location struct {
	href      string
	listeners []func(href string)
}

// NewLocation returns a Location starting at href.
func NewLocation(href string) *Location {
	return &Location{href: href}
}

// Href returns the full address including the fragment.
func (l *Location) Href() string {
	return l.href
}

// Fragment returns the part after '#', without it.
func (l *Location) Fragment() string {
	_, fragment, _ := cut(l.href)
	return fragment
}

// SetFragment replaces the fragment. Listeners are notified only when it actually changes.
func (l *Location) SetFragment(fragment string) {
	next := timecode.WithFragment(l.href, fragment)
	if next == l.href {
		return
	}

	l.href = next
	for _, listener := range l.listeners {
		listener(l.href)
	}
}

// ReplaceFragment rewrites the fragment in place without notifying listeners,
// like history.replaceState.
func (l *Location) ReplaceFragment(fragment string) {
	l.href = timecode.WithFragment(l.href, fragment)
}

// Navigate moves to href, notifying listeners when only the fragment changed.
func (l *Location) Navigate(href string) {
	before, _, _ := cut(l.href)
	after, fragment, _ := cut(href)
	if before != after {
		l.href = href
		return
	}

	l.SetFragment(fragment)
}

// OnChange registers a fragment change listener.
func (l *Location) OnChange(listener func(href string)) {
	l.listeners = append(l.listeners, listener)
}

func cut(href string) (base, fragment string, found bool) {
	return strings.Cut(href, "#")
}
