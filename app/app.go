// Package app is the top-level controller: it owns the session registry and routes
// page and engine events to the per-player deep-link controllers.
package app

import (
	"errors"
	"fmt"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/deeplink"
	"github.com/cuelink/cuelink/log"
	"github.com/cuelink/cuelink/session"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrUnknownPlayer is returned for events addressed to a player that was never created.
var ErrUnknownPlayer = errors.New("unknown player")

// App wires every player on one page to the shared address.
type App struct {
	registry    *session.Registry
	location    *deeplink.Location
	options     deeplink.Options
	controllers map[string]*deeplink.Controller
}

// New returns an App on location. Fragment changes of location are routed as hash changes.
func New(location *deeplink.Location, options deeplink.Options) *App {
	a := &App{
		registry:    session.NewRegistry(),
		location:    location,
		options:     options,
		controllers: make(map[string]*deeplink.Controller),
	}
	location.OnChange(a.OnHashChange)
	return a
}

// Registry returns the page's session registry.
func (a *App) Registry() *session.Registry {
	return a.registry
}

// Location returns the page address.
func (a *App) Location() *deeplink.Location {
	return a.location
}

// NewPlayer registers a player and its marks. Calling it twice for one id returns the
// first controller.
func (a *App) NewPlayer(id string, engine deeplink.Engine, marks []*chapter.Mark) *deeplink.Controller {
	s := a.registry.Register(id, marks)
	if c, ok := a.controllers[s.ID]; ok {
		return c
	}

	c := deeplink.New(s, engine, a.location, a.options)
	a.controllers[s.ID] = c
	log.With(log.Fields{"session": s.ID, "chapters": len(marks)}).Info("player registered")

	if a.registry.Count() > 1 {
		log.Infof("%d players on the page, deep linking disabled", a.registry.Count())
	}
	return c
}

// Controller returns the controller of player id.
func (a *App) Controller(id string) mo.Option[*deeplink.Controller] {
	c, ok := a.controllers[id]
	if !ok {
		return mo.None[*deeplink.Controller]()
	}
	return mo.Some(c)
}

// OnHashChange routes a fragment change to every player.
func (a *App) OnHashChange(href string) {
	lo.ForEach(a.ordered(), func(c *deeplink.Controller, _ int) {
		c.OnHashChange(href)
	})
}

// OnLinkActivated routes a followed in-page link to every player.
func (a *App) OnLinkActivated(href string) {
	lo.ForEach(a.ordered(), func(c *deeplink.Controller, _ int) {
		c.OnLinkActivated(href)
	})
}

// OnReady applies the initial deep link for player id.
func (a *App) OnReady(id string) error {
	return a.with(id, (*deeplink.Controller).OnReady)
}

// OnPlaybackTick runs one tick for player id.
func (a *App) OnPlaybackTick(id string) error {
	return a.with(id, (*deeplink.Controller).Tick)
}

// OnPlay handles playback resuming on player id.
func (a *App) OnPlay(id string) error {
	return a.with(id, (*deeplink.Controller).OnPlay)
}

// OnMarkActivated handles the user picking mark index of player id.
func (a *App) OnMarkActivated(id string, index int) error {
	c, ok := a.controllers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return c.ActivateMark(index)
}

func (a *App) with(id string, f func(*deeplink.Controller)) error {
	c, ok := a.controllers[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	f(c)
	return nil
}

// ordered returns controllers in registration order.
func (a *App) ordered() []*deeplink.Controller {
	return lo.FilterMap(a.registry.All(), func(s *session.Session, _ int) (*deeplink.Controller, bool) {
		c, ok := a.controllers[s.ID]
		return c, ok
	})
}
