// Package deeplink reconciles a player's position with the deep link in the page address.
//
// A Controller owns nothing but references: the session (marks and pending targets),
// the playback engine, the page address and the session registry. Every method runs
// on the caller's event loop and never blocks; seeks are requests whose effect is only
// visible on a later tick, hence the one-shot pending targets.
package deeplink

import (
	"fmt"
	"math"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/log"
	"github.com/cuelink/cuelink/player"
	"github.com/cuelink/cuelink/session"
	"github.com/cuelink/cuelink/timecode"
	"github.com/samber/mo"
)

// Engine is the playback engine as seen by the controller.
type Engine interface {
	Snapshot() (player.Snapshot, error)
	Seek(seconds float64) error
	Play() error
	Pause() error
}

// Options tune a Controller.
type Options struct {
	// Broadcast rewrites the address with the current position on every idle tick.
	Broadcast bool
	// Autoplay starts playback when the page was opened with a deep link.
	Autoplay bool
}

// Controller drives one session.
type Controller struct {
	session *session.Session
	engine  Engine
	address Address
	tracker *chapter.Tracker
	options Options
}

// New returns a controller for s.
func New(s *session.Session, engine Engine, address Address, options Options) *Controller {
	return &Controller{
		session: s,
		engine:  engine,
		address: address,
		tracker: chapter.NewTracker(s.Marks),
		options: options,
	}
}

// Session returns the controlled session.
func (c *Controller) Session() *session.Session {
	return c.session
}

// Tracker returns the session's chapter tracker.
func (c *Controller) Tracker() *chapter.Tracker {
	return c.tracker
}

// OnReady applies the deep link the page was opened with, if it addresses this player.
func (c *Controller) OnReady() {
	if !c.session.IsSole() {
		return
	}

	href := c.address.Href()
	if timecode.FromHref(href).IsAbsent() {
		return
	}

	c.OnURL(href)

	if c.options.Autoplay {
		c.play()
	}
}

// OnHashChange handles browser-history style navigation to href.
func (c *Controller) OnHashChange(href string) {
	if !c.session.IsSole() {
		return
	}
	c.OnURL(href)
}

// OnLinkActivated handles an in-page link to href being followed.
func (c *Controller) OnLinkActivated(href string) {
	if !c.session.IsSole() {
		return
	}
	c.OnURL(href)
}

// OnURL takes the deep link carried by href as the new pending target.
// Addresses without a timecode are ignored.
func (c *Controller) OnURL(href string) {
	r, ok := timecode.FromHref(href).Get()
	if !ok {
		return
	}

	snap, ok := c.snapshot()
	if !ok {
		return
	}

	pending := &c.session.Pending
	pending.StopAt = r.End

	// skip the seek when the address already matches the live position
	if math.Round(r.Start) != math.Round(position(snap.CurrentTime)) {
		pending.StartAt = mo.Some(r.Start)
	} else {
		pending.StartAt = mo.None[float64]()
	}

	log.Debugf("session %s: deep link %s", c.session.ID, timecode.Generate(r))

	// a paused engine emits no ticks, so apply the target now
	if snap.Paused || snap.Ended {
		c.Tick()
	}
}

// OnPlay applies pending targets as soon as playback resumes.
func (c *Controller) OnPlay() {
	if snap, ok := c.snapshot(); ok {
		c.Reconcile(snap)
	}
}

// Tick runs one playback tick: pending targets first, then chapter marks, then broadcasting.
func (c *Controller) Tick() {
	snap, ok := c.snapshot()
	if !ok {
		return
	}

	now := c.Reconcile(snap)
	c.tracker.Update(now, snap.BufferedEnd)
	c.Broadcast(now)
}

// Reconcile applies the pending seek and stop targets against snap.
// It returns the position the rest of the tick should use: the seek target when a seek
// was just issued, the sampled position otherwise.
func (c *Controller) Reconcile(snap player.Snapshot) float64 {
	now := position(snap.CurrentTime)
	pending := &c.session.Pending

	if start, ok := pending.StartAt.Get(); ok {
		if err := c.engine.Seek(start); err != nil {
			log.Warnf("session %s: seek to %s: %v", c.session.ID, timecode.Part(start), err)
		}
		pending.StartAt = mo.None[float64]()
		now = start
	}

	if stop, ok := pending.StopAt.Get(); ok && now >= stop {
		if err := c.engine.Pause(); err != nil {
			log.Warnf("session %s: pause at %s: %v", c.session.ID, timecode.Part(stop), err)
		}
		pending.Clear()
	}

	return now
}

// Broadcast writes now to the address while no clip is in flight and this is the only session.
func (c *Controller) Broadcast(now float64) {
	if !c.options.Broadcast || !c.session.IsSole() || !c.session.Pending.Idle() {
		return
	}

	c.address.ReplaceFragment(timecode.Fragment(timecode.Open(now)))
}

// ActivateMark plays the mark at index as a clip and, for a sole session, makes it the address.
func (c *Controller) ActivateMark(index int) error {
	marks := c.tracker.Marks()
	if index < 0 || index >= len(marks) {
		return fmt.Errorf("chapter %d out of range (have %d)", index+1, len(marks))
	}
	mark := marks[index]

	if c.session.IsSole() {
		c.address.ReplaceFragment(timecode.Fragment(mark.Range()))
	}

	c.session.Pending = session.PendingTarget{
		StartAt: mo.Some(mark.Start),
		StopAt:  mo.Some(mark.End),
	}

	if snap, ok := c.snapshot(); ok {
		c.Reconcile(snap)
	}

	c.play()
	return nil
}

func (c *Controller) play() {
	if err := c.engine.Play(); err != nil {
		log.Warnf("session %s: play: %v", c.session.ID, err)
	}
}

func (c *Controller) snapshot() (player.Snapshot, bool) {
	snap, err := c.engine.Snapshot()
	if err != nil {
		log.Warnf("session %s: snapshot: %v", c.session.ID, err)
		return player.Snapshot{}, false
	}
	return snap, true
}

// position clamps an engine-reported time to a usable, non-negative value.
func position(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return 0
	}
	return t
}
