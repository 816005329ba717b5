package deeplink

import (
	"testing"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/player"
	"github.com/cuelink/cuelink/session"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const page = "https://example.org/ep1"

func marks() []*chapter.Mark {
	return []*chapter.Mark{
		chapter.NewMark(0, 60, "Intro", page),
		chapter.NewMark(60, 120, "Topic", page),
		chapter.NewMark(120, 300, "Outro", page),
	}
}

type fixture struct {
	registry   *session.Registry
	session    *session.Session
	engine     *player.Simulator
	location   *Location
	controller *Controller
}

func newFixture(href string, options Options) *fixture {
	f := &fixture{
		registry: session.NewRegistry(),
		engine:   player.NewSimulator(300, 1000),
		location: NewLocation(href),
	}
	f.session = f.registry.Register("player-1", marks())
	f.controller = New(f.session, f.engine, f.location, options)
	return f
}

func TestReconcileClip(t *testing.T) {
	Convey("Given a clip request from 01:00 to 01:30 on a playing engine", t, func() {
		f := newFixture(page, Options{})
		So(f.engine.Play(), ShouldBeNil)
		f.session.Pending = session.PendingTarget{StartAt: mo.Some(60.0), StopAt: mo.Some(90.0)}

		Convey("The first tick seeks to the start and keeps the stop", func() {
			f.controller.Tick()
			So(f.engine.Calls, ShouldResemble, []string{"play", "seek"})
			So(f.session.Pending.StartAt.IsAbsent(), ShouldBeTrue)
			So(f.session.Pending.StopAt.MustGet(), ShouldEqual, 90)

			Convey("And the first tick at or past the stop pauses and clears both targets", func() {
				var pausedAt float64
				for i := 0; i < 60 && pausedAt == 0; i++ {
					f.engine.Advance(1)
					snap, _ := f.engine.Snapshot()
					f.controller.Tick()
					if f.engine.Calls[len(f.engine.Calls)-1] == "pause" {
						pausedAt = snap.CurrentTime
					}
				}

				So(pausedAt, ShouldEqual, 90)
				So(f.session.Pending.Idle(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a pending seek", t, func() {
		f := newFixture(page, Options{})
		f.session.Pending.StartAt = mo.Some(90.0)

		Convey("Chapter marks reflect the seek target on the same tick", func() {
			f.controller.Tick()
			So(f.controller.Tracker().Active().MustGet(), ShouldEqual, 1)
		})
	})

	Convey("Given an engine reporting a negative position", t, func() {
		f := newFixture(page, Options{Broadcast: true})
		f.engine.Set(-5)

		Convey("The position is clamped to zero", func() {
			f.controller.Tick()
			So(f.controller.Tracker().Active().MustGet(), ShouldEqual, 0)
			So(f.location.Fragment(), ShouldEqual, "t=00:00")
		})
	})
}

func TestOnURL(t *testing.T) {
	Convey("Given a paused engine at the start", t, func() {
		f := newFixture(page, Options{})

		Convey("A closed deep link seeks immediately and keeps the stop", func() {
			f.controller.OnURL(page + "#t=01:00,02:00")
			So(f.engine.Calls, ShouldResemble, []string{"seek"})
			So(f.session.Pending.StartAt.IsAbsent(), ShouldBeTrue)
			So(f.session.Pending.StopAt.MustGet(), ShouldEqual, 120)
		})

		Convey("An address without a timecode changes nothing", func() {
			f.controller.OnURL(page + "#comments")
			So(f.engine.Calls, ShouldBeEmpty)
			So(f.session.Pending.Idle(), ShouldBeTrue)
		})
	})

	Convey("Given a playing engine", t, func() {
		f := newFixture(page, Options{})
		So(f.engine.Play(), ShouldBeNil)

		Convey("A deep link waits for the next tick", func() {
			f.controller.OnURL(page + "#t=01:00")
			So(f.engine.Calls, ShouldResemble, []string{"play"})
			So(f.session.Pending.StartAt.MustGet(), ShouldEqual, 60)
			So(f.session.Pending.StopAt.IsAbsent(), ShouldBeTrue)
		})

		Convey("A deep link matching the live position does not seek", func() {
			f.engine.Set(10.2)
			f.controller.OnURL(page + "#t=00:10,00:20")
			So(f.session.Pending.StartAt.IsAbsent(), ShouldBeTrue)
			So(f.session.Pending.StopAt.MustGet(), ShouldEqual, 20)
		})

		Convey("The latest deep link overwrites an earlier one", func() {
			f.controller.OnURL(page + "#t=01:00,02:00")
			f.controller.OnURL(page + "#t=03:00")
			So(f.session.Pending.StartAt.MustGet(), ShouldEqual, 180)
			So(f.session.Pending.StopAt.IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestMultiSession(t *testing.T) {
	Convey("Given two registered sessions", t, func() {
		f := newFixture(page, Options{Broadcast: true})
		other := f.registry.Register("player-2", marks())
		otherEngine := player.NewSimulator(300, 1000)
		otherController := New(other, otherEngine, f.location, Options{Broadcast: true})

		Convey("A hash change mutates neither session", func() {
			f.controller.OnHashChange(page + "#t=01:00,02:00")
			otherController.OnHashChange(page + "#t=01:00,02:00")
			So(f.session.Pending.Idle(), ShouldBeTrue)
			So(other.Pending.Idle(), ShouldBeTrue)
		})

		Convey("An activated link mutates neither session", func() {
			f.controller.OnLinkActivated(page + "#t=01:00")
			So(f.session.Pending.Idle(), ShouldBeTrue)
		})

		Convey("Ticks do not broadcast but still track chapters", func() {
			f.engine.Set(70)
			f.controller.Tick()
			So(f.location.Href(), ShouldEqual, page)
			So(f.controller.Tracker().Active().MustGet(), ShouldEqual, 1)
		})

		Convey("Activating a mark plays the clip without touching the address", func() {
			So(f.controller.ActivateMark(1), ShouldBeNil)
			So(f.location.Href(), ShouldEqual, page)
			So(f.engine.Calls, ShouldResemble, []string{"seek", "play"})
			So(f.session.Pending.StopAt.MustGet(), ShouldEqual, 120)
		})

		Convey("The initial deep link is ignored", func() {
			f.location.SetFragment("t=01:00")
			f.controller.OnReady()
			So(f.engine.Calls, ShouldBeEmpty)
		})
	})
}

func TestActivateMark(t *testing.T) {
	Convey("Given a sole session", t, func() {
		f := newFixture(page, Options{})

		Convey("Activating a mark writes its range to the address and plays it", func() {
			So(f.controller.ActivateMark(1), ShouldBeNil)
			So(f.location.Fragment(), ShouldEqual, "t=01:00,02:00")
			So(f.engine.Calls, ShouldResemble, []string{"seek", "play"})
			So(f.session.Pending.StartAt.IsAbsent(), ShouldBeTrue)
			So(f.session.Pending.StopAt.MustGet(), ShouldEqual, 120)
		})

		Convey("Activating an unknown mark fails", func() {
			So(f.controller.ActivateMark(7), ShouldNotBeNil)
			So(f.controller.ActivateMark(-1), ShouldNotBeNil)
		})
	})
}

func TestBroadcast(t *testing.T) {
	Convey("Given a sole, broadcasting session", t, func() {
		f := newFixture(page, Options{Broadcast: true})
		f.engine.Set(75.5)

		Convey("An idle tick writes the position", func() {
			f.controller.Tick()
			So(f.location.Fragment(), ShouldEqual, "t=01:15.500")
		})

		Convey("A pending stop suppresses it", func() {
			f.session.Pending.StopAt = mo.Some(200.0)
			f.controller.Tick()
			So(f.location.Href(), ShouldEqual, page)
		})
	})

	Convey("Given broadcasting is off", t, func() {
		f := newFixture(page, Options{})
		f.engine.Set(75)
		f.controller.Tick()
		So(f.location.Href(), ShouldEqual, page)
	})
}

func TestOnReady(t *testing.T) {
	Convey("Given a page opened with a deep link", t, func() {
		f := newFixture(page+"#t=02:00", Options{Autoplay: true})

		Convey("The player seeks there and starts", func() {
			f.controller.OnReady()
			So(f.engine.Calls, ShouldResemble, []string{"seek", "play"})
		})
	})

	Convey("Given a page opened without a deep link", t, func() {
		f := newFixture(page, Options{Autoplay: true})
		f.controller.OnReady()
		So(f.engine.Calls, ShouldBeEmpty)
	})
}

func TestOnPlay(t *testing.T) {
	Convey("A pending seek is applied when playback resumes", t, func() {
		f := newFixture(page, Options{})
		f.session.Pending.StartAt = mo.Some(30.0)
		f.controller.OnPlay()
		So(f.engine.Calls, ShouldResemble, []string{"seek"})
		So(f.session.Pending.Idle(), ShouldBeTrue)
	})
}
