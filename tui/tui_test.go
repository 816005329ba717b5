package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cuelink/cuelink/app"
	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/deeplink"
	"github.com/cuelink/cuelink/player"
	. "github.com/smartystreets/goconvey/convey"
)

const page = "https://example.org/ep1"

func newTestBubble(href string) (*statefulBubble, *player.Simulator, *app.App) {
	engine := player.NewSimulator(300, 1000)
	a := app.New(deeplink.NewLocation(href), deeplink.Options{Broadcast: true, Autoplay: true})
	a.NewPlayer("p1", engine, []*chapter.Mark{
		chapter.NewMark(0, 60, "Intro", page),
		chapter.NewMark(60, 120, "Topic", page),
	})

	b := newBubble(&Options{
		App:          a,
		PlayerID:     "p1",
		Engine:       engine,
		TickInterval: time.Second,
		Title:        "Episode 1",
	})
	b.resize(80, 24)
	return b, engine, a
}

func TestBubble(t *testing.T) {
	Convey("Given the chapter view of a page opened with a deep link", t, func() {
		b, engine, a := newTestBubble(page + "#t=01:00")
		b.Init()

		Convey("The deep link is applied on start", func() {
			So(engine.Calls, ShouldResemble, []string{"seek", "play"})
		})

		Convey("Ticks advance the engine and highlight the chapter", func() {
			b.Update(tickMsg(time.Now()))
			So(b.snapshot.CurrentTime, ShouldEqual, 61)
			So(a.Controller("p1").MustGet().Tracker().Active().MustGet(), ShouldEqual, 1)
			So(b.View(), ShouldContainSubstring, "Topic")
		})

		Convey("Space pauses a playing engine", func() {
			b.Update(tickMsg(time.Now()))
			b.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			So(engine.Calls[len(engine.Calls)-1], ShouldEqual, "pause")
		})
	})

	Convey("Given the chapter view of a plain page", t, func() {
		b, engine, a := newTestBubble(page)
		b.Init()

		Convey("Enter plays the selected chapter and links it", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(a.Location().Fragment(), ShouldEqual, "t=00:00,01:00")
			So(engine.Calls[len(engine.Calls)-1], ShouldEqual, "play")
		})

		Convey("Editing the address routes a hash change", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
			So(b.state, ShouldEqual, addressState)

			b.addressC.SetValue(page + "#t=01:00,01:30")
			b.Update(tea.KeyMsg{Type: tea.KeyEnter})
			So(b.state, ShouldEqual, chaptersState)
			So(a.Registry().Get("p1").MustGet().Pending.StopAt.MustGet(), ShouldEqual, 90)
		})

		Convey("Escape leaves the address bar untouched", func() {
			b.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
			b.Update(tea.KeyMsg{Type: tea.KeyEsc})
			So(b.state, ShouldEqual, chaptersState)
			So(a.Location().Href(), ShouldEqual, page)
		})
	})
}
