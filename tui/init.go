package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cuelink/cuelink/player"
)

type (
	tickMsg         time.Time
	eventMsg        player.Event
	eventsClosedMsg struct{}
	exitedMsg       struct{}
)

// Init applies the deep link the page was opened with, then starts polling.
func (b *statefulBubble) Init() tea.Cmd {
	if err := b.app.OnReady(b.playerID); err != nil {
		b.raiseError(err)
		return nil
	}
	b.refresh()

	return tea.Batch(b.tick(), b.waitForEvent(), b.waitForExit())
}

func (b *statefulBubble) tick() tea.Cmd {
	return tea.Tick(b.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (b *statefulBubble) waitForEvent() tea.Cmd {
	events, ok := b.events.Get()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (b *statefulBubble) waitForExit() tea.Cmd {
	return func() tea.Msg {
		<-b.engine.Wait()
		return exitedMsg{}
	}
}
