package tui

import (
	bubblesKey "github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cuelink/cuelink/log"
	"github.com/cuelink/cuelink/player"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case error:
		b.raiseError(msg)
		return b, nil
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil
	case tickMsg:
		return b, b.onTick()
	case eventMsg:
		return b, b.onEvent(player.Event(msg))
	case eventsClosedMsg:
		return b, nil
	case exitedMsg:
		return b, tea.Quit
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	switch b.state {
	case chaptersState:
		return b.updateChapters(msg)
	case addressState:
		return b.updateAddress(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, nil
}

func (b *statefulBubble) onTick() tea.Cmd {
	if engine, ok := b.engine.(advancer); ok {
		engine.Advance(b.interval.Seconds())
	}

	if err := b.app.OnPlaybackTick(b.playerID); err != nil {
		b.raiseError(err)
		return nil
	}

	if snap, err := b.engine.Snapshot(); err == nil {
		b.snapshot = snap
	}
	b.refresh()

	return b.tick()
}

func (b *statefulBubble) onEvent(event player.Event) tea.Cmd {
	log.Debugf("player event %d", event.Kind)

	switch event.Kind {
	case player.EventPlay:
		if err := b.app.OnPlay(b.playerID); err != nil {
			b.raiseError(err)
		}
	case player.EventSeek, player.EventPause, player.EventEnded:
		if snap, err := b.engine.Snapshot(); err == nil {
			b.snapshot = snap
		}
	}

	return b.waitForEvent()
}

func (b *statefulBubble) updateChapters(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.activate):
			item, ok := b.chaptersC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			if err := b.app.OnMarkActivated(b.playerID, item.index); err != nil {
				b.raiseError(err)
				return b, nil
			}
			b.refresh()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.playPause):
			b.togglePause()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.editAddress):
			b.addressC.SetValue(b.app.Location().Href())
			b.addressC.CursorEnd()
			b.setState(addressState)
			return b, b.addressC.Focus()
		}
	}

	var cmd tea.Cmd
	b.chaptersC, cmd = b.chaptersC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) togglePause() {
	var err error
	if b.snapshot.Paused || b.snapshot.Ended {
		err = b.engine.Play()
		if err == nil {
			err = b.app.OnPlay(b.playerID)
		}
	} else {
		err = b.engine.Pause()
	}

	if err != nil {
		b.raiseError(err)
		return
	}
	b.snapshot.Paused = !b.snapshot.Paused
}

func (b *statefulBubble) updateAddress(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.addressC.Blur()
			b.setState(chaptersState)
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.confirm):
			href := b.addressC.Value()
			b.addressC.Blur()
			b.setState(chaptersState)

			// a same-page address is a hash change, the location listener routes it
			b.app.Location().Navigate(href)
			b.refresh()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.addressC, cmd = b.addressC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			b.setState(chaptersState)
			return b, nil
		}
	}
	return b, nil
}
