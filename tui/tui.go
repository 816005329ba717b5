// Package tui shows the chapter list of one player next to the page address and keeps both
// in step with playback.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cuelink/cuelink/app"
	"github.com/cuelink/cuelink/player"
	"github.com/samber/mo"
)

// Options for Run.
type Options struct {
	App      *app.App
	PlayerID string
	Engine   player.Player
	// Events are delivered by engines that push notifications, like mpv.
	Events mo.Option[<-chan player.Event]
	// TickInterval is the playback polling period.
	TickInterval time.Duration
	Title        string
}

// Run blocks until the user quits or the engine exits.
func Run(options *Options) error {
	_, err := tea.NewProgram(newBubble(options), tea.WithAltScreen()).Run()
	return err
}
