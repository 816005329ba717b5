// Package player defines the playback engines the deep-link core drives.
// The primary implementation targets mpv via its JSON-IPC interface; Simulator is a
// deterministic clock used for dry runs and tests.
package player

import "github.com/cuelink/cuelink/chapter"

// Snapshot is the read-only playback state sampled on every tick.
type Snapshot struct {
	CurrentTime float64
	// BufferedEnd is the end offset of the contiguous range loaded from the current position.
	BufferedEnd float64
	Paused      bool
	Ended       bool
	Duration    float64
}

// Player encapsulates the required capabilities for a media playback backend.
type Player interface {
	// Load opens the given media with the specified window title.
	Load(url string, title string) error

	// Snapshot samples the current playback state.
	Snapshot() (Snapshot, error)

	// Seek requests an absolute position in seconds. The effect shows up on a later tick.
	Seek(seconds float64) error

	// Play resumes playback.
	Play() error

	// Pause suspends playback.
	Pause() error

	// SetChapters publishes the chapter list to the engine's own UI, where it has one.
	SetChapters(marks []*chapter.Mark) error

	// Wait returns a channel that is closed when the playback session terminates.
	Wait() <-chan struct{}

	// Close terminates the playback engine and releases all associated system resources.
	Close() error
}
