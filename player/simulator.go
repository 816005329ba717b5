package player

import (
	"math"

	"github.com/cuelink/cuelink/chapter"
)

// Simulator is an in-memory engine with a manually advanced clock.
//
// Seeks and pauses are applied on the next Advance, the same way a real engine only
// reflects them on a later tick.
type Simulator struct {
	duration  float64
	bandwidth float64

	current  float64
	buffered float64
	paused   bool
	ended    bool
	seek     float64
	seeking  bool
	chapters []*chapter.Mark
	done     chan struct{}

	// Calls records every request in order, for inspection.
	Calls []string
}

// NewSimulator returns a paused engine for media of the given duration.
// bandwidth is how many seconds of media get buffered per second of wall time.
func NewSimulator(duration, bandwidth float64) *Simulator {
	return &Simulator{
		duration:  duration,
		bandwidth: bandwidth,
		paused:    true,
		done:      make(chan struct{}),
	}
}

func (s *Simulator) Load(string, string) error {
	s.Calls = append(s.Calls, "load")
	return nil
}

func (s *Simulator) Snapshot() (Snapshot, error) {
	return Snapshot{
		CurrentTime: s.current,
		BufferedEnd: s.buffered,
		Paused:      s.paused,
		Ended:       s.ended,
		Duration:    s.duration,
	}, nil
}

func (s *Simulator) Seek(seconds float64) error {
	s.Calls = append(s.Calls, "seek")
	s.seek = seconds
	s.seeking = true
	return nil
}

func (s *Simulator) Play() error {
	s.Calls = append(s.Calls, "play")
	s.paused = false
	s.ended = false
	return nil
}

func (s *Simulator) Pause() error {
	s.Calls = append(s.Calls, "pause")
	s.paused = true
	return nil
}

func (s *Simulator) SetChapters(marks []*chapter.Mark) error {
	s.chapters = marks
	return nil
}

func (s *Simulator) Wait() <-chan struct{} {
	return s.done
}

func (s *Simulator) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}

// Chapters returns the marks last published with SetChapters.
func (s *Simulator) Chapters() []*chapter.Mark {
	return s.chapters
}

// Advance moves the clock by dt seconds of wall time.
func (s *Simulator) Advance(dt float64) {
	if s.seeking {
		s.current = math.Min(math.Max(s.seek, 0), s.duration)
		s.seeking = false
		s.ended = false
	}

	s.buffered = math.Min(math.Max(s.buffered, s.current)+s.bandwidth*dt, s.duration)

	if !s.paused && !s.ended {
		s.current = math.Min(s.current+dt, s.duration)
		if s.current >= s.duration {
			s.ended = true
			s.paused = true
		}
	}
}

// Set places the clock at t without going through a seek.
func (s *Simulator) Set(t float64) {
	s.current = t
}
