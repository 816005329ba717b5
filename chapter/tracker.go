package chapter

import (
	"github.com/cuelink/cuelink/timecode"
	"github.com/samber/mo"
)

// Tracker recomputes activation and enablement for one session's ordered marks.
type Tracker struct {
	marks  []*Mark
	active int
}

// NewTracker returns a tracker over marks. The slice order is the definition order.
func NewTracker(marks []*Mark) *Tracker {
	return &Tracker{marks: marks, active: -1}
}

// Marks returns the tracked marks in definition order.
func (t *Tracker) Marks() []*Mark {
	return t.marks
}

// Active returns the index of the highlighted mark, if any.
func (t *Tracker) Active() mo.Option[int] {
	if t.active < 0 {
		return mo.None[int]()
	}
	return mo.Some(t.active)
}

// Update applies one playback tick.
//
// At most one mark is active afterwards: when authored ranges overlap, the first mark in
// definition order wins. Marks whose start is buffered become enabled and get a permalink.
func (t *Tracker) Update(currentTime, bufferedEnd float64) {
	t.active = -1

	for i, m := range t.marks {
		m.Active = t.active < 0 && m.Covers(currentTime)
		if m.Active {
			t.active = i
		}

		if !m.Enabled && bufferedEnd > m.Start {
			m.Enabled = true
			m.Permalink = timecode.WithFragment(m.PermalinkBase, timecode.Fragment(m.Range()))
		}
	}
}
