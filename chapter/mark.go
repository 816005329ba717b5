// Package chapter tracks which authored chapter marks are active and which may be linked to.
package chapter

import (
	"fmt"

	"github.com/cuelink/cuelink/timecode"
)

// ActivationLead is how many seconds before its start a mark is already highlighted.
const ActivationLead = 0.3

// Mark is one authored segment of the media.
type Mark struct {
	Start float64
	End   float64
	Title string

	// PermalinkBase is the address the mark's permalink is built on.
	PermalinkBase string

	// Enabled only ever goes from false to true, once the mark's start is buffered.
	Enabled bool
	// Active is recomputed on every tick.
	Active bool
	// Permalink is set when the mark becomes enabled.
	Permalink string
}

// NewMark returns a disabled, inactive mark.
func NewMark(start, end float64, title, permalinkBase string) *Mark {
	return &Mark{
		Start:         start,
		End:           end,
		Title:         title,
		PermalinkBase: permalinkBase,
	}
}

// Range returns the mark's span as a timecode range.
func (m *Mark) Range() timecode.Range {
	return timecode.Closed(m.Start, m.End)
}

// Covers reports whether t lies inside the mark's activation window.
func (m *Mark) Covers(t float64) bool {
	return t > m.Start-ActivationLead && t <= m.End
}

func (m *Mark) String() string {
	return fmt.Sprintf("%s %s", timecode.Generate(m.Range()), m.Title)
}
