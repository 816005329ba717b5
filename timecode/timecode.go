// Package timecode parses and generates the deep-link timecode grammar used in URL fragments.
//
// The grammar follows http://podlove.org/deep-link/ and the temporal dimension of
// http://www.w3.org/TR/media-frags/:
//
//	TIMECODE := TIME (SEP TIME)?
//	TIME     := (HH ':')? MM ':' SS ('.' mmm)?
//	SEP      := ',' | '-'
package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/samber/mo"
)

// MaxEnd is the exclusive upper bound for an accepted range end, in seconds.
const MaxEnd = 9_999_999

var pattern = regexp.MustCompile(`(\d\d:)?(\d\d):(\d\d)(\.\d\d\d)?([,\-](\d\d:)?(\d\d):(\d\d)(\.\d\d\d)?)?`)

// Range is a playback span in seconds. End is absent for open-ended ranges.
type Range struct {
	Start float64
	End   mo.Option[float64]
}

// Closed returns a range with both bounds set. The end is kept only if it is valid for start.
func Closed(start, end float64) Range {
	r := Range{Start: start}
	if ValidEnd(start, end) {
		r.End = mo.Some(end)
	}
	return r
}

// Open returns a range without an end.
func Open(start float64) Range {
	return Range{Start: start}
}

// ValidEnd reports whether end may terminate a range beginning at start.
func ValidEnd(start, end float64) bool {
	return end > 0 && end < MaxEnd && end > start
}

func (r Range) String() string {
	return Generate(r)
}

// Parse finds the first timecode in text.
// It returns mo.None when text carries no timecode, which callers treat as "no deep link".
func Parse(text string) mo.Option[Range] {
	parts := pattern.FindStringSubmatch(text)
	if parts == nil {
		return mo.None[Range]()
	}

	start := seconds(parts[1], parts[2], parts[3], parts[4])

	// only a start time
	if parts[5] == "" {
		return mo.Some(Open(start))
	}

	end := seconds(parts[6], parts[7], parts[8], parts[9])
	return mo.Some(Closed(start, end))
}

// seconds folds the captured groups of one TIME into seconds, clamped to zero.
func seconds(hh, mm, ss, ms string) float64 {
	var total float64

	if hh != "" {
		total += float64(atoi(hh[:2])) * 3600
	}
	total += float64(atoi(mm)) * 60
	total += float64(atoi(ss))
	if ms != "" {
		total += float64(atoi(ms[1:])) / 1000
	}

	return math.Max(total, 0)
}

// atoi converts a digit run already validated by pattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Generate renders r in deep-link format. The end is emitted only when it is valid for the start.
func Generate(r Range) string {
	if end, ok := r.End.Get(); ok && ValidEnd(r.Start, end) {
		return Part(r.Start) + "," + Part(end)
	}

	return Part(r.Start)
}

// Part renders a single TIME. Negative, zero and non-finite values collapse to "00:00".
func Part(secs float64) string {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs <= 0 {
		return "00:00"
	}

	// Round to whole milliseconds so values like 3723.004 do not print as .003.
	total := int64(math.Round(secs * 1000))
	ms := total % 1000
	total /= 1000

	hours := total / 3600
	minutes := total / 60 % 60
	sec := total % 60

	out := fmt.Sprintf("%02d:%02d", minutes, sec)
	if hours > 0 {
		out = fmt.Sprintf("%02d:", hours) + out
	}
	if ms != 0 {
		out += fmt.Sprintf(".%03d", ms)
	}

	return out
}

// Fragment returns the URL fragment (without '#') addressing r.
func Fragment(r Range) string {
	return "t=" + Generate(r)
}
