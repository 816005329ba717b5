package tui

import (
	"fmt"
	"math"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/timecode"
)

// listItem wraps a chapter mark for list.Model.
type listItem struct {
	mark  *chapter.Mark
	index int
}

func (t *listItem) Title() string {
	m := t.mark
	var title string
	switch {
	case m.Active:
		title = style.ChapterActive.Render(fmt.Sprintf("%s %s", icon.Get(icon.Active), m.Title))
	case m.Enabled:
		title = style.ChapterEnabled.Render(m.Title)
	default:
		title = style.ChapterDisabled.Render(m.Title)
	}
	return title
}

func (t *listItem) Description() string {
	m := t.mark
	span := timecode.Part(m.Start)
	if !math.IsInf(m.End, 1) {
		span += " - " + timecode.Part(m.End)
	}

	if m.Permalink == "" {
		return style.Faint(span)
	}
	return fmt.Sprintf("%s  %s %s", style.Faint(span), icon.Get(icon.Link), style.Address.Render(m.Permalink))
}

func (t *listItem) FilterValue() string {
	return t.mark.Title
}
