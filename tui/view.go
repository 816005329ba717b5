package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/timecode"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	switch b.state {
	case chaptersState:
		return b.viewChapters()
	case addressState:
		return b.viewAddress()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewChapters() string {
	return b.renderLines(true, []string{
		b.viewHeader(),
		b.viewAddressBar(),
		"",
		b.chaptersC.View(),
	})
}

func (b *statefulBubble) viewAddress() string {
	return b.renderLines(true, []string{
		b.viewHeader(),
		b.addressC.View(),
		"",
		b.chaptersC.View(),
	})
}

func (b *statefulBubble) viewHeader() string {
	state := icon.Get(icon.Play)
	if b.snapshot.Paused || b.snapshot.Ended {
		state = icon.Get(icon.Pause)
	}

	position := timecode.Part(b.snapshot.CurrentTime)
	if b.snapshot.Duration > 0 {
		position += " / " + timecode.Part(b.snapshot.Duration)
	}

	var clip string
	if s := b.controller.Session(); !s.Pending.Idle() {
		if stop, ok := s.Pending.StopAt.Get(); ok {
			clip = style.Faint(fmt.Sprintf(" %s until %s", icon.Get(icon.Clip), timecode.Part(stop)))
		}
	}

	title := style.Title(truncate.StringWithTail(b.title, uint(max(b.width/2, 8)), "…"))
	return fmt.Sprintf("%s %s %s%s", title, state, position, clip)
}

func (b *statefulBubble) viewAddressBar() string {
	href := b.app.Location().Href()
	return truncate.StringWithTail(style.Address.Render(icon.Get(icon.Link)+" "+href), uint(b.width), "…")
}

func (b *statefulBubble) viewError() string {
	body := wrap.String(style.Fg(lipgloss.Color("196"))(b.lastError.Error()), b.width)
	return b.renderLines(true, []string{
		style.ErrorTitle("Error"),
		"",
		icon.Get(icon.Fail) + " Something went wrong:",
		"",
		body,
	})
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := lipgloss.Height(strings.Join(lines, "\n"))
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h-1)
		}
		l += "\n" + b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
