// Package style holds the lipgloss renderers shared by the CLI and the TUI.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/cuelink/cuelink/color"
)

func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Colored returns a style with fg and bg set. Empty colors are left unset.
func Colored(fg, bg lipgloss.Color) lipgloss.Style {
	return New().Foreground(fg).Background(bg)
}

func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(c, "").Render(s) }
}

func Tag(fg, bg lipgloss.Color) func(string) string {
	return func(s string) string { return Colored(fg, bg).Padding(0, 1).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

var (
	Title      = Tag(color.New("230"), color.New("62"))
	ErrorTitle = Tag(color.New("230"), color.Red)
)

// Chapter states in the chapter list.
var (
	ChapterActive   = New().Foreground(color.Mauve).Bold(true)
	ChapterEnabled  = New().Foreground(color.White)
	ChapterDisabled = New().Foreground(color.Overlay)
	Address         = New().Foreground(color.Lavender).Italic(true)
	Border          = New().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(color.Surface).Padding(0, 1)
)
