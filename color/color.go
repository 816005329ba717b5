// Package color names the terminal colors cuelink renders with.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	HiRed  = New("9")
)

var (
	Mauve    = New("#cba6f7")
	Lavender = New("#b4befe")
	Overlay  = New("#6c7086")
	Surface  = New("#313244")
	Orange   = New("#ffb703")
)
