package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/style"
)

// CheckDependencies exits with install instructions when mpv is not on PATH.
func CheckDependencies() {
	if _, err := exec.LookPath("mpv"); err != nil {
		fmt.Println(missingDependency("mpv"))
		os.Exit(1)
	}
}

func missingDependency(dep string) string {
	var install string
	switch runtime.GOOS {
	case "darwin":
		install = "brew install " + dep
	case "linux":
		install = "sudo apt install " + dep
	case "windows":
		install = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	lines := []string{
		style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s %s not found", icon.Get(icon.Fail), dep)),
		"",
		fmt.Sprintf("cuelink drives %s for playback. Use --player simulator for a dry run.", dep),
	}
	if install != "" {
		lines = append(lines, "", "Install it with:", "  "+style.New().Foreground(color.Mauve).Bold(true).Render(install))
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
