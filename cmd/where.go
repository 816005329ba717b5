package cmd

import (
	"strings"

	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/filesystem"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// location is something cuelink keeps on disk.
type location struct {
	name string
	path func() string
	// what is kept there, shown in the listing
	holds string
}

var locations = []location{
	{"config", configPath, "settings written by `config set`"},
	{"chapters", where.Chapters, "chapter documents scaffolded by `chapters init`"},
	{"logs", where.Logs, "daily log files when logs.write is on"},
	{"aniskip", where.Aniskip, "cached AniSkip opening and ending times"},
	{"sockets", where.Temp, "mpv control sockets of running players"},
}

func locationNames() []string {
	return lo.Map(locations, func(l location, _ int) string {
		return l.name
	})
}

func init() {
	rootCmd.AddCommand(whereCmd)
}

var whereCmd = &cobra.Command{
	Use:       "where [" + strings.Join(locationNames(), "|") + "]",
	Short:     "Show where cuelink keeps its files",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: locationNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			l, _ := lo.Find(locations, func(l location) bool {
				return l.name == args[0]
			})
			cmd.Println(l.path())
			return nil
		}

		for i, l := range locations {
			path := l.path()
			state := style.Fg(color.Green)("present")
			if exists, err := filesystem.API().Exists(path); err != nil || !exists {
				state = style.Faint("not created yet")
			}

			cmd.Printf("%s %s\n", style.Bold(style.Fg(color.Purple)(l.name)), style.Faint(l.holds))
			cmd.Printf("%s (%s)\n", path, state)

			if i < len(locations)-1 {
				cmd.Println()
			}
		}
		return nil
	},
}
