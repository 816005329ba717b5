package cmd

import (
	"fmt"
	"strconv"

	"github.com/cuelink/cuelink/timecode"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("base", "b", "", "Address to append the fragment to")
}

var generateCmd = &cobra.Command{
	Use:   "generate start [end]",
	Short: "Build a deep-link fragment from seconds",
	Example: `  cuelink generate 3723.5
  cuelink generate 60 90 --base https://example.org/ep1`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		start, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			handleErr(fmt.Errorf("invalid start %q: %w", args[0], err))
		}

		r := timecode.Open(start)
		if len(args) == 2 {
			end, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				handleErr(fmt.Errorf("invalid end %q: %w", args[1], err))
			}
			r = timecode.Closed(start, end)
		}

		fragment := timecode.Fragment(r)
		if base := lo.Must(cmd.Flags().GetString("base")); base != "" {
			cmd.Println(timecode.WithFragment(base, fragment))
			return
		}
		cmd.Println("#" + fragment)
	},
}
