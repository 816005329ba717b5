package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/timecode"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolP("json", "j", false, "Output as json")
}

type parsed struct {
	Input    string   `json:"input"`
	Start    *float64 `json:"start"`
	End      *float64 `json:"end"`
	Fragment string   `json:"fragment,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [timecode or address]...",
	Short: "Parse deep-link timecodes",
	Example: `  cuelink parse 01:02:03.500
  cuelink parse 'https://example.org/ep1#t=05:00,07:30'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		results := lo.Map(args, func(arg string, _ int) parsed {
			p := parsed{Input: arg}
			if r, ok := timecode.FromHref(arg).Get(); ok {
				p.Start = lo.ToPtr(r.Start)
				p.End = r.End.ToPointer()
				p.Fragment = timecode.Fragment(r)
			}
			return p
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(results))
			return
		}

		for _, p := range results {
			if p.Start == nil {
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fail), p.Input, style.Faint("no timecode"))
				continue
			}

			end := style.Faint("open")
			if p.End != nil {
				end = fmt.Sprintf("%g", *p.End)
			}
			cmd.Printf("%s %s start=%g end=%s %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				p.Input,
				*p.Start,
				end,
				style.Fg(color.Purple)(p.Fragment),
			)
		}
	},
}
