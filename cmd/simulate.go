package cmd

import (
	"fmt"

	"github.com/cuelink/cuelink/app"
	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/deeplink"
	"github.com/cuelink/cuelink/key"
	"github.com/cuelink/cuelink/player"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/timecode"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringP("chapters", "c", "", "Chapter document (json, yaml or txt)")
	simulateCmd.Flags().StringP("link", "l", "", "Deep link the page is opened with")
	simulateCmd.Flags().StringP("page", "P", "https://example.org/episode", "Page address")
	simulateCmd.Flags().Float64P("duration", "d", 600, "Media duration in seconds")
	simulateCmd.Flags().Float64("step", 1, "Seconds per tick")
	simulateCmd.Flags().IntP("ticks", "n", 30, "Number of ticks to run")
	simulateCmd.Flags().Int("players", 1, "Number of players on the page")
	simulateCmd.Flags().Int("activate", -1, "Chapter to activate before the first tick")
	simulateCmd.Flags().Bool("autoplay", true, "Start playing when opened with a deep link")
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, simulateCmd.Flags().Lookup("autoplay")))
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Dry-run deep links and chapters against a simulated player",
	Long: `Dry-run deep links and chapters against a simulated player.
Every tick prints the playback position, the active chapter and the page address.`,
	Example: `  cuelink simulate -c talk.yaml -l '#t=01:00,01:30' -n 40
  cuelink simulate -c talk.yaml --players 2`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			page     = lo.Must(cmd.Flags().GetString("page"))
			link     = lo.Must(cmd.Flags().GetString("link"))
			path     = lo.Must(cmd.Flags().GetString("chapters"))
			duration = lo.Must(cmd.Flags().GetFloat64("duration"))
			step     = lo.Must(cmd.Flags().GetFloat64("step"))
			ticks    = lo.Must(cmd.Flags().GetInt("ticks"))
			players  = lo.Must(cmd.Flags().GetInt("players"))
			activate = lo.Must(cmd.Flags().GetInt("activate"))
		)

		if players < 1 {
			handleErr(fmt.Errorf("--players must be at least 1"))
		}

		a := app.New(deeplink.NewLocation(resolveLink(page, link)), deeplink.Options{
			Broadcast: viper.GetBool(key.DeepLinkBroadcast),
			Autoplay:  viper.GetBool(key.PlayerAutoplay),
		})

		engines := make([]*player.Simulator, players)
		ids := make([]string, players)
		for i := range engines {
			marks, err := loadMarks(path, chapter.Options{Duration: duration}, page)
			handleErr(err)

			engines[i] = player.NewSimulator(duration, 10)
			ids[i] = fmt.Sprintf("player-%d", i+1)
			a.NewPlayer(ids[i], engines[i], marks)
		}

		for _, id := range ids {
			handleErr(a.OnReady(id))
		}

		if activate >= 0 {
			handleErr(a.OnMarkActivated(ids[0], activate))
		}

		for n := 0; n < ticks; n++ {
			for i, engine := range engines {
				engine.Advance(step)
				handleErr(a.OnPlaybackTick(ids[i]))
			}
			cmd.Println(simulationLine(a, ids[0], engines[0], n))
		}
	},
}

func simulationLine(a *app.App, id string, engine *player.Simulator, n int) string {
	snap, _ := engine.Snapshot()
	controller := a.Controller(id).MustGet()

	active := style.Faint("-")
	if i, ok := controller.Tracker().Active().Get(); ok {
		active = style.Fg(color.Purple)(controller.Tracker().Marks()[i].Title)
	}

	state := "playing"
	switch {
	case snap.Ended:
		state = "ended"
	case snap.Paused:
		state = "paused"
	}

	return fmt.Sprintf("%3d  %-9s %-7s %s  %s",
		n+1,
		timecode.Part(snap.CurrentTime),
		state,
		active,
		style.Faint(a.Location().Href()),
	)
}
