// Package cmd is the cuelink command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cuelink/cuelink/aniskip"
	"github.com/cuelink/cuelink/app"
	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/deeplink"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/key"
	"github.com/cuelink/cuelink/log"
	"github.com/cuelink/cuelink/player"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/timecode"
	"github.com/cuelink/cuelink/tui"
	"github.com/cuelink/cuelink/util"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icons variant")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("chapters", "c", "", "Chapter document (json, yaml or txt)")
	rootCmd.Flags().StringP("link", "l", "", "Deep link to open with, a full address or just the fragment, e.g. '#t=01:00,02:00'")
	rootCmd.Flags().StringP("title", "t", "", "Title shown in the player and the TUI")
	rootCmd.Flags().Float64P("duration", "d", 0, "Media duration in seconds, closes the last chapter")

	rootCmd.Flags().StringP("player", "p", "", "Playback engine")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"mpv", "simulator"}, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.Flags().Lookup("player")))

	rootCmd.Flags().Int("mal-id", 0, "MyAnimeList id, enables AniSkip chapters")
	rootCmd.Flags().Int("episode", 1, "Episode number for AniSkip")
}

var rootCmd = &cobra.Command{
	Use:   constant.Cuelink + " [media]",
	Short: "Timecode deep links and chapter marks for any media",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Timecode deep links and chapter marks for any media"),
	Example: `  cuelink talk.mp4 --chapters talk.yaml --link '#t=12:30,15:00'
  cuelink https://example.org/ep1.mp3 -c ep1.txt -p simulator -d 3600`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		handleErr(play(cmd, args[0]))
	},
}

// play opens media with its chapters and blocks in the TUI until the user quits.
func play(cmd *cobra.Command, media string) error {
	var (
		chaptersPath = lo.Must(cmd.Flags().GetString("chapters"))
		link         = lo.Must(cmd.Flags().GetString("link"))
		title        = lo.Must(cmd.Flags().GetString("title"))
		duration     = lo.Must(cmd.Flags().GetFloat64("duration"))
		malID        = lo.Must(cmd.Flags().GetInt("mal-id"))
		episode      = lo.Must(cmd.Flags().GetInt("episode"))
	)

	if title == "" {
		title = util.FileStem(media)
	}

	base := viper.GetString(key.DeepLinkPermalink)
	if base == "" {
		base = media
	}
	href := resolveLink(base, link)

	marks, err := loadMarks(chaptersPath, chapter.Options{Duration: duration, Permalink: viper.GetString(key.DeepLinkPermalink)}, base)
	if err != nil {
		return err
	}

	if viper.GetBool(key.Aniskip) && malID > 0 {
		segments, err := aniskip.New().Segments(context.Background(), malID, episode)
		if err != nil {
			log.Warnf("aniskip: %v", err)
		}
		marks = aniskip.Merge(marks, aniskip.Marks(segments, base))
	}

	engine, listen, err := newEngine(viper.GetString(key.Player), duration)
	if err != nil {
		return err
	}
	defer util.Ignore(engine.Close)

	if err := engine.Load(media, title); err != nil {
		return err
	}

	if viper.GetBool(key.ChaptersPushToPlayer) && len(marks) > 0 {
		if err := engine.SetChapters(marks); err != nil {
			log.Warnf("publishing chapters: %v", err)
		}
	}

	a := app.New(deeplink.NewLocation(href), deeplink.Options{
		Broadcast: viper.GetBool(key.DeepLinkBroadcast),
		Autoplay:  viper.GetBool(key.PlayerAutoplay),
	})
	controller := a.NewPlayer("", engine, marks)

	events, stop := listen()
	defer stop()

	err = tui.Run(&tui.Options{
		App:          a,
		PlayerID:     controller.Session().ID,
		Engine:       engine,
		Events:       events,
		TickInterval: time.Duration(viper.GetInt(key.PlayerTickInterval)) * time.Millisecond,
		Title:        title,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", style.Fg(color.Purple)(icon.Get(icon.Link)), a.Location().Href())
	return nil
}

// resolveLink turns the --link value into a full address on base.
func resolveLink(base, link string) string {
	switch {
	case link == "":
		return base
	case strings.HasPrefix(link, "#"):
		return timecode.WithFragment(base, strings.TrimPrefix(link, "#"))
	case strings.HasPrefix(link, "t="):
		return timecode.WithFragment(base, link)
	default:
		return link
	}
}

// loadMarks reads the chapter document at path. Marks without a permalink base fall back to base.
func loadMarks(path string, options chapter.Options, base string) ([]*chapter.Mark, error) {
	if path == "" {
		return nil, nil
	}

	marks, err := chapter.Load(path, options)
	if err != nil {
		return nil, err
	}

	for _, m := range marks {
		if m.PermalinkBase == "" {
			m.PermalinkBase = base
		}
	}
	return marks, nil
}

// eventSource starts an engine's event stream, if it has one, and returns the func that stops it.
type eventSource func() (mo.Option[<-chan player.Event], func())

// newEngine creates the named engine together with its event source.
func newEngine(name string, duration float64) (player.Player, eventSource, error) {
	none := func() (mo.Option[<-chan player.Event], func()) {
		return mo.None[<-chan player.Event](), func() {}
	}

	switch name {
	case "", "mpv":
		CheckDependencies()
		mpv := player.NewMPV()
		return mpv, func() (mo.Option[<-chan player.Event], func()) {
			listener := player.NewEventListener(mpv)
			if err := listener.Start(); err != nil {
				log.Warnf("mpv events unavailable, relying on ticks: %v", err)
				return none()
			}
			return mo.Some(listener.Events()), listener.Stop
		}, nil
	case "simulator":
		if duration <= 0 {
			return nil, nil, fmt.Errorf("the simulator needs --duration")
		}
		return player.NewSimulator(duration, 10), none, nil
	default:
		return nil, nil, fmt.Errorf("unknown player %q, expected mpv or simulator", name)
	}
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	rootCmd.SetOut(os.Stdout)
	handleErr(rootCmd.Execute())
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
