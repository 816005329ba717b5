package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/cuelink/cuelink/chapter"
	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/filesystem"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/timecode"
	"github.com/cuelink/cuelink/util"
	"github.com/cuelink/cuelink/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chaptersCmd)
}

var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Work with chapter documents",
}

func init() {
	chaptersCmd.AddCommand(chaptersSchemaCmd)
	chaptersSchemaCmd.SetOut(os.Stdout)
}

var chaptersSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of chapter documents",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(chapter.Schema()))
	},
}

func init() {
	chaptersCmd.AddCommand(chaptersValidateCmd)
	chaptersValidateCmd.Flags().Float64P("duration", "d", 0, "Media duration in seconds, closes the last chapter")
	chaptersValidateCmd.SetOut(os.Stdout)
}

var chaptersValidateCmd = &cobra.Command{
	Use:   "validate file",
	Short: "Check a chapter document and list its chapters",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		marks, err := chapter.Load(args[0], chapter.Options{
			Duration: lo.Must(cmd.Flags().GetFloat64("duration")),
		})
		handleErr(err)

		cmd.Printf("%s %s\n\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			util.Quantify(len(marks), "chapter", "chapters"),
		)
		for _, m := range marks {
			cmd.Printf("%s %s %s\n", icon.Get(icon.Mark), m.Title, style.Faint(timecode.Fragment(m.Range())))
		}
	},
}

func init() {
	chaptersCmd.AddCommand(chaptersFindCmd)
	chaptersFindCmd.Flags().BoolP("first", "f", false, "Only print the best match as a deep link")
	chaptersFindCmd.Flags().StringP("base", "b", "", "Address deep links are built on")
	chaptersFindCmd.SetOut(os.Stdout)
}

var chaptersFindCmd = &cobra.Command{
	Use:     "find file query",
	Short:   "Fuzzy find chapters by title",
	Example: `  cuelink chapters find talk.yaml 'q&a' --first`,
	Args:    cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		base := lo.Must(cmd.Flags().GetString("base"))
		marks, err := chapter.Load(args[0], chapter.Options{Permalink: base})
		handleErr(err)

		found := chapter.Find(marks, args[1])
		if len(found) == 0 {
			handleErr(fmt.Errorf("no chapter matches %q", args[1]))
		}

		if lo.Must(cmd.Flags().GetBool("first")) {
			m := marks[found[0]]
			cmd.Println(timecode.WithFragment(m.PermalinkBase, timecode.Fragment(m.Range())))
			return
		}

		for _, i := range found {
			m := marks[i]
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(m.Title), style.Faint("#"+timecode.Fragment(m.Range())))
		}
	},
}

func init() {
	chaptersCmd.AddCommand(chaptersInitCmd)
	chaptersInitCmd.Flags().StringP("permalink", "p", "https://example.org/episode", "Base address for chapter permalinks")
	chaptersInitCmd.Flags().StringP("output", "o", "", "Where to write the document, defaults to the chapters directory")
	chaptersInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing document")
}

var chaptersInitCmd = &cobra.Command{
	Use:   "init title",
	Short: "Scaffold a chapter document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		title := args[0]
		output := lo.Must(cmd.Flags().GetString("output"))
		if output == "" {
			output = filepath.Join(where.Chapters(), util.SanitizeFilename(title)+".yaml")
		}

		exists, err := filesystem.API().Exists(output)
		handleErr(err)
		if exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite", output))
		}

		f, err := filesystem.API().Create(output)
		handleErr(err)
		defer util.Ignore(f.Close)

		t := template.Must(template.New("chapters").Parse(constant.ChaptersTemplate))
		handleErr(t.Execute(f, map[string]any{
			"Title":     title,
			"App":       constant.Cuelink,
			"Version":   constant.Version,
			"Permalink": lo.Must(cmd.Flags().GetString("permalink")),
			"Second":    timecode.Part(60),
		}))

		fmt.Printf("%s wrote %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), output)
	},
}
