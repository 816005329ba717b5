package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cuelink/cuelink/color"
	"github.com/cuelink/cuelink/config"
	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/icon"
	"github.com/cuelink/cuelink/style"
	"github.com/cuelink/cuelink/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errUnknownKey suggests the registered key closest to name.
func errUnknownKey(name string) error {
	closest := lo.MinBy(lo.Keys(config.Default), func(a string, b string) bool {
		return levenshtein.Distance(name, a) < levenshtein.Distance(name, b)
	})

	return fmt.Errorf(
		"%w %s, did you mean %s?",
		config.ErrUnknownKey,
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(closest),
	)
}

func lookupField(name string) (config.Field, error) {
	field, ok := config.Default[name]
	if !ok {
		return config.Field{}, errUnknownKey(name)
	}
	return field, nil
}

func completionConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

// saveConfig writes the in-memory config, creating the file on first use.
func saveConfig() error {
	err := viper.WriteConfig()

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}

func configPath() string {
	return filepath.Join(where.Config(), constant.Cuelink+".toml")
}

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
}

func init() {
	configCmd.AddCommand(configInfoCmd)
	configInfoCmd.Flags().BoolP("json", "j", false, "Output as json")
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key...]",
	Short:             "Show settings with their descriptions",
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := lo.Values(config.Default)

		if len(args) > 0 {
			fields = make([]config.Field, 0, len(args))
			for _, name := range args {
				field, err := lookupField(name)
				if err != nil {
					return err
				}
				fields = append(fields, field)
			}
		}

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(fields)
		}

		for i, field := range fields {
			cmd.Print(field.Pretty())
			if i < len(fields)-1 {
				cmd.Print("\n\n")
			}
		}
		cmd.Println()
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the value in effect for a setting",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := lookupField(args[0]); err != nil {
			return err
		}

		cmd.Println(viper.Get(args[0]))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value...>",
	Short: "Change a setting and save it",
	Long: "Change a setting and save it.\n" +
		"Values are checked before anything is written: the player must be one of " +
		strings.Join(config.Players, ", ") + " and the permalink an absolute address.",
	Example:           "  cuelink config set player.tick_interval 500\n  cuelink config set deeplink.permalink https://example.org/ep1",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, err := lookupField(name); err != nil {
			return err
		}

		value, err := config.Parse(name, args[1:])
		if err != nil {
			return err
		}

		viper.Set(name, value)
		if err := saveConfig(); err != nil {
			return err
		}

		cmd.Printf(
			"%s set %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(name),
			style.Fg(color.Yellow)(fmt.Sprint(value)),
		)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
	configResetCmd.Flags().BoolP("all", "a", false, "Reset every setting")
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key...]",
	Short:             "Restore settings to their defaults",
	ValidArgsFunction: completionConfigKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if lo.Must(cmd.Flags().GetBool("all")) {
			names = lo.Keys(config.Default)
			sort.Strings(names)
		} else if len(names) == 0 {
			return errors.New("name the settings to reset or pass --all")
		}

		for _, name := range names {
			field, err := lookupField(name)
			if err != nil {
				return err
			}
			viper.Set(name, field.Value)
		}

		if err := saveConfig(); err != nil {
			return err
		}

		for _, name := range names {
			cmd.Printf(
				"%s reset %s to %s\n",
				style.Fg(color.Green)(icon.Get(icon.Success)),
				style.Fg(color.Purple)(name),
				style.Fg(color.Yellow)(fmt.Sprint(config.Default[name].Value)),
			)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configCheckCmd)
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check every setting in effect against its rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := lo.Keys(config.Default)
		sort.Strings(names)

		problems := lo.FilterMap(names, func(name string, _ int) (error, bool) {
			err := config.Check(name, viper.Get(name))
			return err, err != nil
		})

		for _, err := range problems {
			cmd.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), err)
		}

		if len(problems) > 0 {
			return fmt.Errorf("%d invalid settings in %s", len(problems), configPath())
		}

		cmd.Printf("%s all settings are valid\n", style.Fg(color.Green)(icon.Get(icon.Success)))
		return nil
	},
}
