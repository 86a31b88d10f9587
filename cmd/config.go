package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/config"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// completeConfigNames offers keys and section names.
func completeConfigNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names := lo.Keys(config.Default)
	for _, s := range config.Sections(lo.Values(config.Default)) {
		names = append(names, s.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return lo.Keys(config.Default), cobra.ShellCompDirectiveNoFileComp
}

func configDone(format string, a ...any) {
	fmt.Printf("%s %s\n", style.Fg(color.Success)(icon.Get(icon.Success)), fmt.Sprintf(format, a...))
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInfoCmd, configGetCmd, configSetCmd, configResetCmd, configWriteCmd, configDeleteCmd)

	configInfoCmd.Flags().BoolP("json", "j", false, "Print the sections as JSON")
	configInfoCmd.SetOut(os.Stdout)

	configResetCmd.Flags().BoolP("all", "a", false, "Reset every key")

	configWriteCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the settings behind resolution, rendering and output",
}

var configInfoCmd = &cobra.Command{
	Use:               "info [key or section]...",
	Short:             "Describe settings grouped by section",
	Example:           "  liveurl config info render probe\n  liveurl config info douyin.cookie",
	ValidArgsFunction: completeConfigNames,
	Run: func(cmd *cobra.Command, args []string) {
		fields, err := config.Select(args...)
		handleErr(err)
		sections := config.Sections(fields)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, sections)
			return
		}

		heading := style.New().Bold(true).Foreground(color.Heading).Render
		for i, section := range sections {
			if i > 0 {
				cmd.Println()
			}

			cmd.Printf("%s %s\n\n", heading(section.Title), style.Faint("["+section.Name+"]"))
			for j, field := range section.Fields {
				if j > 0 {
					cmd.Println()
				}
				cmd.Println(field.Pretty())
			}
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:               "get <key>",
	Short:             "Print the effective value of a key",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		_, err := config.Lookup(args[0])
		handleErr(err)

		value := viper.Get(args[0])
		if list, ok := value.([]string); ok {
			handleErr(json.NewEncoder(os.Stdout).Encode(list))
			return
		}
		fmt.Println(value)
	},
}

var configSetCmd = &cobra.Command{
	Use:               "set <key> <value>...",
	Short:             "Set a key and save the config file",
	Example:           "  liveurl config set render.backend chromedp\n  liveurl config set network.timeout 10",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		value, err := config.Set(args[0], args[1:])
		handleErr(err)

		configDone("set %s to %s", style.Fg(color.Accent)(args[0]), style.Fg(color.Value)(fmt.Sprint(value)))
	},
}

var configResetCmd = &cobra.Command{
	Use:               "reset [key]...",
	Short:             "Restore keys to their defaults and save the config file",
	ValidArgsFunction: completeConfigKeys,
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))
		if all == (len(args) > 0) {
			handleErr(errors.New("pass either keys or --all"))
		}

		handleErr(config.Reset(args...))

		if all {
			configDone("reset every key")
			return
		}
		configDone("reset %s", style.Fg(color.Accent)(fmt.Sprint(args)))
	},
}

var configWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Save the effective settings to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		path := config.File()

		if lo.Must(cmd.Flags().GetBool("force")) {
			if err := filesystem.API().Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				handleErr(err)
			}
		}

		handleErr(viper.SafeWriteConfig())
		configDone("wrote %s", path)
	},
}

var configDeleteCmd = &cobra.Command{
	Use:     "delete",
	Aliases: []string{"remove"},
	Short:   "Remove the config file, falling back to defaults and LIVEURL_* variables",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(filesystem.API().Remove(config.File()))
		configDone("deleted %s", config.File())
	},
}
