// Package cmd implements the liveurl command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/log"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/version"
	"github.com/liveurl/liveurl/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const tagline = "Resolve live-room URLs into playable stream URLs"

var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: tagline,
	Long:  constant.Logo + "\n\n    " + style.New().Italic(true).Foreground(color.Accent).Render(tagline),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Strategy fall-over is logged at debug level; --verbose shows it live.
		if lo.Must(cmd.Flags().GetBool("verbose")) {
			log.SetOutput(os.Stderr, "debug")
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = filesystem.API().RemoveAll(where.Temp())
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, args)
			return
		}
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the version and build details")

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "V", false, "Log every resolution step to stderr")
	flags.StringP("icons", "I", "", "Icon variant: "+strings.Join(icon.Variants(), ", "))
	lo.Must0(viper.BindPFlag(key.IconsVariant, flags.Lookup("icons")))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return icon.Variants(), cobra.ShellCompDirectiveNoFileComp
	}))

	help := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		help(cmd, args)
		version.Notify()
	})
}

// Execute runs the command selected by os.Args and exits non-zero on failure.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiMagenta + cc.Bold,
			Commands:      cc.HiGreen + cc.Bold,
			CmdShortDescr: cc.White,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDescr:    cc.White,
			FlagsDataType: cc.Italic + cc.HiCyan,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// handleErr logs err, prints it with the failure icon and exits.
func handleErr(err error) {
	if err == nil {
		return
	}
	log.Error(err)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", style.Fg(color.Error)(icon.Get(icon.Fail)), strings.TrimSpace(err.Error()))
	os.Exit(1)
}
