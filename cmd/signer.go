package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/network"
	"github.com/liveurl/liveurl/provider"
	"github.com/liveurl/liveurl/signer"
	"github.com/liveurl/liveurl/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(signerCmd)
}

var signerCmd = &cobra.Command{
	Use:   "signer",
	Short: "Manage the Lua script that signs API requests",
}

func init() {
	signerCmd.AddCommand(signerNewCmd)

	signerNewCmd.Flags().String("platform", "douyin", "Platform the script signs for")
	signerNewCmd.Flags().String("author", "", "Author of the script")
	signerNewCmd.Flags().BoolP("force", "f", false, "Overwrite an existing script")
	signerNewCmd.Flags().Bool("stdout", false, "Print the script instead of writing it")

	lo.Must0(signerNewCmd.RegisterFlagCompletionFunc("platform", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return provider.IDs(), cobra.ShellCompDirectiveNoFileComp
	}))
}

var signerNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a signature script skeleton",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			platform = lo.Must(cmd.Flags().GetString("platform"))
			author   = lo.Must(cmd.Flags().GetString("author"))
		)

		if author == "" {
			author = lo.Must(os.Hostname())
		}

		if lo.Must(cmd.Flags().GetBool("stdout")) {
			handleErr(signer.Scaffold(cmd.OutOrStdout(), platform, author))
			return
		}

		path := signer.ScriptPath()
		if exists, _ := filesystem.API().Exists(path); exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite it", path))
		}

		var script bytes.Buffer
		handleErr(signer.Scaffold(&script, platform, author))
		handleErr(filesystem.WriteFile(path, script.Bytes(), 0o644))
		fmt.Printf("%s created %s\n", style.Fg(color.Success)(icon.Get(icon.Success)), path)
	},
}

func init() {
	signerCmd.AddCommand(signerTestCmd)

	signerTestCmd.Flags().String("query", "aid=6383&live_id=1", "Query string to sign")
	signerTestCmd.Flags().String("user-agent", constant.UserAgent, "User-Agent to sign with")
}

var signerTestCmd = &cobra.Command{
	Use:   "test [script]",
	Short: "Load a signature script and sign a sample query",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := signer.ScriptPath()
		if len(args) == 1 {
			path = args[0]
		}

		s, err := signer.Load(path)
		handleErr(err)

		sig, err := s.Sign(
			lo.Must(cmd.Flags().GetString("query")),
			lo.Must(cmd.Flags().GetString("user-agent")),
		)
		handleErr(err)

		fmt.Printf("%s %s signed\n", style.Fg(color.Success)(icon.Get(icon.Lua)), path)
		cmd.Println(sig)
	},
}

func init() {
	signerCmd.AddCommand(signerUpdateCmd)

	signerUpdateCmd.Flags().String("url", "", "URL to download the script from")
	lo.Must0(viper.BindPFlag(key.SignerUpdateURL, signerUpdateCmd.Flags().Lookup("url")))
}

var signerUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Download the latest signature script",
	Run: func(cmd *cobra.Command, args []string) {
		remote := viper.GetString(key.SignerUpdateURL)
		if remote == "" {
			handleErr(errors.New("no update URL, pass --url or set " + key.SignerUpdateURL))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		path := signer.ScriptPath()
		updated, err := signer.Update(ctx, network.FromConfig(), remote, path)
		handleErr(err)

		if !updated {
			fmt.Printf("%s %s is up to date\n", icon.Get(icon.Success), path)
			return
		}

		fmt.Printf("%s updated %s\n", style.Fg(color.Success)(icon.Get(icon.Success)), path)
	},
}
