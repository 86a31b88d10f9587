package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/cookies"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/provider"
	"github.com/liveurl/liveurl/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"
)

func init() {
	rootCmd.AddCommand(cookiesCmd)

	cookiesCmd.PersistentFlags().String("platform", "douyin", "Platform the cookie belongs to")
	lo.Must0(cookiesCmd.RegisterFlagCompletionFunc("platform", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return provider.IDs(), cobra.ShellCompDirectiveNoFileComp
	}))

	cookiesCmd.AddCommand(cookiesSetCmd, cookiesGetCmd, cookiesDeleteCmd)
}

var cookiesCmd = &cobra.Command{
	Use:   "cookies",
	Short: "Manage platform cookies stored in the system keyring",
}

func cookiePlatform(cmd *cobra.Command) string {
	id := lo.Must(cmd.Flags().GetString("platform"))
	if _, ok := provider.Get(id); !ok {
		handleErr(fmt.Errorf("unknown platform %q, expected one of %v", id, provider.IDs()))
	}
	return id
}

var cookiesSetCmd = &cobra.Command{
	Use:   "set [cookie]",
	Short: "Store the Cookie header sent to a platform",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		platform := cookiePlatform(cmd)

		var cookie string
		if len(args) == 1 {
			cookie = args[0]
		} else {
			handleErr(survey.AskOne(&survey.Password{
				Message: "Cookie header for " + platform,
			}, &cookie, survey.WithValidator(survey.Required)))
		}

		handleErr(cookies.Set(platform, cookie))
		fmt.Printf("%s stored %s cookie\n", style.Fg(color.Success)(icon.Get(icon.Cookie)), platform)
	},
}

var cookiesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the stored Cookie header",
	Run: func(cmd *cobra.Command, args []string) {
		cookie, err := cookies.Get(cookiePlatform(cmd))
		if errors.Is(err, keyring.ErrNotFound) {
			handleErr(errors.New("no cookie stored"))
		}
		handleErr(err)
		cmd.Println(cookie)
	},
}

var cookiesDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the stored Cookie header",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		platform := cookiePlatform(cmd)
		err := cookies.Delete(platform)
		if errors.Is(err, keyring.ErrNotFound) {
			err = nil
		}
		handleErr(err)
		fmt.Printf("%s deleted %s cookie\n", style.Fg(color.Success)(icon.Get(icon.Success)), platform)
	},
}
