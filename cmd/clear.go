package cmd

import (
	"fmt"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("all", "a", false, "Clear every cache, the logs and transient files")
}

var clearCmd = &cobra.Command{
	Use:       "clear [resource]...",
	Short:     "Delete cached identities, release checks, logs and transient files",
	Example:   "  liveurl clear identities\n  liveurl clear --all",
	Args:      cobra.OnlyValidArgs,
	ValidArgs: resourceNames(true),
	Run: func(cmd *cobra.Command, args []string) {
		names := lo.Uniq(args)
		if lo.Must(cmd.Flags().GetBool("all")) {
			names = resourceNames(true)
		}

		if len(names) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, name := range names {
			r, _ := findResource(name)
			path := r.path()
			freed := usage(path)

			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), r.about))
			err := filesystem.API().RemoveAll(path)
			erase()

			if err != nil {
				handleErr(fmt.Errorf("clear %s: %w", r.name, err))
			}

			fmt.Printf("%s %s cleared %s\n",
				style.Fg(color.Success)(icon.Get(icon.Success)),
				util.Capitalize(r.about),
				style.Faint("("+freed+")"),
			)
		}
	},
}
