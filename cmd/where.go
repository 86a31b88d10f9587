package cmd

import (
	"fmt"
	"os"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(whereCmd)
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:       "where [resource]",
	Short:     "Show where config, signature scripts and caches live",
	Long:      "Show where config, signature scripts and caches live.\nWith a resource name only its path is printed, for use in scripts.",
	Example:   "  liveurl where\n  $EDITOR \"$(liveurl where signer)\"",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: resourceNames(false),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			r, _ := findResource(args[0])
			cmd.Println(r.path())
			return
		}

		name := style.New().Bold(true).Foreground(color.Heading).Render
		for i, r := range resources {
			if i > 0 {
				cmd.Println()
			}

			path := r.path()
			cmd.Printf("%s %s\n", name(r.name), style.Faint(fmt.Sprintf("%s, %s", r.about, usage(path))))
			cmd.Println(style.Fg(color.Link)(path))
		}
	},
}
