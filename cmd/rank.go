package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/engine"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/playlist"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("proxy", "p", "", "Proxy used to download the playlist")
	rankCmd.Flags().BoolP("json", "j", false, "Print the variants as JSON")
	rankCmd.Flags().BoolP("first", "1", false, "Print only the highest-bandwidth variant")
}

var rankCmd = &cobra.Command{
	Use:   "rank [playlist]",
	Short: "Order the variants of an HLS master playlist by bandwidth",
	Long: "Order the variants of an HLS master playlist by bandwidth, highest first.\n" +
		"The playlist is a URL, a file path, or - for standard input.",
	Example: "  liveurl rank https://example.com/master.m3u8\n" +
		"  curl -s https://example.com/master.m3u8 | liveurl rank -",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		variants, err := readVariants(ctx, cmd, args[0])
		handleErr(err)

		switch {
		case lo.Must(cmd.Flags().GetBool("first")):
			if len(variants) > 0 {
				cmd.Println(variants[0].URL)
			}
		case lo.Must(cmd.Flags().GetBool("json")):
			printJSON(cmd, variants)
		default:
			cmd.Println(style.Faint(util.Quantify(len(variants), "variant", "variants")))
			for _, v := range variants {
				cmd.Printf("%s %s\n", style.Fg(color.Value)(fmt.Sprintf("%10d", v.Bandwidth)), v.URL)
			}
		}
	},
}

func readVariants(ctx context.Context, cmd *cobra.Command, arg string) ([]room.Variant, error) {
	var body []byte
	var err error

	switch {
	case arg == "-":
		body, err = io.ReadAll(cmd.InOrStdin())
	case strings.HasPrefix(arg, "http://"), strings.HasPrefix(arg, "https://"):
		return engine.Default().FetchVariants(ctx, arg, proxyFlag(cmd))
	default:
		body, err = filesystem.API().ReadFile(arg)
	}

	if err != nil {
		return nil, err
	}
	return playlist.Variants(string(body)), nil
}
