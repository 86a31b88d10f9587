package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/engine"
	"github.com/liveurl/liveurl/icon"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/open"
	"github.com/liveurl/liveurl/room"
	"github.com/liveurl/liveurl/selector"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("quality", "q", "", "Quality tier (OD, BD, ORIGIN, UHD, HD, SD, LD) or a digit 0-4")
	resolveCmd.Flags().BoolP("ask", "a", false, "Pick the quality interactively")
	resolveCmd.Flags().StringP("url-type", "t", string(selector.URLTypeM3U8), "Preferred record URL protocol: m3u8, flv or all")
	resolveCmd.Flags().StringP("proxy", "p", "", "Proxy for this call (http://, https:// or socks5://)")
	resolveCmd.Flags().StringP("cookies", "c", "", "Cookie header overriding the stored one")
	resolveCmd.Flags().BoolP("json", "j", false, "Print the result as JSON")
	resolveCmd.Flags().Bool("record", false, "Print the resolved room record instead of the selection")
	resolveCmd.Flags().BoolP("raw", "r", false, "Print only the record URL")
	resolveCmd.Flags().BoolP("open", "o", false, "Open the record URL with the configured player")

	resolveCmd.MarkFlagsMutuallyExclusive("quality", "ask")
	resolveCmd.MarkFlagsMutuallyExclusive("json", "raw")

	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("quality", completeQuality))
	lo.Must0(resolveCmd.RegisterFlagCompletionFunc("url-type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return selector.URLTypes(), cobra.ShellCompDirectiveNoFileComp
	}))

	lo.Must0(viper.BindPFlag(key.QualityDefault, resolveCmd.Flags().Lookup("quality")))
}

func completeQuality(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return fuzzy.FindFold(toComplete, room.TierNames()), cobra.ShellCompDirectiveNoFileComp
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a live-room URL into playable stream URLs",
	Example: "  liveurl resolve https://live.douyin.com/745964462470\n" +
		"  liveurl resolve -q HD -t flv --raw https://v.douyin.com/iQLgKSj/",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		urlType := selector.URLType(lo.Must(cmd.Flags().GetString("url-type")))
		if !lo.Contains(selector.URLTypes(), string(urlType)) {
			handleErr(fmt.Errorf("unknown url type %q, expected one of %s", urlType, strings.Join(selector.URLTypes(), ", ")))
		}

		quality := viper.GetString(key.QualityDefault)
		if lo.Must(cmd.Flags().GetBool("ask")) {
			quality = askQuality()
		}

		if !room.KnownQuality(quality) {
			_, _ = fmt.Fprintf(os.Stderr, "%s unknown quality %s, selecting %s. Did you mean %s?\n",
				icon.Get(icon.Warn),
				style.Fg(color.Error)(quality),
				style.Fg(color.Value)("OD"),
				style.Fg(color.Value)(room.SuggestQuality(quality)),
			)
		}

		var (
			proxy   = proxyFlag(cmd)
			cookies = lo.Must(cmd.Flags().GetString("cookies"))
			e       = engine.Default()
		)

		rec := e.ResolveRoom(ctx, args[0], proxy, cookies)
		if !rec.OK() {
			handleErr(fmt.Errorf("could not resolve %s", args[0]))
		}

		if lo.Must(cmd.Flags().GetBool("record")) {
			printJSON(cmd, rec)
			return
		}

		result := e.SelectStream(ctx, rec, quality, urlType, selector.Options{Proxy: proxy})

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			printJSON(cmd, result)
		case lo.Must(cmd.Flags().GetBool("raw")):
			if result.RecordURL != "" {
				cmd.Println(result.RecordURL)
			}
		default:
			handleErr(resultTemplate.Execute(cmd.OutOrStdout(), result))
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Stream(ctx, result, viper.GetString(key.Player)))
		}
	},
}

func askQuality() string {
	var quality string
	handleErr(survey.AskOne(&survey.Select{
		Message: "Quality",
		Options: []string{"OD", "UHD", "HD", "SD", "LD"},
		Default: "OD",
	}, &quality))
	return quality
}

// proxyFlag returns --proxy, or network.proxy when the flag is not given.
func proxyFlag(cmd *cobra.Command) string {
	if cmd.Flags().Changed("proxy") {
		return lo.Must(cmd.Flags().GetString("proxy"))
	}
	return viper.GetString(key.NetworkProxy)
}

func printJSON(cmd *cobra.Command, v any) {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	handleErr(encoder.Encode(v))
}

var resultTemplate = lo.Must(template.New("result").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"accent": style.Fg(color.Accent),
	"link":   func() string { return style.Fg(color.Link)(icon.Get(icon.Link)) },
	"badge":  style.Live,
	"wrap":   util.Wrap,
	"status": func(live bool) string {
		s := lo.Ternary(live, room.StatusLive, room.StatusOffline)
		return style.Fg(color.ForStatus(s))(icon.Get(icon.ForStatus(s)))
	},
}).Parse(`{{ if .IsLive }}{{ badge (status true) }}{{ else }}{{ status false }}{{ end }} {{ bold (accent .AnchorName) }}{{ if .Title }} {{ faint .Title }}{{ end }}
{{ if .IsLive }}
  {{ faint "Quality" }}  {{ bold .Quality }}
  {{ faint "M3U8" }}     {{ wrap .M3U8URL }}
  {{ faint "FLV" }}      {{ wrap .FLVURL }}

{{ link }} {{ wrap .RecordURL }}
{{ else }}
  {{ faint "Not broadcasting" }}
{{ end }}`))
