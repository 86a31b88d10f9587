package cmd

import (
	"os"
	"runtime"
	"strings"
	"text/template"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/provider"
	"github.com/liveurl/liveurl/signer"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/version"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Print only the version number")
	versionCmd.Flags().BoolP("json", "j", false, "Print the build and resolution stack as JSON")
}

// buildInfo is the build plus the resolution stack the binary would use.
type buildInfo struct {
	Version   string          `json:"version"`
	Revision  string          `json:"revision,omitempty"`
	BuiltAt   string          `json:"built_at,omitempty"`
	BuiltBy   string          `json:"built_by,omitempty"`
	Go        string          `json:"go"`
	Platform  string          `json:"platform"`
	Platforms []platformChain `json:"platforms"`
	Renderer  string          `json:"renderer"`
	Signer    string          `json:"signer"`
	Signed    bool            `json:"signed"`
}

type platformChain struct {
	ID         string   `json:"id"`
	Strategies []string `json:"strategies"`
}

func currentBuild() buildInfo {
	script := signer.ScriptPath()
	signed, _ := filesystem.API().Exists(script)

	renderer := viper.GetString(key.RenderBackend)
	if viper.GetBool(key.RenderHeadless) {
		renderer += " (headless)"
	}

	return buildInfo{
		Version:  constant.Version,
		Revision: constant.Revision,
		BuiltAt:  strings.TrimSpace(constant.BuiltAt),
		BuiltBy:  constant.BuiltBy,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Platforms: lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) platformChain {
			return platformChain{ID: p.ID, Strategies: p.NewChain(provider.Deps{}).Names()}
		}),
		Renderer: renderer,
		Signer:   script,
		Signed:   signed,
	}
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":  style.Faint,
	"bold":   style.Bold,
	"accent": style.Fg(color.Accent),
	"warn":   style.Fg(color.Warning),
	"chain":  func(names []string) string { return strings.Join(names, " > ") },
	"or": func(s, fallback string) string {
		if s == "" {
			return fallback
		}
		return s
	},
}).Parse(`{{ accent "▇▇▇" }} {{ bold "liveurl" }} {{ bold .Version }}

  {{ faint "Commit" }}     {{ or .Revision "unknown" }}
  {{ faint "Built" }}      {{ or .BuiltAt "unknown" }}{{ if .BuiltBy }} by {{ .BuiltBy }}{{ end }}
  {{ faint "Runtime" }}    {{ .Go }} {{ .Platform }}
{{ range .Platforms }}
  {{ faint "Platform" }}   {{ accent .ID }} {{ chain .Strategies }}{{ end }}
  {{ faint "Renderer" }}   {{ .Renderer }}
  {{ faint "Signer" }}     {{ .Signer }}{{ if not .Signed }} {{ warn "(missing, requests go unsigned)" }}{{ end }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version and the resolution stack in use",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		info := currentBuild()
		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, info)
			return
		}

		defer version.Notify()
		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), info))
	},
}
