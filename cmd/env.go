package cmd

import (
	"os"

	"github.com/liveurl/liveurl/color"
	"github.com/liveurl/liveurl/config"
	"github.com/liveurl/liveurl/style"
	"github.com/liveurl/liveurl/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set", "s", false, "Only variables that are set")
	envCmd.Flags().BoolP("unset", "u", false, "Only variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set", "unset")
	envCmd.SetOut(os.Stdout)
}

// envVar is one variable the process reads, with the section it overrides.
type envVar struct {
	name, section string
}

func envVars() []envVar {
	vars := []envVar{{name: where.EnvConfigPath, section: "Paths"}}
	for _, s := range config.Sections(lo.Values(config.Default)) {
		for _, f := range s.Fields {
			vars = append(vars, envVar{name: f.Env(), section: s.Title})
		}
	}
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env [section]",
	Short: "List the LIVEURL_* environment variables and their values",
	Long:  "List the environment variables that override config keys, grouped by section.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset"))

		vars := envVars()
		if len(args) > 0 {
			fields, err := config.Select(args[0])
			handleErr(err)
			names := lo.Map(fields, func(f config.Field, _ int) string { return f.Env() })
			vars = lo.Filter(vars, func(v envVar, _ int) bool { return lo.Contains(names, v.name) })
		}

		heading := style.New().Bold(true).Foreground(color.Heading).Render
		name := style.New().Bold(true).Foreground(color.Accent).Render

		var last string
		for _, v := range vars {
			value, present := os.LookupEnv(v.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			if v.section != last {
				if last != "" {
					cmd.Println()
				}
				cmd.Println(heading(v.section))
				last = v.section
			}

			if present {
				cmd.Printf("  %s=%s\n", name(v.name), style.Fg(color.Value)(value))
			} else {
				cmd.Printf("  %s %s\n", name(v.name), style.Faint("unset"))
			}
		}
	},
}
