package cmd

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/liveurl/liveurl/room"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var schemaTargets = map[string]any{
	"result":   &room.PlaybackResult{},
	"record":   &room.Record{},
	"variants": &[]room.Variant{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().StringP("type", "t", "result", "Output to describe: result, record or variants")
	lo.Must0(schemaCmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return lo.Keys(schemaTargets), cobra.ShellCompDirectiveNoFileComp
	}))
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the --json outputs",
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("type"))
		target, ok := schemaTargets[name]
		if !ok {
			handleErr(fmt.Errorf("unknown schema %q, expected one of %s", name, strings.Join(lo.Keys(schemaTargets), ", ")))
		}

		reflector := &jsonschema.Reflector{DoNotReference: true}
		printJSON(cmd, reflector.Reflect(target))
	},
}
