package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <request.yaml>",
	Short: "Check a request manifest without writing files",
	Long: `Validate a request manifest against the manifest schema, then resolve every
component it implies. All input problems found in independent components
are reported together.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, t, err := buildRequest(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (%d components)\n", args[0], len(t.Nodes()))
		return nil
	},
}
