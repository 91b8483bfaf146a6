package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/codebuilder/internal/generators"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/registry"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list [components|plugins|services|hooks]",
	Short: "List component types or catalog entries",
	Long: `List the registered component types (the default), or the entries of one
catalog: plugin types, injectable services or hooks.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"components", "plugins", "services", "hooks"},
	RunE:      runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	what := "components"
	if len(args) > 0 {
		what = args[0]
	}
	if what == "components" || what == "component" {
		summaries := generators.NewRegistry().Summaries()
		if listJSON {
			return printJSON(cmd, summaries)
		}
		return printComponentTable(cmd, summaries)
	}

	kind, err := lookup.ParseKind(what)
	if err != nil {
		return err
	}
	svc, err := loadLookup()
	if err != nil {
		return err
	}
	opts, err := svc.TypeOptions(kind)
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s entries found.\n", kind)
		return nil
	}
	if listJSON {
		return printJSON(cmd, opts)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL")
	for _, o := range opts {
		fmt.Fprintf(w, "%s\t%s\n", o.ID, o.Label)
	}
	return w.Flush()
}

func printComponentTable(cmd *cobra.Command, summaries []registry.TypeSummary) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TYPE\tHANDLING\tFILE\tVERSIONS\tPROPERTIES")
	for _, s := range summaries {
		file := "-"
		if s.Assembly {
			file = "yes"
		}
		versions := "any"
		if len(s.Constraints) > 0 {
			versions = strings.Join(s.Constraints, ", ")
		}
		props := strings.Join(s.Properties, ", ")
		if len(props) > 60 {
			props = props[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Type, s.Handling, file, versions, props)
	}
	return w.Flush()
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
