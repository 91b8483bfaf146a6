package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/codebuilder/internal/lookup"
)

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogPathsCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the plugin, service and hook catalogs",
	Long: `Inspect the catalogs that supply plugin types, injectable services and hooks.

Catalogs are YAML manifests of kind "catalog". They are read from the
directories named by catalog_dir, then ~/.codebuilder/catalogs/, then the
built-in catalog. The first definition of an id wins.`,
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <plugin|service|hook> <id>",
	Short: "Show one catalog entry",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := lookup.ParseKind(args[0])
		if err != nil {
			return err
		}
		svc, err := loadLookup()
		if err != nil {
			return err
		}
		d, ok := svc.Get(kind, args[1])
		if !ok {
			return fmt.Errorf("%s %q not found in catalog", kind, args[1])
		}
		data, err := yaml.Marshal(d.Data)
		if err != nil {
			return fmt.Errorf("marshaling %s %q: %w", kind, args[1], err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var catalogPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "List the catalog directories in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range catalogSources() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.Name, s.Dir)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "built-in\t(embedded)")
		return nil
	},
}
