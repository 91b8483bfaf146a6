package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/codebuilder/internal/lookup"
)

var (
	searchKindFilter string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the plugin, service and hook catalogs",
	Long: `Search every catalog entry. The query matches against ids, labels and
descriptions (case-insensitive substring). Use --kind to restrict the search
to plugins, services or hooks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchKindFilter, "kind", "", "Filter by catalog (plugin, service, hook)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(searchCmd)
}

// searchEntry is a catalog entry for display.
type searchEntry struct {
	Kind        string `json:"kind"`
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	kinds := lookup.Kinds
	if searchKindFilter != "" {
		k, err := lookup.ParseKind(searchKindFilter)
		if err != nil {
			return err
		}
		kinds = []lookup.Kind{k}
	}

	svc, err := loadLookup()
	if err != nil {
		return err
	}
	entries, err := searchCatalog(svc, kinds, query)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		msg := "No catalog entries found"
		if query != "" {
			msg += fmt.Sprintf(" matching %q", query)
		}
		if searchKindFilter != "" {
			msg += fmt.Sprintf(" with --kind=%s", searchKindFilter)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	}

	if searchJSON {
		return printJSON(cmd, entries)
	}
	return printSearchTable(cmd, entries)
}

// searchCatalog returns the entries of kinds matching query, in catalog
// order.
func searchCatalog(svc lookup.Service, kinds []lookup.Kind, query string) ([]searchEntry, error) {
	var entries []searchEntry
	for _, kind := range kinds {
		opts, err := svc.TypeOptions(kind)
		if err != nil {
			return nil, err
		}
		all, err := svc.TypeCatalog(kind)
		if err != nil {
			return nil, err
		}
		for _, o := range opts {
			d := all[o.ID]
			if !matchesSearch(d, query) {
				continue
			}
			entries = append(entries, searchEntry{
				Kind:        string(kind),
				ID:          d.ID,
				Label:       d.Label,
				Description: d.Description,
			})
		}
	}
	return entries, nil
}

// matchesSearch reports whether the entry's id, label or description
// contains query, ignoring case. The empty query matches everything.
func matchesSearch(d lookup.Descriptor, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.ID), q) ||
		strings.Contains(strings.ToLower(d.Label), q) ||
		strings.Contains(strings.ToLower(d.Description), q)
}

func printSearchTable(cmd *cobra.Command, entries []searchEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KIND\tID\tLABEL\tDESCRIPTION")
	for _, e := range entries {
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Kind, e.ID, e.Label, desc)
	}
	return w.Flush()
}
