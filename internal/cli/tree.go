package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/codebuilder/internal/tree"
)

var treeFlat bool

func init() {
	treeCmd.Flags().BoolVar(&treeFlat, "flat", false, "List nodes in creation order with their handling instead of drawing the tree")
	rootCmd.AddCommand(treeCmd)
}

var treeCmd = &cobra.Command{
	Use:   "tree <request.yaml>",
	Short: "Print the component tree of a request",
	Long: `Print the components a request expands into. Shared components are listed
once under the requester that created them; redirected attachments are
shown with an arrow and assembly components are marked [file].

With --flat, every node is listed once in creation order with its path,
type and handling.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, t, err := buildRequest(args[0])
		if err != nil {
			return err
		}
		if treeFlat {
			return printFlatTree(cmd, t)
		}
		t.Print(cmd.OutOrStdout())
		return nil
	},
}

func printFlatTree(cmd *cobra.Command, t *tree.Tree) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PATH\tTYPE\tHANDLING\tFILE")
	err := t.Walk(func(n *tree.Node) error {
		path := n.Path()
		if path == "" {
			path = "(root)"
		}
		file := "-"
		if n.Assembly() {
			file = "yes"
		}
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", path, n.Type, n.Handling(), file)
		return err
	})
	if err != nil {
		return err
	}
	return w.Flush()
}
