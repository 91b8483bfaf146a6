package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/codebuilder/internal/compose"
	"github.com/agentx-labs/codebuilder/internal/config"
	"github.com/agentx-labs/codebuilder/internal/scaffold"
)

var (
	generateOutputDir string
	generateDryRun    bool
	generateForce     bool
	generatePrint     bool
)

func init() {
	generateCmd.Flags().StringVar(&generateOutputDir, "output-dir", "", "Output directory (default: <output_dir>/<root_name>)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "List the files without writing them")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Write into a non-empty output directory")
	generateCmd.Flags().BoolVar(&generatePrint, "print", false, "Print the generated files to stdout instead of writing them")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate <request.yaml>",
	Short: "Generate module files from a request manifest",
	Long: `Expand a request manifest into its component tree, compose the output
files and write them to the output directory.

Examples:
  codebuilder generate demo.yaml
  codebuilder generate demo.yaml --core-version 7.x --print
  codebuilder generate demo.yaml --output-dir ./modules/demo --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, t, err := buildRequest(args[0])
		if err != nil {
			return err
		}

		artifacts, err := compose.New(compose.WithLogger(logger)).Compose(t)
		if err != nil {
			return fmt.Errorf("composing files: %w", err)
		}

		out := cmd.OutOrStdout()
		if generatePrint {
			for _, a := range artifacts {
				fmt.Fprintf(out, "==> %s <==\n%s\n", a.RelPath(), compose.Render(a))
			}
			return nil
		}

		outDir := generateOutputDir
		if outDir == "" {
			outDir = filepath.Join(config.Get(config.KeyOutputDir), t.Root.Data.String("root_name"))
		}
		result, err := scaffold.Write(artifacts, scaffold.Options{
			OutputDir: outDir,
			Force:     generateForce,
			DryRun:    generateDryRun,
		})
		if err != nil {
			return err
		}

		verb := "Created"
		if generateDryRun {
			verb = "Would create"
		}
		fmt.Fprintf(out, "%s %s at %s/\n", verb, t.Root.Type, result.OutputDir)
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
		if len(result.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for _, w := range result.Warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
		}
		return nil
	},
}
