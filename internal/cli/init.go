package cli

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/codebuilder/internal/config"
	"github.com/agentx-labs/codebuilder/internal/generators"
	"github.com/agentx-labs/codebuilder/internal/manifest"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var (
	initOutput string
	initForce  bool
)

func init() {
	initCmd.Flags().StringVar(&initOutput, "output", "", "Request file to write (default: ./<name>.yaml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing request file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Write a starter request manifest",
	Long: `Write a request manifest for a new module named <name>, ready to edit and
pass to "generate".

Example:
  codebuilder init demo --core-version 7.x`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !namePattern.MatchString(name) {
			return fmt.Errorf("invalid name %q: must match pattern [a-z][a-z0-9_]*", name)
		}

		path := initOutput
		if path == "" {
			path = name + ".yaml"
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}

		coreVersion := config.Get(config.KeyCoreVersion)
		if coreVersion == "" {
			coreVersion = generators.DefaultCoreVersion
		}
		req := manifest.RequestManifest{
			BaseManifest: manifest.BaseManifest{
				Kind:        manifest.KindRequest,
				Name:        name,
				Description: "Request for the " + name + " module",
			},
			Component:   generators.RootType,
			CoreVersion: coreVersion,
			Data: map[string]any{
				"root_name":         name,
				"readable_name":     generators.MachineToLabel(name),
				"short_description": "TODO: Description of module",
				"permissions": []map[string]any{
					{"permission": "access " + name},
				},
			},
		}
		data, err := yaml.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		// Validate the written manifest against the schema.
		result, err := manifest.ValidateFile(path)
		if err != nil {
			return fmt.Errorf("validating %s: %w", path, err)
		}
		if err := result.Err(path); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "\nNext steps:")
		fmt.Fprintf(cmd.OutOrStdout(), "  1. Edit %s to add permissions, router items, hooks and plugins\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  2. Run '%s generate %s'\n", cmd.Root().Name(), path)
		return nil
	},
}
