package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentx-labs/codebuilder/internal/branding"
	"github.com/agentx-labs/codebuilder/internal/builderr"
	"github.com/agentx-labs/codebuilder/internal/config"
	"github.com/agentx-labs/codebuilder/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	// logger is configured from flags and config before every command.
	logger = zerolog.Nop()
)

// Persistent flags bound to config keys.
var persistentFlags = []struct {
	name, key, usage string
}{
	{"log-level", config.KeyLogLevel, "Log level (debug, info, warn, error)"},
	{"log-format", config.KeyLogFormat, "Log format (console or json)"},
	{"core-version", config.KeyCoreVersion, "Target core version when the request names none, e.g. 7.x"},
	{"catalog-dir", config.KeyCatalogDir, "Extra catalog directories, separated by the OS path list separator"},
}

func init() {
	for _, f := range persistentFlags {
		rootCmd.PersistentFlags().String(f.name, "", f.usage)
	}
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` expands a request manifest into a tree of components
(info file, permissions, hooks, router items, plugins, injected services) and
writes the files they compose into a module directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		for _, f := range persistentFlags {
			if err := viper.BindPFlag(f.key, cmd.Root().PersistentFlags().Lookup(f.name)); err != nil {
				return fmt.Errorf("binding --%s: %w", f.name, err)
			}
		}

		l, err := logging.New(cmd.ErrOrStderr(), config.Get(config.KeyLogLevel), config.Get(config.KeyLogFormat))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		if builderr.IsStructural(err) {
			fmt.Fprintf(os.Stderr, "Error: internal error: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	return err
}
