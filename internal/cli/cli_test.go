package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentx-labs/codebuilder/internal/lookup"
)

const demoRequest = `kind: request
name: demo
component: Module
core_version: "7.x"
data:
  root_name: demo
  permissions:
    - permission: access demo
      title: Access demo
  router_items:
    - demo/page
    - demo/other
`

// runCommand executes the root command in an isolated home directory and
// returns its standard output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CODEBUILDER_HOME", t.TempDir())
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so values do not leak
// between test runs of the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeRequest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestGeneratePrint(t *testing.T) {
	out, err := runCommand(t, "generate", writeRequest(t, demoRequest), "--print")
	require.NoError(t, err)

	assert.Contains(t, out, "==> demo.info <==\nname = Demo\n")
	assert.Contains(t, out, "==> demo.module <==\n<?php\n")
	assert.Contains(t, out, "function demo_menu() {")
	assert.Contains(t, out, "$items['demo/other'] = array(")
	assert.Contains(t, out, "==> demo.permissions.yml <==\naccess demo:\n  title: Access demo\n")
}

func TestGenerateWrites(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")
	out, err := runCommand(t, "generate", writeRequest(t, demoRequest), "--output-dir", outDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Created Module at "+outDir+"/")
	for _, f := range []string{"demo.info", "demo.module", "demo.permissions.yml"} {
		assert.FileExists(t, filepath.Join(outDir, f))
	}

	// A second run refuses to overwrite.
	_, err = runCommand(t, "generate", writeRequest(t, demoRequest), "--output-dir", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")
}

func TestGenerateDryRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")
	out, err := runCommand(t, "generate", writeRequest(t, demoRequest), "--output-dir", outDir, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "Would create Module")
	assert.Contains(t, out, "  demo.module\n")
	assert.NoDirExists(t, outDir)
}

func TestGenerateCoreVersionFlag(t *testing.T) {
	request := strings.Replace(demoRequest, "core_version: \"7.x\"\n", "", 1)
	out, err := runCommand(t, "generate", writeRequest(t, request), "--print", "--core-version", "8.x")
	require.NoError(t, err)

	assert.Contains(t, out, "==> demo.info.yml <==")
	assert.Contains(t, out, "==> demo.routing.yml <==")
	assert.NotContains(t, out, "demo_menu")
}

func TestValidate(t *testing.T) {
	out, err := runCommand(t, "validate", writeRequest(t, demoRequest))
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	bad := demoRequest + "  plugins:\n    - plugin_type: nope\n"
	_, err = runCommand(t, "validate", writeRequest(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)

	_, err = runCommand(t, "validate", writeRequest(t, "kind: request\ndata: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest")
}

func TestTree(t *testing.T) {
	out, err := runCommand(t, "tree", writeRequest(t, demoRequest))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "  Module\n"), "output:\n%s", out)
	assert.Contains(t, out, "info: Info [file]")
	assert.Contains(t, out, "hooks: Hooks (shared)")
}

func TestTreeFlat(t *testing.T) {
	out, err := runCommand(t, "tree", writeRequest(t, demoRequest), "--flat")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, []string{"PATH", "TYPE", "HANDLING", "FILE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"(root)", "Module", "singleton", "-"}, strings.Fields(lines[1]))
	assert.Contains(t, out, "info ")
	// The shared hooks node is listed once.
	assert.Equal(t, 1, strings.Count(out, " Hooks "))
}

func TestListComponents(t *testing.T) {
	out, err := runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "Permission")
	assert.Contains(t, out, "< 8, >= 8")
}

func TestListCatalogJSON(t *testing.T) {
	out, err := runCommand(t, "list", "services", "--json")
	require.NoError(t, err)

	var opts []lookup.Option
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	require.NotEmpty(t, opts)
	assert.Equal(t, "current_user", opts[0].ID)

	_, err = runCommand(t, "list", "widgets")
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	out, err := runCommand(t, "search", "storage", "--kind", "service")
	require.NoError(t, err)
	assert.Contains(t, out, "storage:node")
	assert.Contains(t, out, "storage:user")
	assert.NotContains(t, out, "current_user")

	out, err = runCommand(t, "search", "no-such-thing")
	require.NoError(t, err)
	assert.Contains(t, out, `No catalog entries found matching "no-such-thing"`)
}

func TestMatchesSearch(t *testing.T) {
	d := lookup.Descriptor{ID: "entity_type.manager", Label: "Entity type manager", Description: "The entity type manager"}
	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"empty query matches all", "", true},
		{"id match", "entity_type", true},
		{"case insensitive label", "ENTITY TYPE", true},
		{"description match", "the entity", true},
		{"no match", "messenger", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesSearch(d, tt.query); got != tt.expected {
				t.Errorf("matchesSearch(%q) = %v, want %v", tt.query, got, tt.expected)
			}
		})
	}
}

func TestCatalogShow(t *testing.T) {
	out, err := runCommand(t, "catalog", "show", "service", "storage:node")
	require.NoError(t, err)
	assert.Contains(t, out, "variable_name: node_storage")
	assert.Contains(t, out, "real_service: entity_type.manager")

	_, err = runCommand(t, "catalog", "show", "hook", "hook_nope")
	require.Error(t, err)
}

func TestConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CODEBUILDER_HOME", home)

	// runCommand sets its own home; use the command tree directly to keep one.
	run := func(args ...string) string {
		viper.Reset()
		resetFlags(rootCmd)
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}
	t.Cleanup(viper.Reset)

	assert.Equal(t, "Set core_version = 7.x\n", run("config", "set", "core_version", "7.x"))
	assert.Equal(t, "7.x\n", run("config", "get", "core_version"))
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}

func TestInitThenGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	out, err := runCommand(t, "init", "shop", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+path)

	out, err = runCommand(t, "generate", path, "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "==> shop.info.yml <==")
	assert.Contains(t, out, "access shop:")

	_, err = runCommand(t, "init", "shop", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = runCommand(t, "init", "Bad-Name")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "codebuilder version "), "output: %q", out)
}
