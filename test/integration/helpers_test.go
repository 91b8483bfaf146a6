//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // CODEBUILDER_HOME
	CatalogDir string // user catalog directory under HomeDir
	OutputDir  string // where modules get written
}

// setupTestEnv creates isolated temp directories and points
// CODEBUILDER_HOME at one of them. The env var is restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	home := t.TempDir()
	env := &testEnv{
		HomeDir:    home,
		CatalogDir: filepath.Join(home, "catalogs"),
		OutputDir:  t.TempDir(),
	}
	t.Setenv("CODEBUILDER_HOME", env.HomeDir)

	if err := os.MkdirAll(env.CatalogDir, 0755); err != nil {
		t.Fatalf("creating catalogs dir: %v", err)
	}
	return env
}

// setupCatalog writes a user catalog that adds an action plugin type and
// shadows the built-in current_user service.
func setupCatalog(t *testing.T, env *testEnv) {
	t.Helper()

	writeFile(t, filepath.Join(env.CatalogDir, "site.yaml"), `kind: catalog
name: site
plugins:
  - id: action
    label: Action
    subdir: Plugin/Action
    annotation: \Drupal\Core\Annotation\Action
    properties:
      - name: id
        type: string
      - name: label
        type: \Drupal\Core\Annotation\Translation
    methods:
      - name: execute
        declaration: public function execute($entity = NULL);
services:
  - id: current_user
    label: Acting user
    variable_name: acting_user
    interface: \Drupal\Core\Session\AccountProxyInterface
`)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file %s to exist: %v", path, err)
	}
}

func assertContains(t *testing.T, content, substr, context string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("%s: expected to contain %q, got:\n%s", context, substr, content)
	}
}
