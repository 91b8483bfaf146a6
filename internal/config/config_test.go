package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CODEBUILDER_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestDirOverride(t *testing.T) {
	dir := setup(t)
	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got := FilePath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	setup(t)
	Load()
	if got := Get(KeyLogLevel); got != "warn" {
		t.Errorf("log_level = %q, want warn", got)
	}
	if got := Get(KeyOutputDir); got != "." {
		t.Errorf("output_dir = %q, want .", got)
	}
	if got := Get(KeyCoreVersion); got != "" {
		t.Errorf("core_version = %q, want empty", got)
	}
}

func TestSetPersists(t *testing.T) {
	dir := setup(t)
	Load()
	if err := Set(KeyCoreVersion, "7.x"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), "core_version: 7.x") {
		t.Errorf("config file = %q", data)
	}

	viper.Reset()
	Load()
	if got := Get(KeyCoreVersion); got != "7.x" {
		t.Errorf("core_version after reload = %q, want 7.x", got)
	}
}

func TestSetUnknownKey(t *testing.T) {
	setup(t)
	Load()
	err := Set("mirror", "x")
	if err == nil || !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("Set() error = %v", err)
	}
}

func TestEnvOverride(t *testing.T) {
	setup(t)
	t.Setenv("CODEBUILDER_LOG_LEVEL", "debug")
	Load()
	if got := Get(KeyLogLevel); got != "debug" {
		t.Errorf("log_level = %q, want debug", got)
	}
}

func TestCatalogDirs(t *testing.T) {
	setup(t)
	Load()
	viper.Set(KeyCatalogDir, strings.Join([]string{"/a", " ", "/b"}, string(os.PathListSeparator)))
	got := CatalogDirs()
	if len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("CatalogDirs() = %v", got)
	}
}
