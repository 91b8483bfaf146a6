package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentx-labs/codebuilder/internal/component"
)

func sampleArtifacts() []component.Artifact {
	return []component.Artifact{
		{Filename: "demo.info.yml", Body: []string{"name: Demo\n", "type: module\n"}, Join: component.JoinNone},
		{Filename: "demo.module", Body: []string{"<?php", "", "function demo_cron() {", "}", ""}},
		{Path: "src/Plugin/Block", Filename: "DemoBlock.php", Body: []string{"<?php", ""}},
	}
}

func TestWrite(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")

	result, err := Write(sampleArtifacts(), Options{OutputDir: outDir})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	assertFiles(t, result, []string{"demo.info.yml", "demo.module", "src/Plugin/Block/DemoBlock.php"})
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	assertEqual(t, readGenerated(t, outDir, "demo.info.yml"), "name: Demo\ntype: module\n")
	assertEqual(t, readGenerated(t, outDir, "demo.module"), "<?php\n\nfunction demo_cron() {\n}\n")
	assertEqual(t, readGenerated(t, outDir, "src/Plugin/Block/DemoBlock.php"), "<?php\n")
}

func TestWriteRefusesNonEmptyDir(t *testing.T) {
	outDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(outDir, "existing.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Write(sampleArtifacts(), Options{OutputDir: outDir})
	if err == nil || !strings.Contains(err.Error(), "not empty") {
		t.Fatalf("Write() error = %v, want not empty error", err)
	}

	if _, err := Write(sampleArtifacts(), Options{OutputDir: outDir, Force: true}); err != nil {
		t.Fatalf("Write() with force error: %v", err)
	}
	assertEqual(t, readGenerated(t, outDir, "existing.txt"), "x")
	readGenerated(t, outDir, "demo.module")
}

func TestWriteDryRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "demo")

	result, err := Write(sampleArtifacts(), Options{OutputDir: outDir, DryRun: true})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if len(result.Files) != 3 {
		t.Errorf("got %d files, want 3", len(result.Files))
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", outDir)
	}
}

func TestWriteRejectsBadPaths(t *testing.T) {
	tests := []struct {
		name      string
		artifacts []component.Artifact
		want      string
	}{
		{
			name:      "escaping path",
			artifacts: []component.Artifact{{Path: "../outside", Filename: "x.php"}},
			want:      "escapes",
		},
		{
			name: "duplicate",
			artifacts: []component.Artifact{
				{Filename: "demo.module"},
				{Filename: "demo.module"},
			},
			want: "produced twice",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Write(tt.artifacts, Options{OutputDir: t.TempDir()})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Write() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestWriteWarnings(t *testing.T) {
	artifacts := []component.Artifact{
		{Filename: "broken.yml", Body: []string{"key: [unclosed\n"}, Join: component.JoinNone},
		{Filename: "demo.module", Body: []string{"function f() {}"}},
	}
	result, err := Write(artifacts, Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("got warnings %v, want 2", result.Warnings)
	}
	assertContains(t, result.Warnings[0], "broken.yml: invalid YAML")
	assertContains(t, result.Warnings[1], "missing <?php")
}

// ─── Test Helpers ──────────────────────────────────────────────────

func readGenerated(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertEqual(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}
