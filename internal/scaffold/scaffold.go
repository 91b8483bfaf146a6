package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/codebuilder/internal/component"
	"github.com/agentx-labs/codebuilder/internal/compose"
)

// Options controls how artifacts are written.
type Options struct {
	OutputDir string
	// Force allows writing into a directory that already has entries.
	Force bool
	// DryRun reports the files without touching the disk.
	DryRun bool
}

// Result holds the outcome of a write.
type Result struct {
	OutputDir string
	Files     []string // relative paths in artifact order
	Warnings  []string
}

// Write renders every artifact and writes it below opts.OutputDir.
func Write(artifacts []component.Artifact, opts Options) (*Result, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	seen := make(map[string]bool, len(artifacts))
	for _, a := range artifacts {
		rel := a.RelPath()
		if !filepath.IsLocal(filepath.FromSlash(rel)) {
			return nil, fmt.Errorf("artifact path %q escapes the output directory", rel)
		}
		if seen[rel] {
			return nil, fmt.Errorf("artifact %q produced twice", rel)
		}
		seen[rel] = true
	}

	result := &Result{OutputDir: opts.OutputDir}

	if !opts.DryRun {
		// Check for existing files to prevent accidental overwrites.
		existing, err := os.ReadDir(opts.OutputDir)
		if err == nil && len(existing) > 0 && !opts.Force {
			return nil, fmt.Errorf("output directory %s is not empty; remove existing files first or use --force", opts.OutputDir)
		}
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	for _, a := range artifacts {
		rel := a.RelPath()
		body := compose.Render(a)
		result.Warnings = append(result.Warnings, checkArtifact(rel, body)...)
		result.Files = append(result.Files, rel)
		if opts.DryRun {
			continue
		}

		outPath := filepath.Join(opts.OutputDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(outPath, []byte(body), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", rel, err)
		}
	}

	return result, nil
}

// checkArtifact returns warnings for generated content that does not parse.
func checkArtifact(rel, body string) []string {
	var warnings []string
	if strings.TrimSpace(body) == "" {
		warnings = append(warnings, rel+": empty file")
	}
	switch filepath.Ext(rel) {
	case ".yml", ".yaml":
		var v any
		if err := yaml.Unmarshal([]byte(body), &v); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: invalid YAML: %v", rel, err))
		}
	case ".php", ".module":
		if !strings.HasPrefix(body, "<?php") {
			warnings = append(warnings, rel+": missing <?php opening tag")
		}
	}
	return warnings
}
