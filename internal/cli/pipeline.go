package cli

import (
	"fmt"
	"path/filepath"

	"github.com/agentx-labs/codebuilder/internal/config"
	"github.com/agentx-labs/codebuilder/internal/generators"
	"github.com/agentx-labs/codebuilder/internal/lookup"
	"github.com/agentx-labs/codebuilder/internal/manifest"
	"github.com/agentx-labs/codebuilder/internal/property"
	"github.com/agentx-labs/codebuilder/internal/tree"
)

// catalogSources lists the catalog directories in priority order: the
// configured directories, then ~/.codebuilder/catalogs. The built-in
// catalog always comes last.
func catalogSources() []lookup.Source {
	var sources []lookup.Source
	for _, dir := range config.CatalogDirs() {
		sources = append(sources, lookup.Source{Name: dir, Dir: dir})
	}
	return append(sources, lookup.Source{Name: "user", Dir: filepath.Join(config.Dir(), "catalogs")})
}

func loadLookup() (*lookup.Catalog, error) {
	svc, err := lookup.Load(catalogSources())
	if err != nil {
		return nil, fmt.Errorf("loading catalogs: %w", err)
	}
	return svc, nil
}

// buildRequest loads a request manifest and expands it into a component
// tree.
func buildRequest(path string) (*manifest.RequestManifest, *tree.Tree, error) {
	req, err := manifest.LoadRequest(path)
	if err != nil {
		return nil, nil, err
	}
	svc, err := loadLookup()
	if err != nil {
		return nil, nil, err
	}

	coreVersion := req.CoreVersion
	if coreVersion == "" {
		coreVersion = config.Get(config.KeyCoreVersion)
	}

	b := tree.New(generators.NewRegistry(), svc,
		tree.WithLogger(logger),
		tree.WithCoreVersion(coreVersion),
	)
	t, err := b.Build(req.Component, property.Values(req.Data))
	if err != nil {
		return nil, nil, fmt.Errorf("building %s:\n%w", path, err)
	}
	return req, t, nil
}
