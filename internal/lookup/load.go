package lookup

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentx-labs/codebuilder/internal/manifest"
)

//go:embed catalogs/*.yaml
var defaultCatalogs embed.FS

// Source is a directory of catalog manifests.
type Source struct {
	Name string // for messages, e.g. "user"
	Dir  string
}

// Load builds a Catalog from sources in priority order, followed by the
// embedded default catalog. Within a directory files are read in lexical
// order. A missing directory is skipped; an invalid manifest is an error.
func Load(sources []Source) (*Catalog, error) {
	c := NewCatalog()
	for _, src := range sources {
		if src.Dir == "" {
			continue
		}
		if err := loadDir(c, os.DirFS(src.Dir), ".", src.Dir); err != nil {
			return nil, fmt.Errorf("loading %s catalog: %w", src.Name, err)
		}
	}
	if err := loadDir(c, defaultCatalogs, "catalogs", "built-in"); err != nil {
		return nil, fmt.Errorf("loading built-in catalog: %w", err)
	}
	return c, nil
}

// Default returns the embedded default catalog alone.
func Default() (*Catalog, error) {
	return Load(nil)
}

func loadDir(c *Catalog, fsys fs.FS, dir, display string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", display, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := strings.ToLower(filepath.Ext(e.Name())); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		m, err := manifest.LoadCatalog(data, filepath.Join(display, name))
		if err != nil {
			return err
		}
		c.AddManifest(m)
	}
	return nil
}
