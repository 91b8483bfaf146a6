package manifest

import (
	"path/filepath"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestParse_BaseFields(t *testing.T) {
	tests := []struct {
		file string
		name string
		kind string
	}{
		{"valid-request.yaml", "demo", KindRequest},
		{"valid-catalog.yaml", "fixture", KindCatalog},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			m, err := Parse(testPath(tt.file))
			if err != nil {
				t.Fatalf("Parse(%s) error: %v", tt.file, err)
			}
			if m.Name != tt.name {
				t.Errorf("Name = %q, want %q", m.Name, tt.name)
			}
			if m.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", m.Kind, tt.kind)
			}
		})
	}
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse(testPath("nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestParseFile_Request(t *testing.T) {
	result, err := ParseFile(testPath("valid-request.yaml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	m, ok := result.(*RequestManifest)
	if !ok {
		t.Fatalf("expected *RequestManifest, got %T", result)
	}
	if m.Component != "Module" {
		t.Errorf("Component = %q, want %q", m.Component, "Module")
	}
	if m.CoreVersion != "7.x" {
		t.Errorf("CoreVersion = %q, want %q", m.CoreVersion, "7.x")
	}
	if m.Data["root_name"] != "demo" {
		t.Errorf("data.root_name = %v, want demo", m.Data["root_name"])
	}
	perms, ok := m.Data["permissions"].([]any)
	if !ok || len(perms) != 1 {
		t.Fatalf("data.permissions = %#v, want one item", m.Data["permissions"])
	}
	if _, ok := perms[0].(map[string]any); !ok {
		t.Errorf("permission item is %T, want map[string]any", perms[0])
	}
}

func TestParseFile_Catalog(t *testing.T) {
	result, err := ParseFile(testPath("valid-catalog.yaml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	m, ok := result.(*CatalogManifest)
	if !ok {
		t.Fatalf("expected *CatalogManifest, got %T", result)
	}
	if len(m.Plugins) != 1 || m.Plugins[0].Subdir != "Plugin/Block" {
		t.Errorf("Plugins = %+v, want one block plugin", m.Plugins)
	}
	if len(m.Plugins[0].Properties) != 2 {
		t.Errorf("plugin properties = %d, want 2", len(m.Plugins[0].Properties))
	}
	if len(m.Services) != 1 || m.Services[0].VariableName != "current_user" {
		t.Errorf("Services = %+v", m.Services)
	}
	if len(m.Hooks) != 1 || len(m.Hooks[0].Body) != 2 {
		t.Errorf("Hooks = %+v", m.Hooks)
	}
}

func TestParseFile_UnknownKind(t *testing.T) {
	_, err := ParseFile(testPath("invalid-bad-kind.yaml"))
	if err == nil {
		t.Fatal("expected error for unknown kind, got nil")
	}
}

func TestParseFile_MissingKind(t *testing.T) {
	_, err := ParseFile(testPath("invalid-missing-kind.yaml"))
	if err == nil {
		t.Fatal("expected error for missing kind, got nil")
	}
}
