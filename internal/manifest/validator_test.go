package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentx-labs/codebuilder/internal/builderr"
)

func TestValidateFile_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-request.yaml", "valid-catalog.yaml"} {
		t.Run(file, func(t *testing.T) {
			result, err := ValidateFile(testPath(file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) error: %v", file, err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got invalid with %d issues:", len(result.Issues))
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidateFile_InvalidManifests(t *testing.T) {
	invalidFiles := []struct {
		file string
		desc string
	}{
		{"invalid-request-missing-component.yaml", "request without component"},
		{"invalid-catalog-bad-service.yaml", "variable_name violates pattern"},
		{"invalid-bad-kind.yaml", "unknown kind"},
		{"invalid-missing-kind.yaml", "kind missing"},
	}

	for _, tt := range invalidFiles {
		t.Run(tt.file, func(t *testing.T) {
			result, err := ValidateFile(testPath(tt.file))
			if err != nil {
				t.Fatalf("ValidateFile(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s (%s), but got valid", tt.file, tt.desc)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s (%s)", tt.file, tt.desc)
			}
		})
	}
}

func TestValidateFile_InvalidYAML(t *testing.T) {
	_, err := ValidateFile(testPath("invalid-not-yaml.yaml"))
	if err == nil {
		t.Fatal("expected error for invalid YAML, got nil")
	}
}

func TestValidate_SchemaCompiles(t *testing.T) {
	schema, err := getSchema()
	if err != nil {
		t.Fatalf("getSchema() error: %v", err)
	}
	if schema == nil {
		t.Fatal("getSchema() returned nil schema")
	}
}

func TestValidate_NonStringKeys(t *testing.T) {
	data := []byte("kind: request\ncomponent: Module\ndata:\n  1: one\n")
	result, err := Validate(data)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid, got %+v", result.Issues)
	}
}

func TestLoadRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req, err := LoadRequest(testPath("valid-request.yaml"))
		if err != nil {
			t.Fatalf("LoadRequest error: %v", err)
		}
		if req.Component != "Module" {
			t.Errorf("Component = %q, want Module", req.Component)
		}
	})

	t.Run("schema violation is user input", func(t *testing.T) {
		_, err := LoadRequest(testPath("invalid-request-missing-component.yaml"))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !builderr.IsUserInput(err) {
			t.Errorf("error %v should be classified as user input", err)
		}
	})

	t.Run("catalog is not a request", func(t *testing.T) {
		_, err := LoadRequest(testPath("valid-catalog.yaml"))
		if err == nil {
			t.Fatal("expected error for catalog manifest, got nil")
		}
	})
}

func TestLoadCatalog(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(testdataDir, "valid-catalog.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := LoadCatalog(data, "valid-catalog.yaml")
	if err != nil {
		t.Fatalf("LoadCatalog error: %v", err)
	}
	if cat.Name != "fixture" {
		t.Errorf("Name = %q, want fixture", cat.Name)
	}

	reqData, err := os.ReadFile(filepath.Join(testdataDir, "valid-request.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalog(reqData, "valid-request.yaml"); err == nil {
		t.Error("expected error loading a request as catalog")
	}
}
