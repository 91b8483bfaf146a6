package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads a manifest file and returns only the base fields.
// Useful for quick kind detection without full parsing.
func Parse(path string) (*BaseManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var base BaseManifest
	if err := yaml.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &base, nil
}

// ParseFile reads a manifest file, detects its kind, and returns the
// fully typed manifest struct: *RequestManifest or *CatalogManifest.
func ParseFile(path string) (any, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, path)
}

// ParseBytes parses manifest data. name is used in error messages.
func ParseBytes(data []byte, name string) (any, error) {
	kind, err := detectKind(data)
	if err != nil {
		return nil, fmt.Errorf("detecting manifest kind in %s: %w", name, err)
	}

	switch kind {
	case KindRequest:
		return parseTyped[RequestManifest](data, name)
	case KindCatalog:
		return parseTyped[CatalogManifest](data, name)
	default:
		return nil, fmt.Errorf("unknown manifest kind %q in %s", kind, name)
	}
}

// ParseRequest reads a manifest file and parses it as a RequestManifest.
func ParseRequest(path string) (*RequestManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return parseTyped[RequestManifest](data, path)
}

// ParseCatalog parses catalog manifest data.
func ParseCatalog(data []byte, name string) (*CatalogManifest, error) {
	return parseTyped[CatalogManifest](data, name)
}

// parseTyped unmarshals YAML data into a typed manifest struct.
func parseTyped[T any](data []byte, name string) (*T, error) {
	var m T
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", name, err)
	}
	return &m, nil
}

// detectKind unmarshals YAML data into a generic map and extracts the kind field.
func detectKind(data []byte) (string, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("unmarshaling YAML: %w", err)
	}

	kindVal, ok := raw["kind"]
	if !ok {
		return "", fmt.Errorf("manifest missing required 'kind' field")
	}

	kind, ok := kindVal.(string)
	if !ok {
		return "", fmt.Errorf("manifest 'kind' field is not a string")
	}

	return kind, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
