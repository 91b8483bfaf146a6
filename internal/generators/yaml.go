package generators

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// mappingNode builds an ordered YAML mapping from alternating keys and
// values. Values may be strings, bools, string slices or *yaml.Node.
func mappingNode(pairs ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		key := fmt.Sprint(pairs[i])
		n.Content = append(n.Content, scalarNode(key), valueNode(pairs[i+1]))
	}
	return n
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func valueNode(v any) *yaml.Node {
	switch t := v.(type) {
	case *yaml.Node:
		return t
	case bool:
		val := "false"
		if t {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range t {
			seq.Content = append(seq.Content, scalarNode(s))
		}
		return seq
	default:
		return scalarNode(fmt.Sprint(t))
	}
}

// mergeMapping copies the pairs of src into dst. A key already in dst has
// its value replaced in place.
func mergeMapping(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, val := src.Content[i], src.Content[i+1]
		replaced := false
		for j := 0; j+1 < len(dst.Content); j += 2 {
			if dst.Content[j].Value == key.Value {
				dst.Content[j+1] = val
				replaced = true
				break
			}
		}
		if !replaced {
			dst.Content = append(dst.Content, key, val)
		}
	}
}

// encodeYAML renders a node as a YAML document with two-space indentation.
func encodeYAML(n *yaml.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.String(), nil
}
