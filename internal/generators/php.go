package generators

import "strings"

// docBlock wraps lines in a PHP doc comment.
func docBlock(lines ...string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, "/**")
	for _, l := range lines {
		if l == "" {
			out = append(out, " *")
			continue
		}
		out = append(out, " * "+l)
	}
	return append(out, " */")
}

// indent prefixes every non-empty line.
func indent(lines []string, prefix string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l != "" {
			l = prefix + l
		}
		out[i] = l
	}
	return out
}

// phpFileHeader starts every generated PHP file.
func phpFileHeader(namespace string) []string {
	lines := []string{"<?php", ""}
	if namespace != "" {
		lines = append(lines, "namespace "+namespace+";", "")
	}
	return lines
}

// trimDeclaration drops the trailing semicolon of an interface method
// declaration.
func trimDeclaration(decl string) string {
	return strings.TrimSuffix(strings.TrimSpace(decl), ";")
}
