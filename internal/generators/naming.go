package generators

import (
	"regexp"
	"strings"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	machineNameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	// Words start with an upper case letter followed by lower case letters or
	// digits.
	pascalCaseRe = regexp.MustCompile(`^([[:upper:]][[:lower:][:digit:]]+)+$`)
)

// MachineToLabel turns a machine name into a sentence case label:
// "access_demo" and "access demo" both become "Access demo".
func MachineToLabel(name string) string {
	s := strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
	if s == "" {
		return ""
	}
	first, rest, _ := strings.Cut(s, " ")
	label := cases.Title(language.English).String(first)
	if rest != "" {
		label += " " + rest
	}
	return label
}

// ClassName turns a machine name into a PascalCase class name.
func ClassName(name string) string {
	return inflect.Camelize(strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(name))
}

// PropertyName turns a snake case variable name into a camelCase property
// name.
func PropertyName(variable string) string {
	return inflect.CamelizeDownFirst(variable)
}

// namespaceFromPath converts a directory path into a namespace fragment.
func namespaceFromPath(path string) string {
	return strings.ReplaceAll(strings.Trim(path, "/"), "/", `\`)
}

// shortClass returns the last segment of a fully qualified class name.
func shortClass(fqcn string) string {
	if i := strings.LastIndex(fqcn, `\`); i >= 0 {
		return fqcn[i+1:]
	}
	return fqcn
}

// childKey makes s usable as a child request key.
func childKey(prefix, s string) string {
	return prefix + strings.ReplaceAll(s, ":", "_")
}
