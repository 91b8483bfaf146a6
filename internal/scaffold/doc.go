// Package scaffold writes composed artifacts to disk. It powers the
// "codebuilder generate" command, laying out the module directory and
// checking the generated YAML files before reporting the result.
package scaffold
