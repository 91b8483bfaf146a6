// Package cli defines the Cobra command tree for the codebuilder CLI. Each
// file in this package registers one top-level command (generate, tree,
// list, etc.) with the root command. Command implementations delegate to
// internal packages for the build pipeline and only handle flag parsing, I/O
// formatting and user interaction.
package cli
