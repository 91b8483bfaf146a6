// Package generators contains the concrete component types: the module root,
// its info and module files, permissions, hooks, router items and plugins
// with injected services. They plug into the engine only through the
// component contract.
package generators
