// Package config manages user-level settings stored at
// ~/.codebuilder/config.yaml: the default core version, extra catalog
// directories, the output directory and logging options. Every key can also
// be set through a CODEBUILDER_ environment variable.
package config
