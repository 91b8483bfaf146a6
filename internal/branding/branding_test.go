package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "codebuilder" {
		t.Errorf("CLIName() = %q", got)
	}
	if got := HomeDir(); got != ".codebuilder" {
		t.Errorf("HomeDir() = %q", got)
	}
	if got := EnvVar("log_level"); got != "CODEBUILDER_LOG_LEVEL" {
		t.Errorf("EnvVar() = %q", got)
	}
}
