package generators

import "testing"

func TestMachineToLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"access demo", "Access demo"},
		{"access_demo", "Access demo"},
		{"demo", "Demo"},
		{"  spaced   out ", "Spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MachineToLabel(tt.in); got != tt.want {
			t.Errorf("MachineToLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClassAndPropertyNames(t *testing.T) {
	if got := ClassName("demo_block"); got != "DemoBlock" {
		t.Errorf("ClassName = %q", got)
	}
	if got := ClassName("field.formatter"); got != "FieldFormatter" {
		t.Errorf("ClassName = %q", got)
	}
	if got := PropertyName("entity_type_manager"); got != "entityTypeManager" {
		t.Errorf("PropertyName = %q", got)
	}
}

func TestPascalCase(t *testing.T) {
	for _, ok := range []string{"DemoBlock", "DemoBlock2", "Block"} {
		if !pascalCaseRe.MatchString(ok) {
			t.Errorf("%q should match", ok)
		}
	}
	for _, bad := range []string{"demoBlock", "Demo_Block", "DEMO", ""} {
		if pascalCaseRe.MatchString(bad) {
			t.Errorf("%q should not match", bad)
		}
	}
}
