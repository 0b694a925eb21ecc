package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "vercheck" {
		t.Errorf("CLIName() = %q", got)
	}
	if got := HomeDir(); got != ".vercheck" {
		t.Errorf("HomeDir() = %q", got)
	}
	if got := EnvVar("catalog"); got != "VERCHECK_CATALOG" {
		t.Errorf("EnvVar(catalog) = %q", got)
	}
}
