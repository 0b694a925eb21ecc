package drift

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		installed, latest string
		want              Status
	}{
		{"1.0.0", "1.0.0", UpToDate},
		{"v1.0.0", "1.0.0", UpToDate},
		{"1.0.0", "v1.2.0", UpdateAvailable},
		{"2.0.0", "1.9.9", Ahead},
		{"1.2", "1.2.0", UpToDate},
		{"1.0.0-beta.1", "1.0.0", UpdateAvailable},
		{"nightly", "nightly", UpToDate},
		{"nightly", "1.0.0", Different},
		{"abc123", "def456", Different},
	}
	for _, tt := range tests {
		t.Run(tt.installed+"_vs_"+tt.latest, func(t *testing.T) {
			if got := Compare(tt.installed, tt.latest); got != tt.want {
				t.Errorf("Compare(%q, %q) = %s, want %s", tt.installed, tt.latest, got, tt.want)
			}
		})
	}
}

func TestCompareVersions_Errors(t *testing.T) {
	if _, err := CompareVersions("not-a-version", "1.0.0"); err == nil {
		t.Error("expected error for invalid current version")
	}
	if _, err := CompareVersions("1.0.0", "still-not"); err == nil {
		t.Error("expected error for invalid latest version")
	}
}
