package version

import (
	"strings"
	"testing"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		commit string
		date   string
		want   string
	}{
		{"bare", "", "", "chainalign 1.2.3"},
		{"commit is shortened", "1234567890abcdef1234", "", "chainalign 1.2.3 (1234567890ab)"},
		{"with date", "abc123", "2024-01-15", "chainalign 1.2.3 (abc123) built 2024-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			override(t, "1.2.3", tt.commit, tt.date)
			if got := String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestColored(t *testing.T) {
	override(t, "1.2.3-rc.1+build.123", "", "")

	if got := Colored(false); got != "1.2.3-rc.1+build.123" {
		t.Errorf("Colored(false) = %q", got)
	}
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(true) has no escape sequences: %q", got)
	}
	if !strings.HasSuffix(got, "-rc.1+build.123") {
		t.Errorf("suffix must stay plain: %q", got)
	}
}

func BenchmarkString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = String()
	}
}
