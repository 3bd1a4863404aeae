package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestColoredWithoutColor(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()

	color.NoColor = true
	cases := map[string]string{
		"1.2.3":       "1.2.3",
		"0.1.0-dev":   "0.1.0-dev",
		"2.0":         "2.0",
		"1.2.3.4-rc1": "1.2.3.4-rc1",
	}
	for in, want := range cases {
		Version = in
		if got := Colored(); got != want {
			t.Errorf("Colored() for %q = %q, want %q", in, got, want)
		}
	}
}

func TestCurrent(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()

	GitCommit = "abc123"
	info := Current()
	if info.Version != Version || info.GitCommit != "abc123" {
		t.Fatalf("Current() = %+v", info)
	}
}
