package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svfmt/internal/config"
	"svfmt/internal/driver"
)

const (
	messySrc     = "module m;\nwire a;\nendmodule\n"
	formattedSrc = "module m ;\n  wire a ;\nendmodule\n"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name    string
		flags   fmtFlags
		cfg     config.Config
		want    driver.Mode
		wantDir string
		wantErr bool
	}{
		{name: "default stdout", want: driver.ModeStdout},
		{name: "check", flags: fmtFlags{check: true}, want: driver.ModeCheck},
		{name: "inplace flag", flags: fmtFlags{inplace: true}, want: driver.ModeInPlace},
		{name: "outdir flag", flags: fmtFlags{outdir: "out"}, want: driver.ModeOutDir, wantDir: "out"},
		{name: "config inplace", cfg: config.Config{Output: config.OutputSection{InPlace: true}}, want: driver.ModeInPlace},
		{name: "config dir", cfg: config.Config{Root: "proj", Output: config.OutputSection{Dir: "fmt"}}, want: driver.ModeOutDir, wantDir: filepath.Join("proj", "fmt")},
		{name: "flag beats config", flags: fmtFlags{stdout: true}, cfg: config.Config{Output: config.OutputSection{InPlace: true}}, want: driver.ModeStdout},
		{name: "conflict", flags: fmtFlags{check: true, inplace: true}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, dir, err := selectMode(&tt.flags, &tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
			assert.Equal(t, tt.wantDir, dir)
		})
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, "on": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := readUIMode("sometimes")
	assert.Error(t, err)
}

func TestRootFormatsInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.sv", messySrc)

	out, _, err := execute(t, "", "--color", "off", "--ui", "off", "--inplace", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "formatted "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, formattedSrc, string(data))
}

func TestFmtCheckReportsChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.sv", messySrc)

	out, _, err := execute(t, "", "fmt", "--color", "off", "--ui", "off", "--check", path)
	require.ErrorIs(t, err, errChangesRequired)
	assert.Contains(t, out, "would reformat "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, messySrc, string(data))
}

func TestFmtStdin(t *testing.T) {
	out, _, err := execute(t, messySrc, "fmt", "--color", "off", "-")
	require.NoError(t, err)
	assert.Equal(t, formattedSrc, out)

	_, errOut, err := execute(t, "module m;\nbegin\nendmodule\n", "fmt", "--color", "off", "-")
	require.ErrorIs(t, err, errFilesFailed)
	assert.Contains(t, errOut, "<stdin> parse failed")
}

func TestRenderFmtText(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.sv", "module m;\nbegin\nendmodule\n")
	good := writeSource(t, dir, "good.sv", formattedSrc)

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Mode: driver.ModeCheck})
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	failed, changed := renderFmtText(&out, &errOut, results, driver.ModeCheck, &fmtFlags{})
	assert.True(t, failed)
	assert.False(t, changed)
	assert.Contains(t, errOut.String(), bad+" parse failed")
	assert.Contains(t, errOut.String(), "SYN")
	assert.Contains(t, out.String(), "unchanged "+good)

	out.Reset()
	renderFmtText(&out, &errOut, results, driver.ModeCheck, &fmtFlags{quiet: true})
	assert.Empty(t, out.String())
}

func TestRenderFmtJSON(t *testing.T) {
	results := []driver.FormatResult{
		{Path: "a.sv", Changed: true},
		{Path: "b.sv", Err: &driver.ParseError{Path: "b.sv"}},
	}
	var out bytes.Buffer
	require.NoError(t, renderFmtJSON(&out, results, driver.ModeCheck))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, true, decoded[0]["changed"])
	assert.Equal(t, "check", decoded[0]["mode"])
	assert.Equal(t, "b.sv parse failed", decoded[1]["error"])
}
