package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svfmt/internal/driver"
	"svfmt/internal/observ"
)

const (
	messySrc     = "module m;\nwire a;\nendmodule\n"
	formattedSrc = "module m ;\n  wire a ;\nendmodule\n"
	brokenSrc    = "module m;\nbegin\nendmodule\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFormatSource(t *testing.T) {
	out, err := driver.FormatSource("top.sv", []byte(messySrc), 0)
	require.NoError(t, err)
	assert.Equal(t, formattedSrc, string(out))
}

func TestFormatSourceParseFailure(t *testing.T) {
	_, err := driver.FormatSource("bad.sv", []byte(brokenSrc), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, driver.ErrParseFailed)

	var perr *driver.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "bad.sv", perr.Path)
	assert.True(t, perr.Bag.HasErrors())
	assert.Contains(t, perr.Diagnostics(false), "bad.sv:")
	assert.Equal(t, "bad.sv parse failed", err.Error())
}

func TestFormatPathsStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "top.sv", messySrc)

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{Mode: driver.ModeStdout})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].Changed)
	assert.Equal(t, formattedSrc, string(results[0].Formatted))
	assert.Equal(t, messySrc, readFile(t, path), "stdout mode must not touch the file")
}

func TestFormatPathsInPlace(t *testing.T) {
	dir := t.TempDir()
	messy := writeFile(t, dir, "a.sv", messySrc)
	clean := writeFile(t, dir, "b.sv", formattedSrc)

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Mode: driver.ModeInPlace})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, messy, results[0].Path)
	assert.True(t, results[0].Changed)
	assert.Equal(t, clean, results[1].Path)
	assert.False(t, results[1].Changed)
	assert.Equal(t, formattedSrc, readFile(t, messy))
	assert.Equal(t, formattedSrc, readFile(t, clean))
}

func TestFormatPathsCheckLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sv", messySrc)

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{Mode: driver.ModeCheck})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)
	assert.Nil(t, results[0].Formatted)
	assert.Equal(t, messySrc, readFile(t, path))
}

func TestFormatPathsOutDir(t *testing.T) {
	base := t.TempDir()
	out := t.TempDir()
	path := writeFile(t, base, filepath.Join("rtl", "core.sv"), messySrc)

	results, err := driver.FormatPaths(context.Background(), []string{base}, driver.FormatOptions{
		Mode:      driver.ModeOutDir,
		OutDir:    out,
		BaseDir:   base,
		Recursive: true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	want := filepath.Join(out, "rtl", "core.sv")
	assert.Equal(t, want, results[0].Output)
	assert.Equal(t, formattedSrc, readFile(t, want))
	assert.Equal(t, messySrc, readFile(t, path))
}

func TestFormatPathsOutDirRequired(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", messySrc)
	_, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Mode: driver.ModeOutDir})
	require.Error(t, err)
}

func TestFormatPathsParseFailureKeepsFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.sv", brokenSrc)
	good := writeFile(t, dir, "good.sv", messySrc)

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Mode: driver.ModeInPlace, Jobs: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, bad, results[0].Path)
	assert.ErrorIs(t, results[0].Err, driver.ErrParseFailed)
	assert.Equal(t, brokenSrc, readFile(t, bad))

	assert.NoError(t, results[1].Err)
	assert.Equal(t, formattedSrc, readFile(t, good))
}

func TestFormatPathsNoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "hello")
	_, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{})
	assert.ErrorIs(t, err, driver.ErrNoFiles)
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.FormatPaths(ctx, []string{"."}, driver.FormatOptions{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFormatPathsVerify(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sv", "module m;\n// note\nassign x = a - -b;\nendmodule\n")

	results, err := driver.FormatPaths(context.Background(), []string{path}, driver.FormatOptions{Mode: driver.ModeStdout, Verify: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestFormatPathsProgressAndTimings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.sv", messySrc)
	writeFile(t, dir, "bad.sv", brokenSrc)

	sink := &recordingSink{}
	timer := observ.NewTimer()
	_, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{
		Mode:     driver.ModeCheck,
		Progress: sink,
		Timer:    timer,
	})
	require.NoError(t, err)

	final := make(map[string]driver.Event)
	for _, ev := range sink.events {
		if ev.Status == driver.StatusDone || ev.Status == driver.StatusError {
			final[filepath.Base(ev.File)] = ev
		}
	}
	assert.Equal(t, driver.StatusDone, final["a.sv"].Status)
	assert.Equal(t, driver.StatusError, final["bad.sv"].Status)
	assert.Equal(t, driver.StageParse, final["bad.sv"].Stage)

	names := make([]string, 0)
	for _, ph := range timer.Report().Phases {
		names = append(names, ph.Name)
	}
	assert.Contains(t, names, "parse")
	assert.Contains(t, names, "format")
}

func TestFormatPathsCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.sv", messySrc)
	cache, err := driver.OpenFormatCache(t.TempDir())
	require.NoError(t, err)

	opts := driver.FormatOptions{Mode: driver.ModeInPlace, Cache: cache}
	results, err := driver.FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	assert.False(t, results[0].Cached)
	assert.True(t, results[0].Changed)

	results, err = driver.FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	assert.True(t, results[0].Cached)
	assert.False(t, results[0].Changed)

	// an edit invalidates the entry
	writeFile(t, dir, "a.sv", messySrc)
	results, err = driver.FormatPaths(context.Background(), []string{path}, opts)
	require.NoError(t, err)
	assert.False(t, results[0].Cached)
}
