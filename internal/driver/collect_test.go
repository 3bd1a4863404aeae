package driver_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svfmt/internal/driver"
)

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	top := writeFile(t, dir, "top.sv", "")
	hdr := writeFile(t, dir, "defs.svh", "")
	writeFile(t, dir, "readme.md", "")
	nested := writeFile(t, dir, filepath.Join("sub", "leaf.v"), "")
	vendored := writeFile(t, dir, filepath.Join("third_party", "ip", "ip.sv"), "")
	writeFile(t, dir, filepath.Join(".git", "hook.sv"), "")

	tests := []struct {
		name string
		opts driver.CollectOptions
		want []string
	}{
		{
			name: "flat",
			want: []string{hdr, top},
		},
		{
			name: "recursive",
			opts: driver.CollectOptions{Recursive: true},
			want: []string{hdr, nested, vendored, top},
		},
		{
			name: "exclude glob",
			opts: driver.CollectOptions{Recursive: true, Exclude: []string{"**/third_party/**"}},
			want: []string{hdr, nested, top},
		},
		{
			name: "exclude base name",
			opts: driver.CollectOptions{Recursive: true, Exclude: []string{"*.svh"}},
			want: []string{nested, vendored, top},
		},
		{
			name: "extensions",
			opts: driver.CollectOptions{Recursive: true, Extensions: []string{"v"}},
			want: []string{nested},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := driver.CollectFiles(context.Background(), []string{dir}, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCollectFilesExplicitAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	odd := writeFile(t, dir, "tb.sva", "")
	top := writeFile(t, dir, "top.sv", "")

	got, err := driver.CollectFiles(context.Background(), []string{odd, top, dir}, driver.CollectOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{odd, top}, got)
}

func TestCollectFilesMissing(t *testing.T) {
	_, err := driver.CollectFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.sv")}, driver.CollectOptions{})
	require.Error(t, err)
}
