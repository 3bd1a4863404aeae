package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExtensions lists the file suffixes formatted when none are configured.
var DefaultExtensions = []string{".sv", ".svh", ".v", ".vh"}

// CollectOptions controls how input paths expand into files.
type CollectOptions struct {
	Recursive  bool
	Extensions []string
	Exclude    []string
}

func (o CollectOptions) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions
	}
	return o.Extensions
}

func (o CollectOptions) hasExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range o.extensions() {
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// excluded matches path against the exclude globs; a pattern without a
// slash matches any path component.
func (o CollectOptions) excluded(path string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	base := filepath.Base(path)
	for _, pattern := range o.Exclude {
		pattern = filepath.ToSlash(pattern)
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if abs, err := filepath.Abs(path); err == nil {
			if ok, _ := doublestar.Match(pattern, filepath.ToSlash(abs)); ok {
				return true
			}
		}
	}
	return false
}

// CollectFiles expands paths into a sorted, de-duplicated file list.
// Files named explicitly are kept regardless of extension; directories are
// scanned one level deep unless Recursive is set.
func CollectFiles(ctx context.Context, paths []string, opts CollectOptions) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if !opts.excluded(p) {
				add(p)
			}
			continue
		}
		root := filepath.Clean(p)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if !opts.Recursive || opts.excluded(path) || strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if opts.hasExt(path) && !opts.excluded(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.Sort(files)
	return files, nil
}
