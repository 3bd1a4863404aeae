// Package config loads svfmt.toml project settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the project config file looked up from the working directory.
const FileName = "svfmt.toml"

var (
	ErrUnknownKey   = errors.New("unknown key")
	ErrInvalidValue = errors.New("invalid value")
)

// Config mirrors svfmt.toml. Relative paths are resolved against Root.
type Config struct {
	// Path is the file the config was loaded from, empty for defaults.
	Path string `toml:"-"`
	Root string `toml:"-"`

	Format FormatSection `toml:"format"`
	Output OutputSection `toml:"output"`
	Cache  CacheSection  `toml:"cache"`
}

type FormatSection struct {
	Extensions  []string `toml:"extensions"`
	Exclude     []string `toml:"exclude"`
	IncludeDirs []string `toml:"include_dirs"`
	Jobs        int      `toml:"jobs"`
}

type OutputSection struct {
	Dir     string `toml:"dir"`
	InPlace bool   `toml:"inplace"`
}

type CacheSection struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the settings used when no svfmt.toml exists.
func Default() *Config {
	return &Config{Root: "."}
}

// Find walks up from startDir looking for svfmt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the config at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest svfmt.toml above startDir, or defaults when
// there is none. An explicit path skips the search.
func Discover(startDir, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if c.Format.Jobs < 0 {
		return fmt.Errorf("%w: [format].jobs must be >= 0, got %d", ErrInvalidValue, c.Format.Jobs)
	}
	for i, ext := range c.Format.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("%w: [format].extensions[%d] is empty", ErrInvalidValue, i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Format.Extensions[i] = ext
	}
	if c.Output.InPlace && c.Output.Dir != "" {
		return fmt.Errorf("%w: [output].inplace and [output].dir are mutually exclusive", ErrInvalidValue)
	}
	return nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}

// IncludeDirs returns [format].include_dirs resolved against Root.
func (c *Config) IncludeDirs() []string {
	out := make([]string, 0, len(c.Format.IncludeDirs))
	for _, d := range c.Format.IncludeDirs {
		out = append(out, c.resolve(d))
	}
	return out
}

// OutputDir returns [output].dir resolved against Root.
func (c *Config) OutputDir() string {
	return c.resolve(c.Output.Dir)
}

// CacheDir returns [cache].dir resolved against Root, empty for the default.
func (c *Config) CacheDir() string {
	return c.resolve(c.Cache.Dir)
}

// ExcludePatterns returns the exclude globs anchored at Root. Patterns
// without a slash match base names anywhere and are kept as is.
func (c *Config) ExcludePatterns() []string {
	out := make([]string, 0, len(c.Format.Exclude))
	for _, p := range c.Format.Exclude {
		p = filepath.ToSlash(p)
		if !strings.Contains(p, "/") || strings.HasPrefix(p, "**") || filepath.IsAbs(p) {
			out = append(out, p)
			continue
		}
		root, err := filepath.Abs(c.Root)
		if err != nil {
			out = append(out, p)
			continue
		}
		out = append(out, filepath.ToSlash(root)+"/"+p)
	}
	return slices.Clip(out)
}
