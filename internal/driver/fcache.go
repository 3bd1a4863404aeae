package driver

import (
	"crypto/sha256"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// bump when the formatter output changes so stale entries are ignored
const formatCacheSchema uint16 = 1

// Digest is a sha256 of file content.
type Digest [32]byte

// FormatCache remembers the hash of the last output svfmt wrote (or
// verified) for a path. A file whose current content matches is already
// formatted and is skipped. Thread-safe.
type FormatCache struct {
	mu      sync.Mutex
	path    string
	entries map[string]Digest
	dirty   bool
}

type formatCachePayload struct {
	Schema  uint16
	Entries map[string]Digest
}

// DefaultCacheDir returns $XDG_CACHE_HOME/svfmt, falling back to ~/.cache.
func DefaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "svfmt"), nil
}

// OpenFormatCache loads the cache stored in dir. A missing or outdated file
// yields an empty cache.
func OpenFormatCache(dir string) (*FormatCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	c := &FormatCache{
		path:    filepath.Join(dir, "format.mp"),
		entries: make(map[string]Digest),
	}
	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	defer f.Close()

	var payload formatCachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		// битый кэш не фатален
		return c, nil
	}
	if payload.Schema == formatCacheSchema && payload.Entries != nil {
		c.entries = payload.Entries
	}
	return c, nil
}

func cacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// Fresh reports whether content is exactly what was recorded for path.
func (c *FormatCache) Fresh(path string, content []byte) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[cacheKey(path)]
	return ok && d == sha256.Sum256(content)
}

// Record stores the hash of formatted output for path.
func (c *FormatCache) Record(path string, formatted []byte) {
	if c == nil {
		return
	}
	sum := sha256.Sum256(formatted)
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(path)
	if c.entries[key] != sum {
		c.entries[key] = sum
		c.dirty = true
	}
}

// Forget drops the entry for path.
func (c *FormatCache) Forget(path string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey(path)
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.dirty = true
	}
}

// Len returns the number of recorded paths.
func (c *FormatCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Save writes the cache if it changed. The file is replaced atomically.
func (c *FormatCache) Save() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	f, err := os.CreateTemp(filepath.Dir(c.path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	payload := formatCachePayload{Schema: formatCacheSchema, Entries: c.entries}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, c.path); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
