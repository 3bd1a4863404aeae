package driver

import (
	"os"
	"path/filepath"
	"strings"

	"svfmt/internal/lexer"
	"svfmt/internal/source"
	"svfmt/internal/token"
)

// IncludeSet is the closure of `include directives reachable from a top file.
type IncludeSet struct {
	// Files lists the top file first, then included files in discovery order.
	Files   []string
	Missing []string
}

// ResolveIncludes follows `include "name" directives starting at top. Each
// name is looked up next to the including file, then in incdirs.
func ResolveIncludes(top string, incdirs []string) (*IncludeSet, error) {
	set := &IncludeSet{}
	seen := make(map[string]bool)
	missing := make(map[string]bool)

	queue := []string{filepath.Clean(top)}
	seen[queue[0]] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		set.Files = append(set.Files, cur)

		names, err := scanIncludes(cur)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			found, ok := lookupInclude(name, filepath.Dir(cur), incdirs)
			if !ok {
				if !missing[name] {
					missing[name] = true
					set.Missing = append(set.Missing, name)
				}
				continue
			}
			if seen[found] {
				continue
			}
			seen[found] = true
			queue = append(queue, found)
		}
	}
	return set, nil
}

func scanIncludes(path string) ([]string, error) {
	// #nosec G304 -- path comes from the user or an include directive
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content, _, err := source.Normalize(data)
	if err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.Add(path, content, 0)), lexer.Options{})

	var names []string
	for _, tok := range lx.All() {
		if tok.Kind != token.Directive || !strings.HasPrefix(tok.Text, "`include") {
			continue
		}
		if name, ok := includeName(tok.Text); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// includeName extracts the file name from `include "x" or `include <x>.
func includeName(directive string) (string, bool) {
	rest := directive[len("`include"):]
	for i := 0; i < len(rest); i++ {
		var closing byte
		switch rest[i] {
		case '"':
			closing = '"'
		case '<':
			closing = '>'
		case ' ', '\t':
			continue
		default:
			return "", false
		}
		end := strings.IndexByte(rest[i+1:], closing)
		if end <= 0 {
			return "", false
		}
		return rest[i+1 : i+1+end], true
	}
	return "", false
}

func lookupInclude(name, dir string, incdirs []string) (string, bool) {
	if filepath.IsAbs(name) {
		if fileExists(name) {
			return filepath.Clean(name), true
		}
		return "", false
	}
	for _, d := range append([]string{dir}, incdirs...) {
		candidate := filepath.Join(d, name)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
