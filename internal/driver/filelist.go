package driver

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileList is the result of reading a simulator-style file list.
type FileList struct {
	Files   []string
	IncDirs []string
	// Defines are collected for reporting only; svfmt does not preprocess.
	Defines []string
}

// ErrFileListCycle is returned when nested -f lists include each other.
var ErrFileListCycle = errors.New("file list includes itself")

// ReadFileList parses a file list. Relative paths resolve against the
// directory of the list that names them.
func ReadFileList(path string) (*FileList, error) {
	fl := &FileList{}
	if err := fl.read(path, make(map[string]bool)); err != nil {
		return nil, err
	}
	return fl, nil
}

func (fl *FileList) read(path string, active map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if active[abs] {
		return fmt.Errorf("%s: %w", path, ErrFileListCycle)
	}
	active[abs] = true
	defer delete(active, abs)

	// #nosec G304 -- path is provided by the user
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	base := filepath.Dir(path)
	resolve := func(p string) string {
		p = os.ExpandEnv(p)
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(base, p)
	}

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(stripListComment(sc.Text()))
		for i := 0; i < len(fields); i++ {
			arg := fields[i]
			switch {
			case arg == "-f" || arg == "-F":
				if i+1 >= len(fields) {
					return fmt.Errorf("%s:%d: %s expects a file", path, lineNo, arg)
				}
				i++
				if err := fl.read(resolve(fields[i]), active); err != nil {
					return err
				}
			case arg == "-I" || arg == "-v" || arg == "-y":
				if i+1 >= len(fields) {
					return fmt.Errorf("%s:%d: %s expects an argument", path, lineNo, arg)
				}
				i++
				if arg == "-I" {
					fl.IncDirs = append(fl.IncDirs, resolve(fields[i]))
				}
			case strings.HasPrefix(arg, "+incdir+"):
				for dir := range strings.SplitSeq(strings.TrimPrefix(arg, "+incdir+"), "+") {
					if dir != "" {
						fl.IncDirs = append(fl.IncDirs, resolve(dir))
					}
				}
			case strings.HasPrefix(arg, "+define+"):
				for def := range strings.SplitSeq(strings.TrimPrefix(arg, "+define+"), "+") {
					if def != "" {
						fl.Defines = append(fl.Defines, def)
					}
				}
			case strings.HasPrefix(arg, "+") || strings.HasPrefix(arg, "-"):
				// прочие опции симулятора не влияют на форматирование
			default:
				fl.Files = append(fl.Files, resolve(arg))
			}
		}
	}
	return sc.Err()
}

func stripListComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return line
}
