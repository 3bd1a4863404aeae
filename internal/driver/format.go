package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"svfmt/internal/format"
	"svfmt/internal/observ"
	"svfmt/internal/source"
	"svfmt/internal/trace"
)

// Mode selects what happens with formatted output.
type Mode uint8

const (
	// ModeStdout keeps output in FormatResult.Formatted.
	ModeStdout Mode = iota
	// ModeInPlace rewrites changed files.
	ModeInPlace
	// ModeOutDir writes every file under OutDir, mirroring its path relative to BaseDir.
	ModeOutDir
	// ModeCheck only reports whether files would change.
	ModeCheck
)

func (m Mode) String() string {
	switch m {
	case ModeStdout:
		return "stdout"
	case ModeInPlace:
		return "inplace"
	case ModeOutDir:
		return "outdir"
	case ModeCheck:
		return "check"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// FormatOptions configures FormatPaths.
type FormatOptions struct {
	Mode    Mode
	OutDir  string
	BaseDir string

	Recursive  bool
	Extensions []string
	Exclude    []string

	Jobs           int
	MaxDiagnostics int
	// Verify re-lexes the output and fails the file if its tokens differ.
	Verify bool
	// KeepOutput fills FormatResult.Formatted in every mode.
	KeepOutput bool

	Cache    *FormatCache
	Progress ProgressSink
	Timer    *observ.Timer
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path string
	// Output is the written path in ModeInPlace and ModeOutDir.
	Output    string
	Changed   bool
	Cached    bool
	Formatted []byte
	Err       error
}

// FormatPaths formats files and directories. Per-file failures are stored in
// FormatResult.Err; the returned error is reserved for collection failures
// and cancellation. Results keep the sorted file order.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "format_paths", trace.CurrentSpan(ctx))
	defer span.End("")

	files, err := CollectFiles(ctx, paths, CollectOptions{
		Recursive:  opts.Recursive,
		Extensions: opts.Extensions,
		Exclude:    opts.Exclude,
	})
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("mode", opts.Mode.String())
	if opts.Mode == ModeOutDir && opts.OutDir == "" {
		return nil, fmt.Errorf("output directory is required in %s mode", opts.Mode)
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	ctx = trace.WithSpan(ctx, span)
	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatOne(gctx, path, &opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(ctx context.Context, path string, opts *FormatOptions) FormatResult {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, path, trace.CurrentSpan(ctx))
	started := time.Now()
	res := FormatResult{Path: path}

	fail := func(stage Stage, err error) FormatResult {
		res.Err = err
		trace.Error(tracer, trace.ScopeFile, path, fileSpan.ID(), err)
		fileSpan.End("error")
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return res
	}

	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(StageParse, err)
	}

	if opts.Cache != nil && (opts.Mode == ModeInPlace || opts.Mode == ModeCheck) && opts.Cache.Fresh(path, data) {
		res.Cached = true
		fileSpan.End("cached")
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(started)})
		return res
	}

	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	pass := trace.Begin(tracer, trace.ScopePass, "parse", fileSpan.ID())
	stop := opts.Timer.Track("parse")
	content, flags, err := source.Normalize(data)
	if err != nil {
		stop()
		pass.End("")
		return fail(StageParse, err)
	}
	fs := source.NewFileSet()
	sf := fs.Get(fs.Add(path, content, flags))
	parsed, bag := ParseFile(sf, opts.MaxDiagnostics)
	stop()
	pass.End("")
	if !parsed.OK() {
		return fail(StageParse, &ParseError{Path: path, Bag: bag, Files: fs})
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	pass = trace.Begin(tracer, trace.ScopePass, "format", fileSpan.ID())
	stop = opts.Timer.Track("format")
	formatted, err := format.Format(parsed.Tree)
	if err == nil && opts.Verify {
		err = compareTokens(sf, fs.Get(fs.AddVirtual(path, formatted)))
	}
	stop()
	pass.End("")
	if err != nil {
		return fail(StageFormat, err)
	}
	res.Changed = !bytes.Equal(data, formatted)

	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	pass = trace.Begin(tracer, trace.ScopePass, "write", fileSpan.ID())
	stop = opts.Timer.Track("write")
	err = writeResult(&res, formatted, opts)
	stop()
	pass.End("")
	if err != nil {
		return fail(StageWrite, err)
	}

	if res.Changed {
		fileSpan.End("changed")
	} else {
		fileSpan.End("unchanged")
	}
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(started)})
	return res
}

func writeResult(res *FormatResult, formatted []byte, opts *FormatOptions) error {
	if opts.KeepOutput {
		res.Formatted = formatted
	}
	switch opts.Mode {
	case ModeStdout:
		res.Formatted = formatted
	case ModeCheck:
		if !res.Changed {
			opts.Cache.Record(res.Path, formatted)
		}
	case ModeInPlace:
		res.Output = res.Path
		if res.Changed {
			if err := writeFile(res.Path, formatted, filePerm(res.Path)); err != nil {
				return err
			}
		}
		opts.Cache.Record(res.Path, formatted)
	case ModeOutDir:
		res.Output = outPath(res.Path, opts.BaseDir, opts.OutDir)
		if err := os.MkdirAll(filepath.Dir(res.Output), 0o755); err != nil {
			return err
		}
		return writeFile(res.Output, formatted, filePerm(res.Path))
	default:
		return fmt.Errorf("unknown mode %v", opts.Mode)
	}
	return nil
}

// outPath mirrors path below outDir. Paths outside baseDir keep only their
// base name.
func outPath(path, baseDir, outDir string) string {
	if baseDir == "" {
		baseDir = "."
	}
	absBase, errBase := filepath.Abs(baseDir)
	absPath, errPath := filepath.Abs(path)
	if errBase == nil && errPath == nil {
		if rel, err := filepath.Rel(absBase, absPath); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return filepath.Join(outDir, rel)
		}
	}
	return filepath.Join(outDir, filepath.Base(path))
}

func filePerm(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o644
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	// #nosec G306 -- keep the permissions of the source file
	return os.WriteFile(path, data, perm)
}
