package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"svfmt/internal/config"
	"svfmt/internal/diagfmt"
	"svfmt/internal/driver"
	"svfmt/internal/observ"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Format SystemVerilog source files",
	Long: `Format rewrites SystemVerilog files. Paths may be files or directories;
"-" reads from stdin. By default formatted code is printed to stdout, use
--inplace, --outdir or --check to change that.`,
	RunE: runFmt,
}

var (
	errFilesFailed     = errors.New("fmt: failed to format some files")
	errChangesRequired = errors.New("fmt: formatting changes required")
)

func init() {
	addFmtFlags(fmtCmd)
}

// addFmtFlags registers the fmt flags; the root command shares them so that
// "svfmt file.sv" works without the subcommand.
func addFmtFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringArrayP("filelist", "f", nil, "read input files from a file list (repeatable)")
	f.String("top", "", "format the top file and every file it includes")
	f.StringArrayP("incdir", "I", nil, "include directory for --top (repeatable)")
	f.BoolP("inplace", "i", false, "rewrite files in place")
	f.StringP("outdir", "o", "", "write formatted files below this directory")
	f.BoolP("debug", "d", false, "echo the formatted buffer to stdout")
	f.StringArrayP("exclude", "e", nil, "exclude paths matching a glob, ** allowed (repeatable)")
	f.BoolP("recursive", "r", false, "descend into subdirectories")
	f.StringSlice("ext", nil, "file extensions to collect from directories (default .sv,.svh,.v,.vh)")
	f.Bool("check", false, "check if files are properly formatted")
	f.Bool("stdout", false, "print formatted code to stdout")
	f.Bool("verify", false, "verify that formatting keeps the token stream")
	f.Bool("cache", false, "skip files already formatted by a previous run")
	f.Int("jobs", 0, "number of files formatted in parallel (0 = GOMAXPROCS)")
	f.String("format", "text", "output format (text|json)")
	f.String("ui", "auto", "progress UI (auto|on|off)")
}

type fmtFlags struct {
	filelists []string
	top       string
	incdirs   []string
	inplace   bool
	outdir    string
	debug     bool
	exclude   []string
	recursive bool
	exts      []string
	check     bool
	stdout    bool
	verify    bool
	cache     bool
	jobs      int
	format    string
	ui        uiMode

	quiet          bool
	timings        bool
	maxDiagnostics int
	configPath     string
}

func readFmtFlags(cmd *cobra.Command) (*fmtFlags, error) {
	f := cmd.Flags()
	pf := cmd.Root().PersistentFlags()
	var (
		opts fmtFlags
		errs []error
		err  error
		ui   string
	)
	collect := func(e error) { errs = append(errs, e) }

	opts.filelists, err = f.GetStringArray("filelist")
	collect(err)
	opts.top, err = f.GetString("top")
	collect(err)
	opts.incdirs, err = f.GetStringArray("incdir")
	collect(err)
	opts.inplace, err = f.GetBool("inplace")
	collect(err)
	opts.outdir, err = f.GetString("outdir")
	collect(err)
	opts.debug, err = f.GetBool("debug")
	collect(err)
	opts.exclude, err = f.GetStringArray("exclude")
	collect(err)
	opts.recursive, err = f.GetBool("recursive")
	collect(err)
	opts.exts, err = f.GetStringSlice("ext")
	collect(err)
	opts.check, err = f.GetBool("check")
	collect(err)
	opts.stdout, err = f.GetBool("stdout")
	collect(err)
	opts.verify, err = f.GetBool("verify")
	collect(err)
	opts.cache, err = f.GetBool("cache")
	collect(err)
	opts.jobs, err = f.GetInt("jobs")
	collect(err)
	opts.format, err = f.GetString("format")
	collect(err)
	ui, err = f.GetString("ui")
	collect(err)
	opts.quiet, err = pf.GetBool("quiet")
	collect(err)
	opts.timings, err = pf.GetBool("timings")
	collect(err)
	opts.maxDiagnostics, err = pf.GetInt("max-diagnostics")
	collect(err)
	opts.configPath, err = pf.GetString("config")
	collect(err)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	opts.ui, err = readUIMode(ui)
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// selectMode resolves the output mode; explicit flags win over svfmt.toml.
func selectMode(flags *fmtFlags, cfg *config.Config) (driver.Mode, string, error) {
	explicit := 0
	for _, set := range []bool{flags.check, flags.stdout, flags.inplace, flags.outdir != ""} {
		if set {
			explicit++
		}
	}
	if explicit > 1 {
		return 0, "", fmt.Errorf("fmt: --check, --stdout, --inplace and --outdir are mutually exclusive")
	}
	switch {
	case flags.check:
		return driver.ModeCheck, "", nil
	case flags.stdout:
		return driver.ModeStdout, "", nil
	case flags.inplace:
		return driver.ModeInPlace, "", nil
	case flags.outdir != "":
		return driver.ModeOutDir, flags.outdir, nil
	case cfg.Output.InPlace:
		return driver.ModeInPlace, "", nil
	case cfg.Output.Dir != "":
		return driver.ModeOutDir, cfg.OutputDir(), nil
	}
	return driver.ModeStdout, "", nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	flags, err := readFmtFlags(cmd)
	if err != nil {
		return err
	}
	switch flags.format {
	case "text", "json":
	default:
		return fmt.Errorf("fmt: unsupported output format %q", flags.format)
	}

	if len(args) == 1 && args[0] == "-" {
		return formatStdin(cmd, flags)
	}

	cfg, err := config.Discover(".", flags.configPath)
	if err != nil {
		return err
	}
	mode, outDir, err := selectMode(flags, cfg)
	if err != nil {
		return err
	}
	if mode == driver.ModeStdout && flags.format != "text" {
		return fmt.Errorf("fmt: stdout output is only supported with --format text")
	}

	inputs, err := gatherInputs(cmd, flags, cfg, args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("fmt: no input files (pass paths, --filelist or --top)")
	}

	opts := driver.FormatOptions{
		Mode:           mode,
		OutDir:         outDir,
		BaseDir:        ".",
		Recursive:      flags.recursive,
		Extensions:     firstNonEmpty(flags.exts, cfg.Format.Extensions),
		Exclude:        append(cfg.ExcludePatterns(), flags.exclude...),
		Jobs:           flags.jobs,
		MaxDiagnostics: flags.maxDiagnostics,
		Verify:         flags.verify,
		KeepOutput:     flags.debug,
	}
	if opts.Jobs == 0 {
		opts.Jobs = cfg.Format.Jobs
	}
	if flags.timings {
		opts.Timer = observ.NewTimer()
	}
	if (flags.cache || cfg.Cache.Enabled) && (mode == driver.ModeInPlace || mode == driver.ModeCheck) {
		cache, err := openCache(cfg)
		if err != nil {
			return err
		}
		opts.Cache = cache
		defer func() {
			if err := cache.Save(); err != nil && !flags.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "fmt: cache: %v\n", err)
			}
		}()
	}

	results, err := formatWithProgress(cmd.Context(), inputs, &opts, flags)
	if err != nil {
		return err
	}

	var failed, changed bool
	switch flags.format {
	case "json":
		failed, changed = summarize(results)
		if err := renderFmtJSON(cmd.OutOrStdout(), results, mode); err != nil {
			return err
		}
	default:
		failed, changed = renderFmtText(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, mode, flags)
	}

	if opts.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}
	if failed {
		return errFilesFailed
	}
	if mode == driver.ModeCheck && changed {
		return errChangesRequired
	}
	return nil
}

func gatherInputs(cmd *cobra.Command, flags *fmtFlags, cfg *config.Config, args []string) ([]string, error) {
	inputs := append([]string(nil), args...)
	incdirs := append([]string(nil), flags.incdirs...)
	for _, path := range flags.filelists {
		fl, err := driver.ReadFileList(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fl.Files...)
		incdirs = append(incdirs, fl.IncDirs...)
	}
	incdirs = append(incdirs, cfg.IncludeDirs()...)

	if flags.top != "" {
		set, err := driver.ResolveIncludes(flags.top, incdirs)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, set.Files...)
		if !flags.quiet {
			warn := color.New(color.FgYellow)
			for _, name := range set.Missing {
				warn.Fprintf(cmd.ErrOrStderr(), "include %q not found\n", name)
			}
		}
	}
	return inputs, nil
}

func openCache(cfg *config.Config) (*driver.FormatCache, error) {
	dir := cfg.CacheDir()
	if dir == "" {
		var err error
		dir, err = driver.DefaultCacheDir()
		if err != nil {
			return nil, err
		}
	}
	return driver.OpenFormatCache(dir)
}

func formatStdin(cmd *cobra.Command, flags *fmtFlags) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}
	out, err := driver.FormatSource("<stdin>", src, flags.maxDiagnostics)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), "<stdin>", err)
		return errFilesFailed
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func summarize(results []driver.FormatResult) (failed, changed bool) {
	for _, res := range results {
		if res.Err != nil {
			failed = true
		} else if res.Changed {
			changed = true
		}
	}
	return failed, changed
}

func reportFailure(errOut io.Writer, path string, err error) {
	red := color.New(color.FgRed)
	var perr *driver.ParseError
	if errors.As(err, &perr) {
		red.Fprintf(errOut, "%s parse failed\n", path)
		diagfmt.Pretty(errOut, perr.Bag, perr.Files, diagfmt.PrettyOpts{Color: useColor(os.Stderr), Context: 1})
		return
	}
	red.Fprintf(errOut, "%s: %v\n", path, err)
}

func renderFmtText(out, errOut io.Writer, results []driver.FormatResult, mode driver.Mode, flags *fmtFlags) (failed, changed bool) {
	green := color.New(color.FgGreen)
	faint := color.New(color.Faint)
	yellow := color.New(color.FgYellow)

	for _, res := range results {
		if res.Err != nil {
			failed = true
			reportFailure(errOut, res.Path, res.Err)
			continue
		}
		if res.Changed {
			changed = true
		}
		if flags.debug && mode != driver.ModeStdout {
			_, _ = out.Write(res.Formatted)
		}

		switch mode {
		case driver.ModeStdout:
			_, _ = out.Write(res.Formatted)
			continue
		case driver.ModeCheck:
			if res.Changed {
				yellow.Fprintf(out, "would reformat %s\n", res.Path)
			} else if !flags.quiet {
				faint.Fprintf(out, "unchanged %s\n", res.Path)
			}
			continue
		}
		if flags.quiet {
			continue
		}
		switch {
		case mode == driver.ModeOutDir:
			green.Fprintf(out, "formatted %s -> %s\n", res.Path, res.Output)
		case res.Changed:
			green.Fprintf(out, "formatted %s\n", res.Path)
		default:
			faint.Fprintf(out, "unchanged %s\n", res.Path)
		}
	}
	return failed, changed
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, mode driver.Mode) error {
	type jsonResult struct {
		Path    string `json:"path"`
		Output  string `json:"output,omitempty"`
		Changed bool   `json:"changed"`
		Cached  bool   `json:"cached,omitempty"`
		Error   string `json:"error,omitempty"`
		// Diagnostics lists parse errors in short form.
		Diagnostics string `json:"diagnostics,omitempty"`
		Mode        string `json:"mode"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Output: res.Output, Changed: res.Changed, Cached: res.Cached, Mode: mode.String()}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			var perr *driver.ParseError
			if errors.As(res.Err, &perr) {
				jr.Diagnostics = perr.Diagnostics(false)
			}
		}
		payload = append(payload, jr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

// formatWithProgress runs FormatPaths, behind the Bubble Tea progress view
// when the terminal allows it.
func formatWithProgress(ctx context.Context, inputs []string, opts *driver.FormatOptions, flags *fmtFlags) ([]driver.FormatResult, error) {
	useUI := opts.Mode != driver.ModeStdout && !flags.debug && !flags.quiet &&
		flags.format == "text" && shouldUseTUI(flags.ui)
	if !useUI {
		return driver.FormatPaths(ctx, inputs, *opts)
	}
	files, err := driver.CollectFiles(ctx, inputs, driver.CollectOptions{
		Recursive:  opts.Recursive,
		Extensions: opts.Extensions,
		Exclude:    opts.Exclude,
	})
	if err != nil {
		return nil, err
	}
	if len(files) < 2 && flags.ui != uiModeOn {
		return driver.FormatPaths(ctx, inputs, *opts)
	}
	return runFormatWithUI(ctx, title(opts.Mode), files, inputs, opts)
}

func title(mode driver.Mode) string {
	if mode == driver.ModeCheck {
		return "checking"
	}
	return "formatting"
}

func firstNonEmpty(values ...[]string) []string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return nil
}

