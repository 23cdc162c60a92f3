package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bjaus/reindent"
)

var (
	errCheckFailed    = errors.New("fmt: reindent changes required")
	errFilesFailed    = errors.New("fmt: failed to reindent some files")
	errStdinNeedsLang = errors.New("fmt: reading stdin requires --lang")
)

func newFmtCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt [flags] <path> [path...]",
		Short: "Reindent files in place",
		Long: `Reindent files and directories. Directories are walked for files with a
known extension. Use "-" to read stdin and write stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFmt(cmd, args)
		},
	}

	f := cmd.Flags()
	f.String("lang", "", "language for every file, overriding extension detection")
	f.String("unit", "", `indent unit: "tab", a number of spaces, or literal whitespace`)
	f.Int("indent", 0, "indent with this many spaces")
	f.Bool("tabs", false, "indent with tabs")
	f.String("brace-style", "same-line", "where block openers go (same-line|new-line)")
	f.Bool("check", false, "list files that would change and fail if any")
	f.Bool("stdout", false, "print reindented text instead of rewriting files")
	f.String("format", "text", "report format (text|json|yaml|markdown)")
	f.Bool("validate", false, "skip files whose brackets don't balance")
	f.Bool("trim-trailing", false, "remove trailing whitespace")
	f.Int("max-blank", -1, "collapse runs of blank lines to at most N (-1 keeps them)")
	f.Int("jobs", 0, "files processed concurrently (default GOMAXPROCS)")
	f.Bool("watch", false, "keep running and reindent files as they change")
	return cmd
}

// fmtOptions is the resolved configuration of one fmt run.
type fmtOptions struct {
	lang         string
	unit         *string // nil uses the language's unit
	braceStyle   reindent.BraceStyle
	check        bool
	stdout       bool
	format       reindent.ReportFormat
	validate     bool
	trimTrailing bool
	maxBlank     int
	jobs         int
	watch        bool
	quiet        bool
}

func (a *app) fmtOptions() (fmtOptions, error) {
	v := a.v
	opts := fmtOptions{
		lang:         v.GetString("lang"),
		check:        v.GetBool("check"),
		stdout:       v.GetBool("stdout"),
		validate:     v.GetBool("validate"),
		trimTrailing: v.GetBool("trim-trailing"),
		maxBlank:     v.GetInt("max-blank"),
		jobs:         v.GetInt("jobs"),
		watch:        v.GetBool("watch"),
		quiet:        v.GetBool("quiet"),
	}

	var err error
	if opts.braceStyle, err = reindent.ParseBraceStyle(v.GetString("brace-style")); err != nil {
		return opts, err
	}
	if opts.format, err = reindent.ParseReportFormat(v.GetString("format")); err != nil {
		return opts, err
	}

	switch {
	case v.GetBool("tabs"):
		opts.unit = ptr("\t")
	case v.IsSet("unit"):
		u, err := parseUnit(v.GetString("unit"))
		if err != nil {
			return opts, err
		}
		opts.unit = &u
	case v.IsSet("indent"):
		n := v.GetInt("indent")
		if n < 0 {
			return opts, fmt.Errorf("fmt: --indent must not be negative, got %d", n)
		}
		opts.unit = ptr(strings.Repeat(" ", n))
	}

	if opts.jobs <= 0 {
		opts.jobs = runtime.GOMAXPROCS(0)
	}
	if opts.stdout && opts.check {
		return opts, errors.New("fmt: --stdout cannot be used with --check")
	}
	if opts.stdout && opts.format != reindent.ReportText {
		return opts, errors.New("fmt: --stdout is only supported with text output")
	}
	if opts.stdout && opts.watch {
		return opts, errors.New("fmt: --stdout cannot be used with --watch")
	}
	return opts, nil
}

// parseUnit accepts "tab", a space count, or a literal whitespace string.
func parseUnit(s string) (string, error) {
	switch s {
	case "tab", "tabs", `\t`:
		return "\t", nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return "", fmt.Errorf("fmt: negative indent unit %d", n)
		}
		return strings.Repeat(" ", n), nil
	}
	if strings.TrimSpace(s) != "" {
		return "", fmt.Errorf("fmt: indent unit %q is not whitespace", s)
	}
	return s, nil
}

func ptr[T any](v T) *T { return &v }

func (o fmtOptions) config(lang reindent.Language) reindent.Config {
	cfg := lang.Config()
	if o.unit != nil {
		cfg.Unit = *o.unit
	}
	cfg.BraceStyle = o.braceStyle
	return cfg
}

// transform returns the clean-ups applied after reindenting.
func (o fmtOptions) transform() reindent.Transform {
	var post []reindent.Transform
	if o.trimTrailing {
		post = append(post, reindent.TrimTrailingSpace)
	}
	if o.maxBlank >= 0 {
		post = append(post, reindent.CollapseBlankLines(o.maxBlank))
	}
	return reindent.Chain(post...)
}

// fileResult is the outcome for one file, plus its text for --stdout.
type fileResult struct {
	report reindent.FileReport
	output string
}

func (a *app) runFmt(cmd *cobra.Command, args []string) error {
	opts, err := a.fmtOptions()
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == "-" {
		return a.fmtStdin(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	}

	files, err := a.collectFiles(args, opts.lang != "")
	if err != nil {
		return err
	}
	a.log.Debug("collected files", "count", len(files), "jobs", opts.jobs)

	results, err := a.formatFiles(cmd.Context(), files, opts)
	if err != nil {
		return err
	}
	runErr := a.render(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, opts)

	if opts.watch {
		if runErr != nil && !errors.Is(runErr, errCheckFailed) && !errors.Is(runErr, errFilesFailed) {
			return runErr
		}
		return a.watch(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
	}
	return runErr
}

func (a *app) fmtStdin(in io.Reader, out io.Writer, opts fmtOptions) error {
	if opts.lang == "" {
		return errStdinNeedsLang
	}
	lang, err := a.registry.Lookup(opts.lang)
	if err != nil {
		return err
	}
	src, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	if opts.validate {
		if err := reindent.CheckBalance(string(src), reindent.PairsFor(lang.Rules)); err != nil {
			return fmt.Errorf("fmt: <stdin>: %w", err)
		}
	}
	text := opts.transform()(reindent.Reindent(string(src), opts.config(lang), lang.Rules))
	_, err = io.WriteString(out, text)
	return err
}

// collectFiles expands directories into the files below them that have a
// known extension. Explicit file arguments are always kept.
func (a *app) collectFiles(args []string, langForced bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("fmt: %w", err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if _, err := a.registry.ForPath(p); err == nil || langForced {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("fmt: %w", err)
		}
	}
	return files, nil
}

// formatFiles processes files concurrently. Per-file failures are recorded
// in the results; only cancellation aborts the run.
func (a *app) formatFiles(ctx context.Context, files []string, opts fmtOptions) ([]fileResult, error) {
	results := make([]fileResult, len(files))
	if len(files) == 0 {
		return results, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = a.formatFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) formatFile(path string, opts fmtOptions) fileResult {
	res := fileResult{report: reindent.FileReport{Path: path}}
	fail := func(err error) fileResult {
		res.report.Error = err.Error()
		a.log.Warn("reindent failed", "path", path, "err", err)
		return res
	}

	lang, err := a.languageFor(path, opts.lang)
	if err != nil {
		return fail(err)
	}
	res.report.Language = lang.Name

	info, err := os.Stat(path)
	if err != nil {
		return fail(err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	if opts.validate {
		if err := reindent.CheckBalance(string(src), reindent.PairsFor(lang.Rules)); err != nil {
			return fail(err)
		}
	}

	out, stats := reindent.Measure(string(src), opts.config(lang), lang.Rules)
	out = opts.transform()(out)
	res.output = out
	res.report.Stats = stats
	res.report.Changed = out != string(src)
	a.log.Debug("reindented", "path", path, "language", lang.Name, "changed", res.report.Changed, "lines", stats.Lines)

	if res.report.Changed && !opts.check && !opts.stdout {
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return fail(err)
		}
	}
	return res
}

func (a *app) languageFor(path, forced string) (reindent.Language, error) {
	if forced != "" {
		return a.registry.Lookup(forced)
	}
	return a.registry.ForPath(path)
}

// render prints results and returns the run's exit error, if any.
func (a *app) render(stdout, stderr io.Writer, results []fileResult, opts fmtOptions) error {
	var failed, changed bool
	for _, res := range results {
		failed = failed || res.report.Error != ""
		changed = changed || res.report.Changed
	}

	switch {
	case opts.format != reindent.ReportText:
		reports := make([]reindent.FileReport, len(results))
		for i, res := range results {
			reports[i] = res.report
		}
		if err := reindent.WriteReport(stdout, opts.format, reports...); err != nil {
			return err
		}
	case opts.stdout:
		for _, res := range results {
			if res.report.Error != "" {
				a.colors.failed.Fprintf(stderr, "fmt: %s: %s\n", res.report.Path, res.report.Error)
				continue
			}
			if _, err := io.WriteString(stdout, res.output); err != nil {
				return err
			}
		}
	default:
		for _, res := range results {
			r := res.report
			switch {
			case r.Error != "":
				a.colors.failed.Fprintf(stderr, "fmt: %s: %s\n", r.Path, r.Error)
			case !r.Changed || opts.quiet:
			case opts.check:
				a.colors.changed.Fprintln(stdout, r.Path)
			default:
				fmt.Fprintf(stdout, "reindented %s %s\n", r.Path,
					a.colors.dim.Sprintf("(%d/%d lines)", r.Stats.Changed, r.Stats.Lines))
			}
		}
	}

	switch {
	case failed:
		return errFilesFailed
	case opts.check && changed:
		return errCheckFailed
	}
	return nil
}
