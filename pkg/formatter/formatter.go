package formatter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/using-order/pkg/csharp"
	"github.com/siyuan-infoblox/using-order/pkg/errors"
	"github.com/siyuan-infoblox/using-order/pkg/rules"
	"github.com/siyuan-infoblox/using-order/pkg/syntax"
	"github.com/siyuan-infoblox/using-order/pkg/utils"
)

type FormatterConfig struct {
	FilePath   string       // path to the C# source file
	InPlace    bool         // whether to modify the file in place
	Check      bool         // report files that would change, write nothing
	Rules      []rules.Rule // rules to run, in order
	Jobs       int          // parallel workers for directories, 0 means GOMAXPROCS
	Extensions []string     // source file extensions, nil means .cs
	Exclude    []string     // directory names to skip
	Logger     *slog.Logger // debug logging, nil disables it
	Out        io.Writer    // formatted output and summaries, nil means stdout
}

var (
	changedColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// formatter runs the enabled rules over C# files
type formatter struct {
	config FormatterConfig
	logger *slog.Logger
	out    io.Writer
}

// New creates a new formatter for the given configuration
func New(config FormatterConfig) *formatter {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	return &formatter{
		config: config,
		logger: logger,
		out:    out,
	}
}

func (g *formatter) getFilePath() string {
	return g.config.FilePath
}

func (g *formatter) getInPlace() bool {
	return g.config.InPlace
}

func (g *formatter) getCheck() bool {
	return g.config.Check
}

func (g *formatter) getJobs(files int) int {
	jobs := g.config.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

// Result is the outcome of formatting one file
type Result struct {
	Path    string
	Output  []byte // formatted content in the file's original encoding
	Changed bool
	Err     error
}

// FormatSource runs every configured rule over src and reports whether the
// output differs from the input
func (g *formatter) FormatSource(src []byte) ([]byte, bool, error) {
	text, enc, err := csharp.Decode(src)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToDecodeFile, err)
	}

	unit, err := csharp.Parse(text)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	formatted := g.applyRules(unit).FullString()
	if formatted == text {
		return src, false, nil
	}

	output, err := csharp.Encode(formatted, enc)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", errors.ErrMsgFailedToEncodeFile, err)
	}
	return output, !bytes.Equal(output, src), nil
}

// applyRules threads the tree through each rule in order
func (g *formatter) applyRules(unit *syntax.CompilationUnit) syntax.Node {
	var node syntax.Node = unit
	for _, rule := range g.config.Rules {
		info := rule.Info()
		before := node
		node = rule.Process(node, syntax.LanguageCSharp)
		g.logger.Debug("rule applied", "rule", info.Name, "changed", node != before)
	}
	return node
}

// formatFile reads and formats one file without writing anything
func (g *formatter) formatFile(path string) Result {
	res := Result{Path: path}
	src, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
		return res
	}

	res.Output, res.Changed, res.Err = g.FormatSource(src)
	g.logger.Debug("formatted file", "path", path, "changed", res.Changed, "error", res.Err)
	return res
}

// writeResult stores a changed file when running in place, keeping its
// permissions
func (g *formatter) writeResult(res Result) error {
	if !g.getInPlace() || g.getCheck() || !res.Changed {
		return nil
	}
	info, err := os.Stat(res.Path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	if err := os.WriteFile(res.Path, res.Output, info.Mode().Perm()); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
	}
	return nil
}

// ProcessFile processes the configured file. Without --in-place or --check
// the formatted content is written to the output.
func (g *formatter) ProcessFile(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgProcessingCanceled, err)
	}

	res := g.formatFile(g.getFilePath())
	if res.Err != nil {
		return res.Err
	}

	switch {
	case g.getCheck():
		if res.Changed {
			fmt.Fprintln(g.out, res.Path)
			return fmt.Errorf(errors.ErrMsgFormattingRequired, 1)
		}
		return nil
	case g.getInPlace():
		return g.writeResult(res)
	default:
		_, err := g.out.Write(res.Output)
		return err
	}
}

// ProcessFiles formats files in parallel, then writes and reports the
// results in input order
func (g *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	results := make([]Result, len(filePaths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.getJobs(len(filePaths)))
	for i, path := range filePaths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			// each goroutine owns results[i]
			results[i] = g.formatFile(path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgProcessingCanceled, err)
	}

	processedCount := 0
	changedCount := 0
	errorCount := 0

	for _, res := range results {
		if res.Err == nil {
			res.Err = g.writeResult(res)
		}
		if res.Err != nil {
			errorColor.Fprintf(g.out, errors.InfoMsgErrorProcessing+"\n", res.Path, res.Err)
			errorCount++
			continue
		}

		processedCount++
		if !res.Changed {
			continue
		}
		changedCount++
		switch {
		case g.getCheck():
			fmt.Fprintln(g.out, res.Path)
		case g.getInPlace():
			changedColor.Fprintf(g.out, errors.InfoMsgProcessedFiles+"\n", res.Path)
		default:
			warnColor.Fprintf(g.out, errors.InfoMsgWouldReformat+"\n", res.Path)
		}
	}

	fmt.Fprintf(g.out, errors.InfoMsgProcessedCount, processedCount)
	if changedCount > 0 {
		fmt.Fprintf(g.out, errors.InfoMsgChangedCount, changedCount)
	}
	if errorCount > 0 {
		fmt.Fprintf(g.out, errors.InfoMsgErrorCount, errorCount)
	}
	fmt.Fprintln(g.out)

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	if g.getCheck() && changedCount > 0 {
		return fmt.Errorf(errors.ErrMsgFormattingRequired, changedCount)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(ctx context.Context, path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		g.config.FilePath = path
		return g.ProcessFile(ctx)
	}

	// When processing directories, in-place mode is recommended
	if !g.getInPlace() && !g.getCheck() {
		warnColor.Fprintln(g.out, errors.WarnMsgProcessingDirWithoutInPlace)
		fmt.Fprint(g.out, errors.InfoMsgUseInPlaceFlag+"\n\n")
	}

	files, err := utils.FindSourceFiles(path, g.config.Extensions, g.config.Exclude)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindSourceFiles, err)
	}

	if len(files) == 0 {
		fmt.Fprintf(g.out, errors.InfoMsgNoSourceFilesFound+"\n", path)
		return nil
	}

	fmt.Fprintf(g.out, errors.InfoMsgFoundSourceFiles+"\n\n", len(files), path)
	g.logger.Debug("processing directory", "path", path, "files", len(files), "jobs", g.getJobs(len(files)))

	return g.ProcessFiles(ctx, files)
}
