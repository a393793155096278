// Package transpile turns JavaScript with defer statements into plain
// JavaScript.
package transpile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reusee/djs/jsast"
	"github.com/reusee/djs/jslex"
	"github.com/reusee/djs/jsparse"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/lowering"
	"github.com/reusee/djs/scopes"
)

type Options struct {
	// identifier prefix of generated variables, lowering.DefaultPrefix if empty
	Prefix string
	Policy lowering.ErrorPolicy
	// parse the generated code again and fail if it is not plain JavaScript
	Verify  bool
	Logger  logs.Logger
	NewSpan logs.NewSpan
}

// Transpiler holds no per-unit state and may be used from multiple
// goroutines.
type Transpiler struct {
	opts Options
}

func New(opts Options) *Transpiler {
	if opts.Prefix == "" {
		opts.Prefix = lowering.DefaultPrefix
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Transpiler{
		opts: opts,
	}
}

type Result struct {
	Source  *jslex.Source
	Program *jsast.Program
	Report  *scopes.Report
	// generated code, empty for Check
	Code string
	// at least one function was rewritten
	Lowered bool
}

var ErrVerify = errors.New("generated code failed verification")

// Check parses and analyzes a unit without generating code.
func (t *Transpiler) Check(ctx context.Context, name string, content string) (*Result, error) {
	ctx = t.span(ctx, name)
	return t.analyze(ctx, name, content)
}

// Transpile lowers every defer statement of the unit. A *jslex.SyntaxError
// is returned for malformed input and nothing is generated.
func (t *Transpiler) Transpile(ctx context.Context, name string, content string) (*Result, error) {
	ctx = t.span(ctx, name)

	result, err := t.analyze(ctx, name, content)
	if err != nil {
		return nil, err
	}

	code, err := lowering.Lower(content, result.Report, lowering.Options{
		Prefix: t.opts.Prefix,
		Policy: t.opts.Policy,
	})
	if err != nil {
		return nil, wrap(err)
	}
	result.Code = code
	result.Lowered = result.Report.NumDefers() > 0

	if t.opts.Verify && result.Lowered {
		if err := verify(name, code); err != nil {
			t.opts.Logger.ErrorContext(ctx, "verify generated code",
				"error", err,
			)
			return nil, logs.WrapSpan(ctx, wrap(err))
		}
	}

	t.opts.Logger.InfoContext(ctx, "transpiled",
		"functions", len(result.Report.Scopes),
		"defers", result.Report.NumDefers(),
		"bytes", len(code),
	)

	return result, nil
}

func (t *Transpiler) span(ctx context.Context, name string) context.Context {
	if t.opts.NewSpan == nil {
		return ctx
	}
	ctx, _ = t.opts.NewSpan(ctx, name)
	return ctx
}

func (t *Transpiler) analyze(ctx context.Context, name string, content string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := jslex.NewSource(name, content)
	prog, err := jsparse.Parse(src)
	if err != nil {
		t.opts.Logger.DebugContext(ctx, "parse failed",
			"error", err,
		)
		return nil, err
	}

	report := scopes.Analyze(prog)
	for scope := range report.Lowered() {
		pos := src.Position(scope.Function.Start)
		t.opts.Logger.DebugContext(ctx, "defer scope",
			"function", scope.Name(),
			"line", pos.Line,
			"defers", len(scope.Defers),
			"async", scope.Async(),
		)
	}

	return &Result{
		Source:  src,
		Program: prog,
		Report:  report,
	}, nil
}

func verify(name string, code string) error {
	prog, err := jsparse.ParseString(name, code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	if n := scopes.Analyze(prog).NumDefers(); n > 0 {
		return fmt.Errorf("%w: %d defer statements left", ErrVerify, n)
	}
	return nil
}
