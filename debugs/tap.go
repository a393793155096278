package debugs

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/reusee/djs/cmds"
	"github.com/reusee/djs/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Tap exposes globals to starlark. It runs TapScript if set, or an
// interactive session on the terminal otherwise.
type Tap func(ctx context.Context, what string, globals map[string]any) error

// TapScript is a starlark file run by Tap in place of the interactive session.
type TapScript string

var tapScriptFlag = cmds.Var[string]("-tap-script", "run a starlark file against the analysis instead of a REPL")

func (Module) TapScript() TapScript {
	return TapScript(*tapScriptFlag)
}

// TapOutput receives print() of tap scripts.
type TapOutput io.Writer

func (Module) TapOutput() TapOutput {
	return os.Stderr
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

func (Module) Tap(
	logger logs.Logger,
	script TapScript,
	output TapOutput,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) error {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: what,
			Print: func(_ *starlark.Thread, msg string) {
				fmt.Fprintln(output, msg)
			},
		}
		thread.SetLocal("context", ctx)

		if script == "" {
			thread.Print = nil
			repl.REPLOptions(fileOptions, thread, mappings)
			return nil
		}

		_, err := starlark.ExecFileOptions(fileOptions, thread, string(script), nil, mappings)
		if err != nil {
			if evalErr, ok := err.(*starlark.EvalError); ok {
				return fmt.Errorf("tap script: %s", evalErr.Backtrace())
			}
			return fmt.Errorf("tap script: %w", err)
		}
		return nil
	}
}
