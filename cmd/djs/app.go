package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/djs/debugs"
	"github.com/reusee/djs/jslex"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/runner"
	"github.com/reusee/djs/transpile"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

type app struct {
	transpiler *transpile.Transpiler
	runner     *runner.Runner
	tap        debugs.Tap
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	json       bool
	output     string
	jobs       int
	logger     logs.Logger
}

func (a *app) execute(ctx context.Context, command string, path string) int {
	if command == "build" {
		return a.build(ctx, path)
	}

	name, content, err := a.read(path)
	if err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return exitFailure
	}

	switch command {

	case "tokens":
		tokens, err := jslex.Tokenize(jslex.NewSource(name, content))
		if err != nil {
			return a.fail(err)
		}
		if err := writeTokens(a.stdout, jslex.NewSource(name, content), tokens); err != nil {
			return a.fail(err)
		}
		return exitOK

	case "check", "scopes":
		result, err := a.transpiler.Check(ctx, name, content)
		if err != nil {
			return a.fail(err)
		}
		if command == "scopes" {
			out, err := result.Report.YAML(result.Source)
			if err != nil {
				return a.fail(err)
			}
			if _, err := a.stdout.Write(out); err != nil {
				return a.fail(err)
			}
		} else if a.json {
			if err := writeJSONErrors(a.stdout, nil); err != nil {
				return a.fail(err)
			}
		}
		return a.runTap(ctx, command, result)

	case "transpile":
		result, err := a.transpiler.Transpile(ctx, name, content)
		if err != nil {
			return a.fail(err)
		}
		if err := a.write(result.Code); err != nil {
			return a.fail(err)
		}
		return a.runTap(ctx, command, result)

	case "run":
		result, err := a.transpiler.Transpile(ctx, name, content)
		if err != nil {
			return a.fail(err)
		}
		if code := a.runTap(ctx, command, result); code != exitOK {
			return code
		}
		if err := a.runner.Run(ctx, name, result.Code); err != nil {
			return a.fail(err)
		}
		return exitOK

	}

	fmt.Fprintf(a.stderr, "error: unknown command %s\n", command)
	return exitUsage
}

func (a *app) build(ctx context.Context, root string) int {
	results, err := a.transpiler.TranspileTree(ctx, root, a.jobs)
	for _, result := range results {
		if result.Err == nil {
			fmt.Fprintf(a.stdout, "%s -> %s\n", result.Path, result.Output)
		}
	}
	if err != nil {
		return a.fail(err)
	}
	return exitOK
}

func (a *app) read(path string) (name string, content string, err error) {
	if path == "-" {
		stdin := a.stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		bs, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", wrap(err)
		}
		return "<stdin>", string(bs), nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return "", "", wrap(err)
	}
	return path, string(bs), nil
}

func (a *app) write(code string) error {
	if a.output == "" {
		_, err := io.WriteString(a.stdout, code)
		return err
	}
	if err := os.WriteFile(a.output, []byte(code), 0644); err != nil {
		return wrap(err)
	}
	return nil
}

func (a *app) fail(err error) int {
	syntaxErrs := collectSyntaxErrors(err)
	if len(syntaxErrs) > 0 && a.json {
		if err := writeJSONErrors(a.stdout, syntaxErrs); err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
		}
		return exitFailure
	}

	var scriptErr *runner.ScriptError
	switch {
	case errors.As(err, &scriptErr):
		msg := scriptErr.Error()
		if scriptErr.Stack != "" {
			msg = scriptErr.Stack
		}
		fmt.Fprintln(a.stderr, strings.TrimSuffix(msg, "\n"))
	case len(syntaxErrs) > 0:
		for _, syntaxErr := range syntaxErrs {
			fmt.Fprintln(a.stderr, strings.TrimSuffix(syntaxErr.Error(), "\n"))
		}
	default:
		a.logger.Error("failed", "error", err)
		fmt.Fprintf(a.stderr, "error: %v\n", err)
	}
	return exitFailure
}

// collectSyntaxErrors finds syntax errors in err, including the ones joined
// by a directory build.
func collectSyntaxErrors(err error) (ret []*jslex.SyntaxError) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			ret = append(ret, collectSyntaxErrors(e)...)
		}
		return
	}
	var syntaxErr *jslex.SyntaxError
	if errors.As(err, &syntaxErr) {
		ret = append(ret, syntaxErr)
	}
	return
}

func (a *app) runTap(ctx context.Context, command string, result *transpile.Result) int {
	if a.tap == nil {
		return exitOK
	}
	globals := map[string]any{
		"source": result.Source.Content,
		"code":   result.Code,
		"scopes": result.Report.Summary(result.Source),
		"lower": func(src string) (string, error) {
			res, err := a.transpiler.Transpile(ctx, "<tap>", src)
			if err != nil {
				return "", err
			}
			return res.Code, nil
		},
	}
	if err := a.tap(ctx, command, globals); err != nil {
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}
