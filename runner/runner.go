// Package runner executes generated JavaScript in an embedded goja VM.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dop251/goja"
	"github.com/reusee/djs/logs"
)

type Runner struct {
	stdout io.Writer
	stderr io.Writer
	logger logs.Logger
}

func New(stdout, stderr io.Writer, logger logs.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// Run executes code as a script in a fresh VM. Pending promise jobs run
// before Run returns. An exception escaping the script or an unhandled
// rejection is returned as *ScriptError. Cancelling ctx interrupts the VM.
// Code must stay within what goja compiles: for await loops are rejected
// with a compile error, and a panic inside the VM is returned as an error.
func (r *Runner) Run(ctx context.Context, name string, code string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.ErrorContext(ctx, "vm panic",
				"name", name,
				"panic", p,
			)
			err = wrap(fmt.Errorf("vm panic: %v", p))
		}
	}()

	vm := goja.New()
	if err := installConsole(vm, r.stdout, r.stderr); err != nil {
		return wrap(err)
	}

	var rejected []*goja.Promise
	vm.SetPromiseRejectionTracker(func(p *goja.Promise, op goja.PromiseRejectionOperation) {
		switch op {
		case goja.PromiseRejectionReject:
			rejected = append(rejected, p)
		case goja.PromiseRejectionHandle:
			for i, q := range rejected {
				if q == p {
					rejected = append(rejected[:i], rejected[i+1:]...)
					break
				}
			}
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	r.logger.DebugContext(ctx, "run script",
		"name", name,
		"bytes", len(code),
	)

	_, err = vm.RunScript(name, code)
	if err != nil {
		var exception *goja.Exception
		var interrupted *goja.InterruptedError
		switch {
		case errors.As(err, &interrupted):
			if cause, ok := interrupted.Value().(error); ok {
				return cause
			}
			return wrap(err)
		case errors.As(err, &exception):
			return &ScriptError{
				Name:    name,
				Message: format(vm, exception.Value()),
				Stack:   exception.String(),
			}
		}
		return wrap(err)
	}

	if len(rejected) > 0 {
		return &ScriptError{
			Name:      name,
			Message:   format(vm, rejected[0].Result()),
			Rejection: true,
		}
	}

	return nil
}
