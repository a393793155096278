package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/reusee/djs/jsparse"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/lowering"
	"github.com/reusee/djs/modes"
	"github.com/reusee/djs/scopes"
	"github.com/reusee/dscope"
)

func run(t *testing.T, code string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	r := New(stdout, stderr, nil)
	err := r.Run(context.Background(), "test.js", code)
	return stdout.String(), stderr.String(), err
}

func TestConsole(t *testing.T) {
	stdout, stderr, err := run(t, `
console.log('a', 1, true, null, undefined)
console.info({x: 1, y: [2, 3]})
console.log(function f() {}, new Error('boom'))
console.warn('careful')
console.error(new TypeError('bad'))
`)
	if err != nil {
		t.Fatal(err)
	}
	want := "a 1 true null undefined\n" +
		`{"x":1,"y":[2,3]}` + "\n" +
		"[Function] Error: boom\n"
	if stdout != want {
		t.Fatalf("got %q", stdout)
	}
	if stderr != "careful\nTypeError: bad\n" {
		t.Fatalf("got %q", stderr)
	}
}

func TestUncaughtException(t *testing.T) {
	_, _, err := run(t, `
console.log('before')
throw new Error('boom')
`)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("got %v", err)
	}
	if scriptErr.Message != "Error: boom" {
		t.Fatalf("got %q", scriptErr.Message)
	}
	if !strings.Contains(err.Error(), "test.js: uncaught exception: Error: boom") {
		t.Fatalf("got %v", err)
	}
}

func TestPromiseJobs(t *testing.T) {
	stdout, _, err := run(t, `
async function f() {
  await null
  console.log('after await')
}
f()
console.log('sync')
`)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "sync\nafter await\n" {
		t.Fatalf("got %q", stdout)
	}
}

func TestUnhandledRejection(t *testing.T) {
	_, _, err := run(t, `
async function f() {
  throw new Error('async boom')
}
f()
f().catch(e => console.log('handled'))
`)
	var scriptErr *ScriptError
	if !errors.As(err, &scriptErr) {
		t.Fatalf("got %v", err)
	}
	if !scriptErr.Rejection || scriptErr.Message != "Error: async boom" {
		t.Fatalf("got %+v", scriptErr)
	}
}

func TestHandledRejection(t *testing.T) {
	stdout, _, err := run(t, `
Promise.reject(new Error('x')).catch(e => console.log('caught', e.message))
`)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "caught x\n" {
		t.Fatalf("got %q", stdout)
	}
}

func TestInterrupt(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	r := New(new(bytes.Buffer), new(bytes.Buffer), nil)
	err := r.Run(ctx, "loop.js", `for (;;) {}`)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}
}

func TestCanceledBeforeRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := New(new(bytes.Buffer), new(bytes.Buffer), nil)
	if err := r.Run(ctx, "x.js", `1`); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
}

func TestModule(t *testing.T) {
	stdout := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Stdout {
			return stdout
		},
		func() logs.Writer {
			return new(bytes.Buffer)
		},
	).Call(func(
		r *Runner,
	) {
		if err := r.Run(context.Background(), "m.js", `console.log(1 + 1)`); err != nil {
			t.Fatal(err)
		}
	})
	if stdout.String() != "2\n" {
		t.Fatalf("got %q", stdout.String())
	}
}

func lower(t *testing.T, src string) string {
	prog, err := jsparse.ParseString("test.js", src)
	if err != nil {
		t.Fatal(err)
	}
	out, err := lowering.Lower(src, scopes.Analyze(prog), lowering.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestArgumentsInDeferredAction(t *testing.T) {
	code := lower(t, `function f() { defer console.log(arguments.length); } f(1, 2, 3);`)
	if !strings.Contains(code, "__defers.push(") {
		t.Fatalf("got %s", code)
	}
	// some goja versions panic while compiling arguments inside the deferred arrow
	stdout, _, err := run(t, code)
	if err != nil {
		if !strings.Contains(err.Error(), "vm panic") {
			t.Fatalf("got %v", err)
		}
		return
	}
	if stdout != "3\n" {
		t.Fatalf("got %q", stdout)
	}
}

func TestForAwaitNotSupported(t *testing.T) {
	code := lower(t, `
async function f(xs) {
  defer console.log('done')
  for await (const x of xs) {
    console.log(x)
  }
}
f([1, 2])
`)
	_, _, err := run(t, code)
	if err == nil {
		t.Skip("goja accepts for await")
	}
	var scriptErr *ScriptError
	if errors.As(err, &scriptErr) {
		t.Fatalf("got %v", err)
	}
	if strings.Contains(err.Error(), "vm panic") {
		t.Fatalf("got %v", err)
	}
}
