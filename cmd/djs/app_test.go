package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/djs/debugs"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/modes"
	"github.com/reusee/djs/runner"
	"github.com/reusee/djs/transpile"
	"github.com/reusee/dscope"
)

func newApp(t *testing.T, stdin string) (*app, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	return &app{
		transpiler: transpile.New(transpile.Options{Verify: true}),
		runner:     runner.New(stdout, stderr, nil),
		stdin:      strings.NewReader(stdin),
		stdout:     stdout,
		stderr:     stderr,
		logger:     slog.New(slog.DiscardHandler),
	}, stdout, stderr
}

const sample = `function f() {
  defer console.log('cleanup')
  console.log('work')
}
f()
`

func TestTranspileStdin(t *testing.T) {
	a, stdout, _ := newApp(t, sample)
	if code := a.execute(context.Background(), "transpile", "-"); code != exitOK {
		t.Fatalf("got %d", code)
	}
	if !strings.Contains(stdout.String(), "__defers.push(() => { console.log('cleanup') });") {
		t.Fatalf("got %s", stdout.String())
	}
}

func TestTranspileToFile(t *testing.T) {
	a, stdout, _ := newApp(t, sample)
	a.output = filepath.Join(t.TempDir(), "out.js")
	if code := a.execute(context.Background(), "transpile", "-"); code != exitOK {
		t.Fatalf("got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("got %q", stdout.String())
	}
	content, err := os.ReadFile(a.output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "__defers") {
		t.Fatalf("got %s", content)
	}
}

func TestRun(t *testing.T) {
	a, stdout, _ := newApp(t, sample)
	if code := a.execute(context.Background(), "run", "-"); code != exitOK {
		t.Fatalf("got %d", code)
	}
	if stdout.String() != "work\ncleanup\n" {
		t.Fatalf("got %q", stdout.String())
	}
}

func TestRunUncaught(t *testing.T) {
	a, _, stderr := newApp(t, `
function f() {
  defer console.log('cleanup')
  throw new Error('boom')
}
f()
`)
	if code := a.execute(context.Background(), "run", "-"); code != exitFailure {
		t.Fatalf("got %d", code)
	}
	if !strings.Contains(stderr.String(), "boom") {
		t.Fatalf("got %q", stderr.String())
	}
}

func TestCheckJSON(t *testing.T) {
	a, stdout, _ := newApp(t, "defer x()\n")
	a.json = true
	if code := a.execute(context.Background(), "check", "-"); code != exitFailure {
		t.Fatalf("got %d", code)
	}
	want := `{"errors":[{"message":"defer outside function body","file":"<stdin>","line":1,"column":1}]}` + "\n"
	if stdout.String() != want {
		t.Fatalf("got %s", stdout.String())
	}

	a, stdout, _ = newApp(t, sample)
	a.json = true
	if code := a.execute(context.Background(), "check", "-"); code != exitOK {
		t.Fatalf("got %d", code)
	}
	if stdout.String() != `{"errors":[]}`+"\n" {
		t.Fatalf("got %s", stdout.String())
	}
}

func TestCheckPlain(t *testing.T) {
	a, stdout, stderr := newApp(t, "function f() {\n  defer;\n}\n")
	if code := a.execute(context.Background(), "check", "-"); code != exitFailure {
		t.Fatalf("got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("got %q", stdout.String())
	}
	if !strings.HasPrefix(stderr.String(), "SyntaxError: missing statement after defer at <stdin>:2:8\n") {
		t.Fatalf("got %q", stderr.String())
	}
}

func TestScopes(t *testing.T) {
	a, stdout, _ := newApp(t, sample)
	if code := a.execute(context.Background(), "scopes", "-"); code != exitOK {
		t.Fatalf("got %d", code)
	}
	out := stdout.String()
	for _, want := range []string{
		"stdin",
		"name: f",
		"kind: single",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("got %s", out)
		}
	}
}

func TestTokens(t *testing.T) {
	a, stdout, _ := newApp(t, "defer x")
	if code := a.execute(context.Background(), "tokens", "-"); code != exitOK {
		t.Fatalf("got %d", code)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %q", stdout.String())
	}
	if fields := strings.Fields(lines[0]); len(fields) != 3 || fields[0] != "1:1" || fields[1] != "defer" {
		t.Fatalf("got %q", lines[0])
	}
}

func TestMissingFile(t *testing.T) {
	a, _, stderr := newApp(t, "")
	if code := a.execute(context.Background(), "check", filepath.Join(t.TempDir(), "none.djs")); code != exitFailure {
		t.Fatalf("got %d", code)
	}
	if !strings.Contains(stderr.String(), "none.djs") {
		t.Fatalf("got %q", stderr.String())
	}
}

func TestTapScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "tap.star")
	if err := os.WriteFile(script, []byte(`
print(scopes[0]["name"], len(scopes[0]["defers"]))
print("push" in lower("function g() { defer h() }"))
`), 0644); err != nil {
		t.Fatal(err)
	}
	tapOut := new(bytes.Buffer)
	dscope.New(new(debugs.Module), modes.ForTest(t)).Fork(
		func() debugs.TapScript {
			return debugs.TapScript(script)
		},
		func() debugs.TapOutput {
			return tapOut
		},
		func() logs.Writer {
			return io.Discard
		},
	).Call(func(
		tap debugs.Tap,
	) {
		a, _, stderr := newApp(t, sample)
		a.tap = tap
		if code := a.execute(context.Background(), "check", "-"); code != exitOK {
			t.Fatalf("got %d: %s", code, stderr.String())
		}
	})
	if tapOut.String() != "f 1\nTrue\n" {
		t.Fatalf("got %q", tapOut.String())
	}
}

func TestBuild(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "ok.djs"), []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "bad.djs"), []byte("defer x()\n"), 0644); err != nil {
		t.Fatal(err)
	}
	a, stdout, _ := newApp(t, "")
	a.jobs = 2
	a.json = true
	if code := a.execute(context.Background(), "build", root); code != exitFailure {
		t.Fatalf("got %d", code)
	}
	out := stdout.String()
	if !strings.Contains(out, "ok.djs -> ") {
		t.Fatalf("got %s", out)
	}
	if !strings.Contains(out, `"message":"defer outside function body"`) {
		t.Fatalf("got %s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "ok.js")); err != nil {
		t.Fatal(err)
	}
}
