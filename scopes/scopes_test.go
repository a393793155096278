package scopes

import (
	"strings"
	"testing"

	"github.com/reusee/djs/jslex"
	"github.com/reusee/djs/jsparse"
)

func analyze(t *testing.T, src string) *Report {
	t.Helper()
	prog, err := jsparse.ParseString("test.js", src)
	if err != nil {
		t.Fatal(err)
	}
	return Analyze(prog)
}

func TestNearestEnclosingFunction(t *testing.T) {
	report := analyze(t, `function outer() {
  defer a();
  if (x) {
    for (;;) {
      try {
        defer b();
      } catch (e) {}
    }
  }
  function inner() {
    defer c();
  }
  const arrow = () => {
    defer d();
  };
  defer {
    defer e();
  }
}
function empty() {}
`)
	if len(report.Scopes) != 4 {
		t.Fatalf("got %d", len(report.Scopes))
	}

	outer := report.Scopes[0]
	if outer.Name() != "outer" {
		t.Fatalf("got %s", outer.Name())
	}
	// a, b, the block, and e nested in the block
	if len(outer.Defers) != 4 {
		t.Fatalf("got %d", len(outer.Defers))
	}
	for i := 1; i < len(outer.Defers); i++ {
		if outer.Defers[i].Start <= outer.Defers[i-1].Start {
			t.Fatal("not in program order")
		}
	}

	inner := report.Scopes[1]
	if inner.Name() != "inner" || len(inner.Defers) != 1 || inner.Parent != outer {
		t.Fatalf("got %s %d", inner.Name(), len(inner.Defers))
	}
	arrow := report.Scopes[2]
	if arrow.Name() != "arrow" || len(arrow.Defers) != 1 {
		t.Fatalf("got %s %d", arrow.Name(), len(arrow.Defers))
	}
	if arrow.Depth() != 1 {
		t.Fatalf("got %d", arrow.Depth())
	}

	if !report.Scopes[3].Empty() {
		t.Fatal("expected empty")
	}

	n := 0
	for scope := range report.Lowered() {
		if scope.Empty() {
			t.Fatal("empty scope yielded")
		}
		n++
	}
	if n != 3 {
		t.Fatalf("got %d", n)
	}
	if report.NumDefers() != 6 {
		t.Fatalf("got %d", report.NumDefers())
	}
}

func TestNames(t *testing.T) {
	report := analyze(t, `
const a = function () {};
let b;
b = () => {};
obj.c = () => {};
const o = { d() {}, "e": function () {} };
class F { g() {} static h() {} }
const I = class { j() {} };
(function () {})();
[1].map(x => x);
`)
	expected := []string{"a", "b", "obj.c", "d", "e", "F.g", "F.h", "I.j", "<anonymous>", "<arrow>"}
	if len(report.Scopes) != len(expected) {
		t.Fatalf("got %d", len(report.Scopes))
	}
	for i, scope := range report.Scopes {
		if scope.Name() != expected[i] {
			t.Fatalf("%d: got %s", i, scope.Name())
		}
	}
}

func TestAwaitsInDefers(t *testing.T) {
	report := analyze(t, `
async function a() {
  await x();
  defer y();
}
async function b() {
  defer { await y(); }
}
async function c() {
  defer {
    const f = async () => { await z(); };
  }
}
async function d() {
  defer { for await (const v of s) {} }
}
`)
	awaits := []bool{false, true, false, false, true}
	if len(report.Scopes) != len(awaits) {
		t.Fatalf("got %d", len(report.Scopes))
	}
	for i, scope := range report.Scopes {
		if scope.AwaitsInDefers != awaits[i] {
			t.Fatalf("%s: got %v", scope.Name(), scope.AwaitsInDefers)
		}
		if !scope.Async() {
			t.Fatalf("%s: expected async", scope.Name())
		}
	}
}

func TestSummaryYAML(t *testing.T) {
	src := jslex.NewSource("test.js", "function f() {\n  defer a();\n  defer {\n    b();\n  }\n}\n")
	prog, err := jsparse.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	report := Analyze(prog)

	summary := report.Summary(src)
	if len(summary) != 1 {
		t.Fatalf("got %d", len(summary))
	}
	if summary[0].Line != 1 || summary[0].Kind != "declaration" {
		t.Fatalf("got %+v", summary[0])
	}
	if len(summary[0].Defers) != 2 {
		t.Fatalf("got %d", len(summary[0].Defers))
	}
	if d := summary[0].Defers[1]; d.Line != 3 || d.Column != 3 || d.Kind != "block" {
		t.Fatalf("got %+v", d)
	}

	out, err := report.YAML(src)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"file: test.js", "name: f", "kind: single", "kind: block"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}
