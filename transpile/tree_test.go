package transpile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reusee/djs/jslex"
)

func TestTranspileTree(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"a.djs":         "function a() { defer x() }\n",
		"sub/b.djs":     "function b() { defer { y() } }\n",
		"sub/c.js":      "function c() {}\n",
		"bad.djs":       "defer z()\n",
		".hidden/d.djs": "function d() { defer w() }\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	results, err := New(Options{Verify: true}).TranspileTree(context.Background(), root, 2)
	var syntaxErr *jslex.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("got %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %+v", results)
	}

	for _, result := range results {
		switch filepath.Base(result.Path) {
		case "bad.djs":
			if result.Err == nil {
				t.Fatal("should error")
			}
		case "a.djs", "b.djs":
			if result.Err != nil {
				t.Fatal(result.Err)
			}
			content, err := os.ReadFile(result.Output)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(content), "__defers.push(") {
				t.Fatalf("got %s", content)
			}
		default:
			t.Fatalf("unexpected %s", result.Path)
		}
	}

	if _, err := os.Stat(filepath.Join(root, ".hidden", "d.js")); err == nil {
		t.Fatal("hidden directory should be skipped")
	}
}
