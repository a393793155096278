package configs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
policy?: "chain" | "log"
`

func TestLoaderAssignFirst(t *testing.T) {
	loader := NewLoader([]string{"testdata/test.cue"}, testSchema)

	var str string
	err := loader.AssignFirst("str", &str)
	if err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	err = loader.AssignFirst("list", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/test.cue",
		"testdata/test2.cue",
	}, testSchema)

	var strs []string
	for value, err := range loader.IterCueValues("str") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, s)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

	// only the first file sets policy
	var policies []string
	for value, err := range loader.IterCueValues("policy") {
		if err != nil {
			t.Fatal(err)
		}
		var p string
		if err := value.Decode(&p); err != nil {
			t.Fatal(err)
		}
		policies = append(policies, p)
	}
	if str := fmt.Sprintf("%v", policies); str != "[chain]" {
		t.Fatalf("got %q", str)
	}

}

func TestUnknownField(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/bad.cue",
	}, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	if !strings.Contains(err.Error(), "testdata/bad.cue") {
		t.Fatalf("got %v", err)
	}
	if loader.Err() == nil {
		t.Fatal("should error")
	}
}

func TestSyntaxErrorInFile(t *testing.T) {
	loader := NewLoader([]string{
		"testdata/syntax.cue",
	}, testSchema)
	err := loader.Err()
	if err == nil {
		t.Fatal("should error")
	}
	if !strings.Contains(err.Error(), "load testdata/syntax.cue") {
		t.Fatalf("got %v", err)
	}
}

func TestZeroLoader(t *testing.T) {
	var loader Loader
	if err := loader.Err(); err != nil {
		t.Fatal(err)
	}
	var str string
	if err := loader.AssignFirst("str", &str); !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestNoFiles(t *testing.T) {
	loader := NewLoader(nil, testSchema)
	if First[string](loader, "str") != "" {
		t.Fatal()
	}
	if len(loader.Paths()) != 0 {
		t.Fatal()
	}
}
