package cmds

import (
	"strings"
	"testing"
)

func TestFuncValidation(t *testing.T) {
	for _, fn := range []any{
		42,
		func() int { return 0 },
		func() (error, error) { return nil, nil },
		func(m map[string]int) {},
		func(s []string) {},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("should panic for %T", fn)
				}
			}()
			Func(fn)
		}()
	}

	Func(func(a int, b *string, c bool, d level) error { return nil })
}

func TestAlias(t *testing.T) {
	executor := NewExecutor()
	var n int
	executor.Define("count", Func(func(i int) {
		n = i
	}).Alias("-n", "--count"))
	if err := executor.Execute([]string{"--count", "3"}); err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("got %d", n)
	}
	defer func() {
		p := recover()
		if p == nil || !strings.Contains(p.(error).Error(), "duplicated command -n") {
			t.Fatalf("got %v", p)
		}
	}()
	executor.Define("-n", Func(func() {}))
}
