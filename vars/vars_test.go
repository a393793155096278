package vars

import "testing"

func TestStrToBool(t *testing.T) {
	for str, want := range map[string]bool{
		"true":  true,
		" Yes ": true,
		"on":    true,
		"1":     true,
		"false": false,
		"off":   false,
		"":      false,
		"maybe": false,
	} {
		if got := StrToBool(str); got != want {
			t.Fatalf("%q: got %v", str, got)
		}
	}
}

func TestFirstNonZero(t *testing.T) {
	if got := FirstNonZero("", "a", "b"); got != "a" {
		t.Fatalf("got %q", got)
	}
	if got := FirstNonZero(0, 0); got != 0 {
		t.Fatalf("got %d", got)
	}
	one := 1
	if got := FirstNonZero[*int](nil, &one); got != &one {
		t.Fatalf("got %v", got)
	}
}

func TestDerefOrZero(t *testing.T) {
	if got := DerefOrZero[int](nil); got != 0 {
		t.Fatalf("got %d", got)
	}
	s := "x"
	if got := DerefOrZero(&s); got != "x" {
		t.Fatalf("got %q", got)
	}
}
