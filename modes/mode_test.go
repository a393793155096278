package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

func TestModeString(t *testing.T) {
	if s := ModeProduction.String(); s != "production" {
		t.Fatalf("got %s", s)
	}
	if s := ModeDevelopment.String(); s != "development" {
		t.Fatalf("got %s", s)
	}
	if s := Mode(0).String(); s != "Mode(0)" {
		t.Fatalf("got %s", s)
	}
}

func TestForDevelopment(t *testing.T) {
	dscope.New(ForDevelopment()).Call(func(
		mode Mode,
		tt *testing.T,
	) {
		if !mode.Checked() {
			t.Fatalf("got %v", mode)
		}
		if tt != nil {
			t.Fatal()
		}
	})
}
