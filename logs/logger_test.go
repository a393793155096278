package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/djs/modes"
	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Warn("test", "hello", "world!")
		logger.Debug("hidden")
	})
	if !strings.Contains(buf.String(), "hello=world!") {
		t.Fatalf("got %q", buf.String())
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestJournalKey(t *testing.T) {
	if got := toJournalKey("djs.span"); got != "DJS_SPAN" {
		t.Fatalf("got %s", got)
	}
	if got := toJournalKey("error"); got != "DJS_ERROR" {
		t.Fatalf("got %s", got)
	}
}
