package jslex

import (
	"errors"
	"strings"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(NewSource("test.djs", src))
	if err != nil {
		t.Fatal(err)
	}
	return tokens
}

func kindsAndTexts(tokens []Token) string {
	var parts []string
	for _, tok := range tokens {
		if tok.Kind == KindEOF {
			break
		}
		parts = append(parts, tok.Kind.String()+":"+tok.Text)
	}
	return strings.Join(parts, " ")
}

func TestDeferKeyword(t *testing.T) {
	tokens := tokenize(t, `defer db.close()`)
	if tokens[0].Kind != KindDefer {
		t.Fatalf("got %v", tokens[0].Kind)
	}
	if got := kindsAndTexts(tokens); got != `defer:defer identifier:db punctuator:. identifier:close punctuator:( punctuator:)` {
		t.Fatalf("got %s", got)
	}
}

func TestDeferAsPropertyNameStillLexesAsKeyword(t *testing.T) {
	tokens := tokenize(t, `obj.defer`)
	if tokens[2].Kind != KindDefer {
		t.Fatalf("got %v", tokens[2].Kind)
	}
	if !tokens[2].IsName() {
		t.Fatal("defer should be usable as a property name")
	}
}

func TestEscapedDeferIsIdentifier(t *testing.T) {
	tokens := tokenize(t, `\u0064efer`)
	if tokens[0].Kind != KindIdentifier {
		t.Fatalf("got %v", tokens[0].Kind)
	}
}

func TestNearMissesAreIdentifiers(t *testing.T) {
	tokens := tokenize(t, `deferred defers _defer`)
	for _, tok := range tokens[:3] {
		if tok.Kind != KindIdentifier {
			t.Fatalf("%s: got %v", tok.Text, tok.Kind)
		}
	}
}

func TestKeywords(t *testing.T) {
	tokens := tokenize(t, `function let async await yield`)
	want := []Kind{KindKeyword, KindIdentifier, KindIdentifier, KindIdentifier, KindIdentifier}
	for i, kind := range want {
		if tokens[i].Kind != kind {
			t.Fatalf("%s: got %v", tokens[i].Text, tokens[i].Kind)
		}
	}
}

func TestNewlineBefore(t *testing.T) {
	tokens := tokenize(t, "a\nb /* x\n */ c // d\ne")
	want := []bool{false, true, true, true}
	for i, nl := range want {
		if tokens[i].NewlineBefore != nl {
			t.Fatalf("token %s: got %v", tokens[i].Text, tokens[i].NewlineBefore)
		}
	}
}

func TestStringsAndComments(t *testing.T) {
	tokens := tokenize(t, `'defer' "a\"b" // defer
	/* defer */ x`)
	if got := kindsAndTexts(tokens); got != `string:'defer' string:"a\"b" identifier:x` {
		t.Fatalf("got %s", got)
	}
}

func TestRegExpVersusDivision(t *testing.T) {
	tokens := tokenize(t, `a = b / c / d; r = /[/]x/g.test(s); return /x/`)
	var regexps []string
	divisions := 0
	for _, tok := range tokens {
		switch {
		case tok.Kind == KindRegExp:
			regexps = append(regexps, tok.Text)
		case tok.Is("/"):
			divisions++
		}
	}
	if divisions != 2 {
		t.Fatalf("got %d divisions", divisions)
	}
	if strings.Join(regexps, " ") != `/[/]x/g /x/` {
		t.Fatalf("got %v", regexps)
	}
}

func TestTemplates(t *testing.T) {
	tokens := tokenize(t, "`a${ {b: 1}.b }c${`d${e}`}f` + g")
	got := kindsAndTexts(tokens)
	want := "template:`a${ punctuator:{ identifier:b punctuator:: number:1 punctuator:} punctuator:. identifier:b " +
		"template:}c${ template:`d${ identifier:e template:}` template:}f` punctuator:+ identifier:g"
	if got != want {
		t.Fatalf("got %s", got)
	}
}

func TestNumbers(t *testing.T) {
	tokens := tokenize(t, `0x1F 1_000 .5 1e-3 10n 0b101 1..toString`)
	var numbers []string
	for _, tok := range tokens {
		if tok.Kind == KindNumber {
			numbers = append(numbers, tok.Text)
		}
	}
	if got := strings.Join(numbers, " "); got != `0x1F 1_000 .5 1e-3 10n 0b101 1.` {
		t.Fatalf("got %s", got)
	}
}

func TestOptionalChainVersusConditional(t *testing.T) {
	tokens := tokenize(t, `a?.b; c?.5:d`)
	if got := kindsAndTexts(tokens); got != `identifier:a punctuator:?. identifier:b punctuator:; identifier:c punctuator:? number:.5 punctuator:: identifier:d` {
		t.Fatalf("got %s", got)
	}
}

func TestPrivateName(t *testing.T) {
	tokens := tokenize(t, `this.#count`)
	if tokens[2].Kind != KindPrivateName || tokens[2].Text != "#count" {
		t.Fatalf("got %v %s", tokens[2].Kind, tokens[2].Text)
	}
}

func TestHashbang(t *testing.T) {
	tokens := tokenize(t, "#!/usr/bin/env djs\nx")
	if tokens[0].Text != "x" || !tokens[0].NewlineBefore {
		t.Fatalf("got %+v", tokens[0])
	}
}

func TestLexErrors(t *testing.T) {
	cases := map[string]string{
		`'abc`:    "unterminated string literal",
		"`abc":    "unterminated template literal",
		`/* abc`:  "unterminated comment",
		`x = /ab`: "unterminated regular expression",
		`3in x`:   "identifier starts immediately after numeric literal",
		`a ¤ b`:   "invalid character",
	}
	for src, msg := range cases {
		_, err := Tokenize(NewSource("bad.djs", src))
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("%s: got %v", src, err)
		}
		if !strings.Contains(syntaxErr.Msg, msg) {
			t.Fatalf("%s: got %v", src, syntaxErr.Msg)
		}
	}
}

func TestSyntaxErrorRendering(t *testing.T) {
	src := NewSource("main.djs", "let a = 1\nlet b = 'x\n")
	_, err := Tokenize(src)
	if err == nil {
		t.Fatal("should error")
	}
	want := "SyntaxError: unterminated string literal at main.djs:2:9\nlet b = 'x\n        ^\n"
	if err.Error() != want {
		t.Fatalf("got %q", err.Error())
	}
}

func TestPosition(t *testing.T) {
	src := NewSource("x", "ab\nçd\n")
	pos := src.Position(5)
	if pos.Line != 2 || pos.Column != 2 {
		t.Fatalf("got %+v", pos)
	}
	pos = src.Position(0)
	if pos.Line != 1 || pos.Column != 1 {
		t.Fatalf("got %+v", pos)
	}
}
