// Package jsparse parses JavaScript extended with the defer statement.
package jsparse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reusee/djs/jsast"
	"github.com/reusee/djs/jslex"
)

type SyntaxError = jslex.SyntaxError

type parser struct {
	lexer   *jslex.Lexer
	src     *jslex.Source
	tok     jslex.Token
	prevEnd int
	names   map[string]struct{}
	module  bool
	frame   frame
}

// frame is the syntactic context of the innermost function body.
type frame struct {
	inFunction  bool
	async       bool
	generator   bool
	classBody   bool
	breakable   int
	loops       int
	labels      []label

	inDefer bool
	// jump targets outside the innermost defer body
	outerBreakable bool
	outerLoops     bool
	outerLabels    []label
}

type label struct {
	name string
	loop bool
}

type bailout struct {
	err error
}

func Parse(src *jslex.Source) (prog *jsast.Program, err error) {
	p := &parser{
		lexer: jslex.New(src),
		src:   src,
		names: make(map[string]struct{}),
	}
	defer func() {
		if v := recover(); v != nil {
			b, ok := v.(bailout)
			if !ok {
				panic(v)
			}
			prog = nil
			err = b.err
		}
	}()
	return p.parseProgram(), nil
}

func ParseString(name string, content string) (*jsast.Program, error) {
	return Parse(jslex.NewSource(name, content))
}

func (p *parser) parseProgram() *jsast.Program {
	p.next()
	prog := &jsast.Program{
		Range: jsast.Range{
			Start: 0,
			End:   len(p.src.Content),
		},
		Names: p.names,
	}
	for p.tok.Kind != jslex.KindEOF {
		prog.Body = append(prog.Body, p.parseStatement())
	}
	prog.Module = p.module
	return prog
}

func (p *parser) next() {
	p.prevEnd = p.tok.End
	tok, err := p.lexer.Next()
	if err != nil {
		panic(bailout{err: err})
	}
	p.tok = tok
}

// peek returns the token after the current one without consuming anything.
func (p *parser) peek() jslex.Token {
	offset := p.lexer.Offset()
	tok, err := p.lexer.Next()
	p.lexer.Reset(offset)
	if err != nil {
		return jslex.Token{
			Kind:  jslex.KindInvalid,
			Start: offset,
			End:   offset,
		}
	}
	return tok
}

func (p *parser) errorf(offset int, format string, args ...any) {
	panic(bailout{
		err: &SyntaxError{
			Msg:    fmt.Sprintf(format, args...),
			Offset: offset,
			Source: p.src,
		},
	})
}

func (p *parser) unexpected() {
	switch p.tok.Kind {
	case jslex.KindEOF:
		p.errorf(p.tok.Start, "unexpected end of input")
	case jslex.KindDefer:
		p.errorf(p.tok.Start, "unexpected reserved word defer")
	}
	p.errorf(p.tok.Start, "unexpected token %s", p.tok)
}

func (p *parser) is(text string) bool {
	return p.tok.Is(text)
}

// isWord matches contextual keywords, which lex as identifiers.
func (p *parser) isWord(word string) bool {
	return p.tok.Kind == jslex.KindIdentifier && p.tok.Text == word
}

func (p *parser) eat(text string) bool {
	if p.tok.Is(text) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(text string) jslex.Token {
	tok := p.tok
	if !tok.Is(text) {
		p.unexpected()
	}
	p.next()
	return tok
}

// semicolon consumes an explicit semicolon or applies automatic
// semicolon insertion.
func (p *parser) semicolon() {
	if p.eat(";") {
		return
	}
	if p.is("}") || p.tok.Kind == jslex.KindEOF || p.tok.NewlineBefore {
		return
	}
	p.unexpected()
}

func (p *parser) rangeFrom(start int) jsast.Range {
	return jsast.Range{
		Start: start,
		End:   p.prevEnd,
	}
}

func (p *parser) record(name string) {
	p.names[name] = struct{}{}
}

// identName decodes unicode escapes in identifier text.
func identName(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var sb strings.Builder
	for i := 0; i < len(text); {
		if text[i] != '\\' || i+1 >= len(text) || text[i+1] != 'u' {
			sb.WriteByte(text[i])
			i++
			continue
		}
		i += 2
		var hex string
		if i < len(text) && text[i] == '{' {
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				return text
			}
			hex = text[i+1 : i+end]
			i += end + 1
		} else {
			if i+4 > len(text) {
				return text
			}
			hex = text[i : i+4]
			i += 4
		}
		code, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || code > utf8.MaxRune {
			return text
		}
		sb.WriteRune(rune(code))
	}
	return sb.String()
}

func (p *parser) newIdent(tok jslex.Token) *jsast.Ident {
	name := identName(tok.Text)
	p.record(name)
	return &jsast.Ident{
		Range: jsast.Range{
			Start: tok.Start,
			End:   tok.End,
		},
		Name: name,
	}
}

// bindingIdent parses an identifier in a binding or label position.
func (p *parser) bindingIdent() *jsast.Ident {
	if p.tok.Kind != jslex.KindIdentifier {
		p.unexpected()
	}
	if p.frame.generator && p.tok.Text == "yield" ||
		p.frame.async && p.tok.Text == "await" {
		p.errorf(p.tok.Start, "unexpected reserved word %s", p.tok.Text)
	}
	ident := p.newIdent(p.tok)
	p.next()
	return ident
}

// enterFunction swaps in a fresh frame for a function body and returns
// the one to restore.
func (p *parser) enterFunction(async, generator bool) frame {
	saved := p.frame
	p.frame = frame{
		inFunction: true,
		async:      async,
		generator:  generator,
	}
	return saved
}

// enterDefer hides the enclosing jump targets: a deferred action runs in
// a closure, so break and continue cannot reach them.
func (p *parser) enterDefer() frame {
	saved := p.frame
	f := &p.frame
	f.outerBreakable = f.outerBreakable || f.breakable > 0
	f.outerLoops = f.outerLoops || f.loops > 0
	f.outerLabels = append(append([]label(nil), f.outerLabels...), f.labels...)
	f.breakable = 0
	f.loops = 0
	f.labels = nil
	f.inDefer = true
	return saved
}
