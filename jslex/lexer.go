package jslex

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans JavaScript source one token at a time. A slash is always
// scanned as a division punctuator; the parser knows when an operand is
// expected and asks for ReadRegExp instead. Likewise the parser resumes
// template literals with ReadTemplateContinuation.
type Lexer struct {
	src     *Source
	content string
	offset  int
}

func New(src *Source) *Lexer {
	return &Lexer{
		src:     src,
		content: src.Content,
	}
}

func (l *Lexer) Source() *Source {
	return l.src
}

func (l *Lexer) Offset() int {
	return l.offset
}

func (l *Lexer) Reset(offset int) {
	l.offset = offset
}

func (l *Lexer) errorf(offset int, format string, args ...any) error {
	return &SyntaxError{
		Msg:    fmt.Sprintf(format, args...),
		Offset: offset,
		Source: l.src,
	}
}

func (l *Lexer) byteAt(offset int) byte {
	if offset < 0 || offset >= len(l.content) {
		return 0
	}
	return l.content[offset]
}

func (l *Lexer) Next() (Token, error) {
	newline, err := l.skipTrivia()
	if err != nil {
		return Token{}, err
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	tok.NewlineBefore = newline
	return tok, nil
}

func (l *Lexer) skipTrivia() (newline bool, err error) {
	if l.offset == 0 && strings.HasPrefix(l.content, "#!") {
		l.skipLineComment()
	}
	for l.offset < len(l.content) {
		c := l.content[l.offset]
		switch {

		case c == '\n' || c == '\r':
			newline = true
			l.offset++

		case c == ' ' || c == '\t' || c == '\v' || c == '\f':
			l.offset++

		case c == '/' && l.byteAt(l.offset+1) == '/':
			l.skipLineComment()

		case c == '/' && l.byteAt(l.offset+1) == '*':
			start := l.offset
			end := strings.Index(l.content[start+2:], "*/")
			if end < 0 {
				return newline, l.errorf(start, "unterminated comment")
			}
			l.offset = start + 2 + end + 2
			if strings.ContainsAny(l.content[start:l.offset], "\n\r\u2028\u2029") {
				newline = true
			}

		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.content[l.offset:])
			switch {
			case r == '\u2028' || r == '\u2029':
				newline = true
			case r == '\ufeff' || r == '\u00a0' || unicode.Is(unicode.Zs, r):
			default:
				return newline, nil
			}
			l.offset += size

		default:
			return newline, nil
		}
	}
	return newline, nil
}

func (l *Lexer) skipLineComment() {
	for l.offset < len(l.content) {
		c := l.content[l.offset]
		if c == '\n' || c == '\r' {
			return
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(l.content[l.offset:])
			if r == '\u2028' || r == '\u2029' {
				return
			}
			l.offset += size
			continue
		}
		l.offset++
	}
}

var punctuators = []string{
	">>>=",
	"...", "===", "!==", "**=", "<<=", ">>=", ">>>", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/",
	"%", "&", "|", "^", "!", "~", "?", ":", "=", ".",
}

func (l *Lexer) scan() (Token, error) {
	start := l.offset
	if start >= len(l.content) {
		return Token{
			Kind:  KindEOF,
			Start: start,
			End:   start,
		}, nil
	}

	c := l.content[start]
	switch {

	case c == '#':
		l.offset++
		tok, err := l.scanIdentifier(l.offset)
		if err != nil {
			return Token{}, err
		}
		tok.Kind = KindPrivateName
		tok.Start = start
		tok.Text = l.content[start:l.offset]
		return tok, nil

	case isDigit(c) || c == '.' && isDigit(l.byteAt(start+1)):
		return l.scanNumber(start)

	case c == '"' || c == '\'':
		return l.scanString(start, c)

	case c == '`':
		l.offset++
		return l.scanTemplate(start)

	case c == '\\' || c == '$' || c == '_' || isASCIILetter(c) || c >= utf8.RuneSelf:
		return l.scanIdentifier(start)

	}

	rest := l.content[start:]
	for _, p := range punctuators {
		if !strings.HasPrefix(rest, p) {
			continue
		}
		if p == "?." && isDigit(l.byteAt(start+2)) {
			// a ? .5 : b
			continue
		}
		l.offset += len(p)
		return Token{
			Kind:  KindPunct,
			Text:  p,
			Start: start,
			End:   l.offset,
		}, nil
	}

	r, _ := utf8.DecodeRuneInString(rest)
	return Token{}, l.errorf(start, "invalid character %q", r)
}

func (l *Lexer) scanIdentifier(start int) (Token, error) {
	escaped := false
	for l.offset < len(l.content) {
		c := l.content[l.offset]
		if c == '\\' {
			if err := l.skipUnicodeEscape(); err != nil {
				return Token{}, err
			}
			escaped = true
			continue
		}
		r, size := rune(c), 1
		if c >= utf8.RuneSelf {
			r, size = utf8.DecodeRuneInString(l.content[l.offset:])
		}
		if l.offset == start && !isIdentStart(r) ||
			l.offset > start && !isIdentPart(r) {
			break
		}
		l.offset += size
	}

	if l.offset == start {
		r, _ := utf8.DecodeRuneInString(l.content[start:])
		if start >= len(l.content) {
			return Token{}, l.errorf(start, "unexpected end of input")
		}
		return Token{}, l.errorf(start, "invalid character %q", r)
	}

	text := l.content[start:l.offset]
	kind := KindIdentifier
	if !escaped {
		switch {
		case text == DeferKeyword:
			kind = KindDefer
		case keywords[text]:
			kind = KindKeyword
		}
	}
	return Token{
		Kind:  kind,
		Text:  text,
		Start: start,
		End:   l.offset,
	}, nil
}

func (l *Lexer) skipUnicodeEscape() error {
	start := l.offset
	if l.byteAt(start+1) != 'u' {
		return l.errorf(start, "invalid escape in identifier")
	}
	l.offset += 2
	if l.byteAt(l.offset) == '{' {
		l.offset++
		digits := 0
		for isHexDigit(l.byteAt(l.offset)) {
			l.offset++
			digits++
		}
		if digits == 0 || l.byteAt(l.offset) != '}' {
			return l.errorf(start, "invalid escape in identifier")
		}
		l.offset++
		return nil
	}
	for range 4 {
		if !isHexDigit(l.byteAt(l.offset)) {
			return l.errorf(start, "invalid escape in identifier")
		}
		l.offset++
	}
	return nil
}

func (l *Lexer) skipDigits(isDigitFunc func(byte) bool) int {
	n := 0
	for {
		c := l.byteAt(l.offset)
		if !isDigitFunc(c) && c != '_' {
			return n
		}
		l.offset++
		n++
	}
}

func (l *Lexer) scanNumber(start int) (Token, error) {
	if l.byteAt(start) == '0' && strings.IndexByte("xXoObB", l.byteAt(start+1)) >= 0 {
		l.offset += 2
		if l.skipDigits(isHexDigit) == 0 {
			return Token{}, l.errorf(start, "invalid number literal")
		}
		if l.byteAt(l.offset) == 'n' {
			l.offset++
		}

	} else {
		l.skipDigits(isDigit)
		if l.byteAt(l.offset) == '.' {
			l.offset++
			l.skipDigits(isDigit)
		}
		if c := l.byteAt(l.offset); c == 'e' || c == 'E' {
			l.offset++
			if c := l.byteAt(l.offset); c == '+' || c == '-' {
				l.offset++
			}
			if l.skipDigits(isDigit) == 0 {
				return Token{}, l.errorf(start, "invalid number literal")
			}
		}
		if l.byteAt(l.offset) == 'n' {
			l.offset++
		}
	}

	if l.offset < len(l.content) {
		r, _ := utf8.DecodeRuneInString(l.content[l.offset:])
		if isIdentStart(r) || r == '\\' {
			return Token{}, l.errorf(l.offset, "identifier starts immediately after numeric literal")
		}
	}

	return Token{
		Kind:  KindNumber,
		Text:  l.content[start:l.offset],
		Start: start,
		End:   l.offset,
	}, nil
}

// skipEscaped steps over the character following a backslash.
func (l *Lexer) skipEscaped() {
	if l.offset >= len(l.content) {
		return
	}
	if l.content[l.offset] == '\r' && l.byteAt(l.offset+1) == '\n' {
		l.offset += 2
		return
	}
	_, size := utf8.DecodeRuneInString(l.content[l.offset:])
	l.offset += size
}

func (l *Lexer) scanString(start int, quote byte) (Token, error) {
	l.offset++
	for {
		if l.offset >= len(l.content) {
			return Token{}, l.errorf(start, "unterminated string literal")
		}
		c := l.content[l.offset]
		switch c {
		case quote:
			l.offset++
			return Token{
				Kind:  KindString,
				Text:  l.content[start:l.offset],
				Start: start,
				End:   l.offset,
			}, nil
		case '\\':
			l.offset++
			l.skipEscaped()
		case '\n', '\r':
			return Token{}, l.errorf(start, "unterminated string literal")
		default:
			l.offset++
		}
	}
}

// scanTemplate scans from just after a backtick or a substitution's
// closing brace up to the next "${" or the closing backtick.
func (l *Lexer) scanTemplate(start int) (Token, error) {
	for {
		if l.offset >= len(l.content) {
			return Token{}, l.errorf(start, "unterminated template literal")
		}
		c := l.content[l.offset]
		switch {
		case c == '`':
			l.offset++
			return Token{
				Kind:         KindTemplate,
				Text:         l.content[start:l.offset],
				Start:        start,
				End:          l.offset,
				TemplateTail: true,
			}, nil
		case c == '\\':
			l.offset++
			l.skipEscaped()
		case c == '$' && l.byteAt(l.offset+1) == '{':
			l.offset += 2
			return Token{
				Kind:  KindTemplate,
				Text:  l.content[start:l.offset],
				Start: start,
				End:   l.offset,
			}, nil
		default:
			l.offset++
		}
	}
}

// ReadTemplateContinuation rescans from the "}" at start that closes a
// template substitution.
func (l *Lexer) ReadTemplateContinuation(start int) (Token, error) {
	if l.byteAt(start) != '}' {
		return Token{}, l.errorf(start, "expected } to close template substitution")
	}
	l.offset = start + 1
	return l.scanTemplate(start)
}

// ReadRegExp rescans from the "/" at start as a regular expression literal.
func (l *Lexer) ReadRegExp(start int) (Token, error) {
	if l.byteAt(start) != '/' {
		return Token{}, l.errorf(start, "expected regular expression")
	}
	l.offset = start + 1
	inClass := false
loop:
	for {
		if l.offset >= len(l.content) {
			return Token{}, l.errorf(start, "unterminated regular expression")
		}
		c := l.content[l.offset]
		switch c {
		case '\n', '\r':
			return Token{}, l.errorf(start, "unterminated regular expression")
		case '\\':
			l.offset++
			if c := l.byteAt(l.offset); c == '\n' || c == '\r' {
				return Token{}, l.errorf(start, "unterminated regular expression")
			}
			l.skipEscaped()
		case '[':
			inClass = true
			l.offset++
		case ']':
			inClass = false
			l.offset++
		case '/':
			l.offset++
			if !inClass {
				break loop
			}
		default:
			l.offset++
		}
	}

	// flags
	for l.offset < len(l.content) {
		r, size := utf8.DecodeRuneInString(l.content[l.offset:])
		if !isIdentPart(r) {
			break
		}
		l.offset += size
	}

	return Token{
		Kind:  KindRegExp,
		Text:  l.content[start:l.offset],
		Start: start,
		End:   l.offset,
	}, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' ||
		r < utf8.RuneSelf && isASCIILetter(byte(r)) ||
		r >= utf8.RuneSelf && (unicode.IsLetter(r) || unicode.Is(unicode.Nl, r))
}

func isIdentPart(r rune) bool {
	if isIdentStart(r) {
		return true
	}
	if r < utf8.RuneSelf {
		return isDigit(byte(r))
	}
	return unicode.IsDigit(r) ||
		unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) ||
		r == '\u200c' || r == '\u200d'
}
