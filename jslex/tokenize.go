package jslex

// Tokenize scans a whole source without a parser. Regular expressions are
// told apart from division by the previous token, which is right for
// ordinary code but can misread a slash after a block's closing brace.
func Tokenize(src *Source) ([]Token, error) {
	l := New(src)
	var tokens []Token
	// open brace counts of each template substitution being scanned
	var substitutions []int

	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}

		switch {

		case tok.Kind == KindPunct && (tok.Text == "/" || tok.Text == "/=") &&
			regExpAllowedAfter(tokens):
			newline := tok.NewlineBefore
			tok, err = l.ReadRegExp(tok.Start)
			if err != nil {
				return nil, err
			}
			tok.NewlineBefore = newline

		case tok.Is("{") && len(substitutions) > 0:
			substitutions[len(substitutions)-1]++

		case tok.Is("}") && len(substitutions) > 0:
			top := len(substitutions) - 1
			if substitutions[top] > 0 {
				substitutions[top]--
				break
			}
			substitutions = substitutions[:top]
			newline := tok.NewlineBefore
			tok, err = l.ReadTemplateContinuation(tok.Start)
			if err != nil {
				return nil, err
			}
			tok.NewlineBefore = newline

		}

		if tok.Kind == KindTemplate && !tok.TemplateTail {
			substitutions = append(substitutions, 0)
		}

		tokens = append(tokens, tok)
		if tok.Kind == KindEOF {
			return tokens, nil
		}
	}
}

var regExpAfterKeyword = map[string]bool{
	"case":       true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"return":     true,
	"throw":      true,
	"typeof":     true,
	"void":       true,
}

func regExpAllowedAfter(tokens []Token) bool {
	if len(tokens) == 0 {
		return true
	}
	prev := tokens[len(tokens)-1]
	switch prev.Kind {
	case KindPunct:
		return prev.Text != ")" && prev.Text != "]"
	case KindKeyword:
		return regExpAfterKeyword[prev.Text]
	case KindIdentifier:
		return prev.Text == "yield" || prev.Text == "await" || prev.Text == "of"
	case KindDefer:
		return true
	case KindTemplate:
		return !prev.TemplateTail
	}
	return false
}
