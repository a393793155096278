package jslex

import "fmt"

type Token struct {
	Kind Kind
	Text string
	// byte offsets into Source.Content
	Start int
	End   int
	// a line terminator appears between this token and the previous one
	NewlineBefore bool
	// for KindTemplate: the token ends with a backtick rather than "${"
	TemplateTail bool
}

type Kind uint8

const (
	KindInvalid Kind = iota
	KindEOF
	KindIdentifier
	KindKeyword
	KindDefer
	KindPrivateName
	KindNumber
	KindString
	KindTemplate
	KindRegExp
	KindPunct
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindEOF:         "EOF",
	KindIdentifier:  "identifier",
	KindKeyword:     "keyword",
	KindDefer:       "defer",
	KindPrivateName: "private name",
	KindNumber:      "number",
	KindString:      "string",
	KindTemplate:    "template",
	KindRegExp:      "regexp",
	KindPunct:       "punctuator",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Is reports whether the token is the punctuator or keyword text.
func (t Token) Is(text string) bool {
	return (t.Kind == KindPunct || t.Kind == KindKeyword) && t.Text == text
}

// IsName reports whether the token is an IdentifierName: identifiers,
// reserved words and defer. Property names accept all of them.
func (t Token) IsName() bool {
	return t.Kind == KindIdentifier || t.Kind == KindKeyword || t.Kind == KindDefer
}

func (t Token) String() string {
	if t.Kind == KindEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}

// DeferKeyword is the only word the dialect adds to JavaScript.
const DeferKeyword = "defer"

var keywords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"null":       true,
	"return":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,
}

func IsKeyword(word string) bool {
	return keywords[word]
}
