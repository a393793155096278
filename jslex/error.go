package jslex

import (
	"fmt"
	"strings"
)

type SyntaxError struct {
	Msg    string
	Offset int
	Source *Source
}

func (e *SyntaxError) Pos() Pos {
	if e.Source == nil {
		return Pos{}
	}
	return e.Source.Position(e.Offset)
}

func (e *SyntaxError) Error() string {
	if e.Source == nil {
		return "SyntaxError: " + e.Msg
	}

	pos := e.Pos()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("SyntaxError: %s at %s:%d:%d\n", e.Msg, e.Source.Name, pos.Line, pos.Column))

	idx := pos.Line - 1
	if idx >= 0 && idx < len(e.Source.Lines) {
		line := strings.TrimSuffix(e.Source.Lines[idx], "\r")
		sb.WriteString(line)
		sb.WriteString("\n")

		// caret
		col := pos.Column - 1
		for i, r := range []rune(line) {
			if i >= col {
				break
			}
			if r == '\t' {
				sb.WriteString("\t")
			} else {
				for range runeWidth(r) {
					sb.WriteString(" ")
				}
			}
		}
		sb.WriteString("^\n")
	}

	return sb.String()
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
