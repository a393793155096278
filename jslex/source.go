package jslex

import (
	"sort"
	"strings"
	"unicode/utf8"
)

type Source struct {
	Name    string
	Content string
	Lines   []string

	lineStarts []int
}

func NewSource(name string, content string) *Source {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{
		Name:       name,
		Content:    content,
		Lines:      strings.Split(content, "\n"),
		lineStarts: starts,
	}
}

// Pos is a 1-based line and column, columns counted in runes.
type Pos struct {
	Line   int
	Column int
}

func (s *Source) Position(offset int) Pos {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.Content) {
		offset = len(s.Content)
	}
	idx := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	lineStart := s.lineStarts[idx]
	return Pos{
		Line:   idx + 1,
		Column: utf8.RuneCountInString(s.Content[lineStart:offset]) + 1,
	}
}
