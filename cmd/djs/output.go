package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/reusee/djs/jslex"
)

type jsonError struct {
	Message string `json:"message"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func writeJSONErrors(w io.Writer, errs []*jslex.SyntaxError) error {
	list := make([]jsonError, 0, len(errs))
	for _, err := range errs {
		pos := err.Pos()
		file := ""
		if err.Source != nil {
			file = err.Source.Name
		}
		list = append(list, jsonError{
			Message: err.Msg,
			File:    file,
			Line:    pos.Line,
			Column:  pos.Column,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string]any{
		"errors": list,
	})
}

func writeTokens(w io.Writer, src *jslex.Source, tokens []jslex.Token) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, tok := range tokens {
		pos := src.Position(tok.Start)
		if _, err := fmt.Fprintf(tw, "%d:%d\t%s\t%s\n", pos.Line, pos.Column, tok.Kind, tok); err != nil {
			return err
		}
	}
	return tw.Flush()
}
