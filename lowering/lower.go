// Package lowering rewrites defer statements into plain JavaScript by
// splicing text into the original source. Code outside the rewritten
// constructs is copied byte for byte and keeps its line numbers.
package lowering

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/djs/jsast"
	"github.com/reusee/djs/scopes"
)

type Options struct {
	Prefix string
	Policy ErrorPolicy
}

type editKind uint8

const (
	editClose editKind = iota
	editOpen
	editReplace
)

type edit struct {
	pos  int
	end  int
	text string
	kind editKind
	// start of the construct the edit belongs to
	owner int
}

func Lower(content string, report *scopes.Report, opts Options) (string, error) {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if !ValidPrefix(opts.Prefix) {
		return "", fmt.Errorf("invalid identifier prefix %q", opts.Prefix)
	}
	if _, ok := policyNames[opts.Policy]; !ok {
		return "", fmt.Errorf("invalid error policy %v", opts.Policy)
	}

	var edits []edit
	var names Names
	for scope := range report.Lowered() {
		if edits == nil {
			names = ChooseNames(opts.Prefix, report.Program.Names)
		}
		edits = append(edits, lowerScope(content, scope, names, opts.Policy)...)
	}
	if len(edits) == 0 {
		return content, nil
	}
	return apply(content, edits), nil
}

func lowerScope(content string, scope *scopes.Scope, names Names, policy ErrorPolicy) []edit {
	body := scope.Function.Body
	async := scope.Async() && scope.AwaitsInDefers

	await := ""
	push := names.Stack + ".push(() =>"
	if async {
		await = "await "
		push = names.Stack + ".push(async () =>"
	}
	replacer := strings.NewReplacer(
		"$AWAIT", await,
		"$S", names.Stack,
		"$F", names.Failed,
		"$E", names.Error,
		"$C", names.Caught,
	)

	pos, semicolon := prologuePos(content, body)
	prologue := replacer.Replace(policy.prologue())
	if semicolon {
		prologue = ";" + prologue
	}
	edits := []edit{
		insert(pos, prologue, editOpen, body.Start),
	}

	for _, d := range scope.Defers {
		switch d.Kind {
		case jsast.DeferBlock:
			edits = append(edits,
				edit{
					pos:   d.Keyword.Start,
					end:   d.Keyword.End,
					text:  push,
					kind:  editReplace,
					owner: d.Start,
				},
				insert(d.End, ");", editClose, d.Start),
			)
		default:
			_, bodyEnd := d.Body.Span()
			edits = append(edits,
				edit{
					pos:   d.Keyword.Start,
					end:   d.Keyword.End,
					text:  push + " {",
					kind:  editReplace,
					owner: d.Start,
				},
				insert(bodyEnd, " });", editClose, d.Start),
			)
		}
	}

	edits = append(edits, insert(body.End-1, replacer.Replace(policy.epilogue()), editClose, body.Start))
	return edits
}

func insert(pos int, text string, kind editKind, owner int) edit {
	return edit{
		pos:   pos,
		end:   pos,
		text:  text,
		kind:  kind,
		owner: owner,
	}
}

// prologuePos returns the offset after the opening brace and the
// directive prologue of body, and whether a semicolon must separate the
// inserted code from the last directive.
func prologuePos(content string, body *jsast.BlockStmt) (int, bool) {
	pos := body.Start + 1
	semicolon := false
	for _, stmt := range body.Body {
		expr, ok := stmt.(*jsast.ExprStmt)
		if !ok {
			break
		}
		lit, ok := expr.X.(*jsast.Literal)
		if !ok || lit.Kind != jsast.LitString {
			break
		}
		pos = expr.End
		semicolon = content[expr.End-1] != ';'
	}
	return pos, semicolon
}

func compareEdits(a, b edit) int {
	if c := cmp.Compare(a.pos, b.pos); c != 0 {
		return c
	}
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if a.kind == editClose {
		// inner constructs close first
		return cmp.Compare(b.owner, a.owner)
	}
	return cmp.Compare(a.owner, b.owner)
}

func apply(content string, edits []edit) string {
	slices.SortStableFunc(edits, compareEdits)
	var sb strings.Builder
	sb.Grow(len(content) + len(edits)*64)
	last := 0
	for _, e := range edits {
		sb.WriteString(content[last:e.pos])
		sb.WriteString(e.text)
		last = e.end
	}
	sb.WriteString(content[last:])
	return sb.String()
}
