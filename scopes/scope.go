// Package scopes associates every defer statement with the function it
// runs in.
package scopes

import (
	"iter"

	"github.com/reusee/djs/jsast"
)

// Scope is the defer scope of one function. Each invocation of the
// function gets its own stack of deferred actions at run time.
type Scope struct {
	Function *jsast.Function
	Parent   *Scope
	// owned directly, in program order
	Defers []*jsast.DeferStmt
	// some deferred action awaits, so the actions must be async
	AwaitsInDefers bool

	name string
}

func (s *Scope) Name() string {
	if s.name != "" {
		return s.name
	}
	if s.Function.Kind == jsast.FuncArrow {
		return "<arrow>"
	}
	return "<anonymous>"
}

func (s *Scope) Empty() bool {
	return len(s.Defers) == 0
}

func (s *Scope) Async() bool {
	return s.Function.Async
}

func (s *Scope) Depth() int {
	depth := 0
	for p := s.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}

type Report struct {
	Program *jsast.Program
	// one per function in source order, including those without defers
	Scopes []*Scope
}

// Lowered yields the scopes that need rewriting.
func (r *Report) Lowered() iter.Seq[*Scope] {
	return func(yield func(*Scope) bool) {
		for _, scope := range r.Scopes {
			if scope.Empty() {
				continue
			}
			if !yield(scope) {
				return
			}
		}
	}
}

func (r *Report) NumDefers() int {
	n := 0
	for _, scope := range r.Scopes {
		n += len(scope.Defers)
	}
	return n
}
