package scopes

import (
	"github.com/reusee/djs/jsast"
)

type analyzer struct {
	report *Report
	stack  []jsast.Node
	scopes []*Scope
	// number of enclosing defer bodies per scope on the stack
	deferDepth []int
	// names inferred from declarations and assignments
	hints map[*jsast.Function]string
}

func Analyze(prog *jsast.Program) *Report {
	a := &analyzer{
		report: &Report{
			Program: prog,
		},
		hints: make(map[*jsast.Function]string),
	}
	jsast.Inspect(prog, a.visit)
	return a.report
}

func (a *analyzer) current() *Scope {
	if len(a.scopes) == 0 {
		return nil
	}
	return a.scopes[len(a.scopes)-1]
}

func (a *analyzer) visit(node jsast.Node) bool {
	if node == nil {
		a.leave(a.stack[len(a.stack)-1])
		a.stack = a.stack[:len(a.stack)-1]
		return true
	}
	a.stack = append(a.stack, node)
	a.enter(node)
	return true
}

func (a *analyzer) enter(node jsast.Node) {
	switch node := node.(type) {

	case *jsast.Function:
		scope := &Scope{
			Function: node,
			Parent:   a.current(),
			name:     a.hints[node],
		}
		if node.Name != nil {
			scope.name = node.Name.Name
		}
		a.report.Scopes = append(a.report.Scopes, scope)
		a.scopes = append(a.scopes, scope)
		a.deferDepth = append(a.deferDepth, 0)

	case *jsast.DeferStmt:
		scope := a.current()
		if scope == nil {
			// rejected by the parser
			return
		}
		scope.Defers = append(scope.Defers, node)
		a.deferDepth[len(a.deferDepth)-1]++

	case *jsast.AwaitExpr:
		a.noteAwait()

	case *jsast.ForInStmt:
		if node.Await {
			a.noteAwait()
		}

	case *jsast.Declarator:
		if ident, ok := node.Target.(*jsast.Ident); ok {
			a.hint(node.Init, ident.Name)
		}

	case *jsast.AssignExpr:
		a.hint(node.Value, exprName(node.Target))

	case *jsast.Property:
		if !node.Computed && node.Kind != jsast.PropSpread {
			a.hint(node.Value, exprName(node.Key))
		}

	case *jsast.Class:
		className := ""
		if node.Name != nil {
			className = node.Name.Name
		} else if len(a.stack) >= 3 {
			// const C = class {}
			if decl, ok := a.stack[len(a.stack)-3].(*jsast.Declarator); ok {
				className = exprName(decl.Target)
			}
		}
		for _, member := range node.Members {
			if member.Computed {
				continue
			}
			name := exprName(member.Key)
			if className != "" && name != "" {
				name = className + "." + name
			}
			a.hint(member.Value, name)
		}

	}
}

func (a *analyzer) leave(node jsast.Node) {
	switch node.(type) {
	case *jsast.Function:
		a.scopes = a.scopes[:len(a.scopes)-1]
		a.deferDepth = a.deferDepth[:len(a.deferDepth)-1]
	case *jsast.DeferStmt:
		if len(a.deferDepth) > 0 {
			a.deferDepth[len(a.deferDepth)-1]--
		}
	}
}

func (a *analyzer) noteAwait() {
	scope := a.current()
	if scope == nil {
		return
	}
	if a.deferDepth[len(a.deferDepth)-1] > 0 {
		scope.AwaitsInDefers = true
	}
}

func (a *analyzer) hint(value jsast.Expr, name string) {
	if name == "" {
		return
	}
	var fn *jsast.Function
	switch value := value.(type) {
	case *jsast.FuncExpr:
		fn = value.Func
	case *jsast.ParenExpr:
		a.hint(value.X, name)
		return
	default:
		return
	}
	if _, ok := a.hints[fn]; !ok {
		a.hints[fn] = name
	}
}

func exprName(expr jsast.Expr) string {
	switch expr := expr.(type) {
	case *jsast.Ident:
		return expr.Name
	case *jsast.PrivateName:
		return expr.Name
	case *jsast.Literal:
		if expr.Kind == jsast.LitString && len(expr.Raw) >= 2 {
			return expr.Raw[1 : len(expr.Raw)-1]
		}
		return expr.Raw
	case *jsast.MemberExpr:
		if expr.Computed {
			return ""
		}
		object := exprName(expr.Object)
		if _, ok := expr.Object.(*jsast.ThisExpr); ok {
			object = "this"
		}
		property := exprName(expr.Property)
		if object == "" || property == "" {
			return property
		}
		return object + "." + property
	}
	return ""
}
