package jsast

import "testing"

func TestInspect(t *testing.T) {
	deferred := &DeferStmt{
		Kind: DeferSingle,
		Body: &ExprStmt{
			X: &CallExpr{
				Callee: &Ident{Name: "cleanup"},
			},
		},
	}
	fn := &Function{
		Kind: FuncDeclaration,
		Name: &Ident{Name: "f"},
		Body: &BlockStmt{
			Body: []Stmt{
				deferred,
				&ReturnStmt{},
			},
		},
	}
	prog := &Program{
		Body: []Stmt{
			&FuncDecl{Func: fn},
		},
	}

	var names []string
	depth, maxDepth := 0, 0
	Inspect(prog, func(n Node) bool {
		if n == nil {
			depth--
			return true
		}
		depth++
		if depth > maxDepth {
			maxDepth = depth
		}
		if ident, ok := n.(*Ident); ok {
			names = append(names, ident.Name)
		}
		return true
	})
	if depth != 0 {
		t.Fatalf("got %d", depth)
	}
	if len(names) != 2 || names[0] != "f" || names[1] != "cleanup" {
		t.Fatalf("got %v", names)
	}
	// Program FuncDecl Function BlockStmt DeferStmt ExprStmt CallExpr Ident
	if maxDepth != 8 {
		t.Fatalf("got %d", maxDepth)
	}
}

func TestInspectPrune(t *testing.T) {
	prog := &Program{
		Body: []Stmt{
			&FuncDecl{
				Func: &Function{
					Body: &BlockStmt{
						Body: []Stmt{
							&DeferStmt{Body: &EmptyStmt{}},
						},
					},
				},
			},
			&DeferStmt{Body: &EmptyStmt{}},
		},
	}
	n := 0
	Inspect(prog, func(node Node) bool {
		switch node.(type) {
		case *Function:
			return false
		case *DeferStmt:
			n++
		}
		return true
	})
	if n != 1 {
		t.Fatalf("got %d", n)
	}
}

func TestKindNames(t *testing.T) {
	if DeferBlock.String() != "block" || DeferSingle.String() != "single" {
		t.Fatal()
	}
	if FuncArrow.String() != "arrow" {
		t.Fatalf("got %s", FuncArrow)
	}
	if VarConst.String() != "const" {
		t.Fatalf("got %s", VarConst)
	}
}
