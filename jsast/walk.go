package jsast

// Inspect traverses the tree in depth-first order. It calls f(n) for
// each node; when f returns true, Inspect visits the children of n and
// then calls f(nil).
func Inspect(node Node, f func(Node) bool) {
	if isNil(node) {
		return
	}
	if !f(node) {
		return
	}
	walkChildren(node, f)
	f(nil)
}

func isNil(node Node) bool {
	if node == nil {
		return true
	}
	switch n := node.(type) {
	case *BlockStmt:
		return n == nil
	case *Ident:
		return n == nil
	case *Literal:
		return n == nil
	case *VarDecl:
		return n == nil
	case *Function:
		return n == nil
	case *Class:
		return n == nil
	}
	return false
}

func stmts(list []Stmt, f func(Node) bool) {
	for _, s := range list {
		Inspect(s, f)
	}
}

func exprs(list []Expr, f func(Node) bool) {
	for _, e := range list {
		if e != nil {
			Inspect(e, f)
		}
	}
}

func walkChildren(node Node, f func(Node) bool) {
	switch n := node.(type) {

	case *Program:
		stmts(n.Body, f)
	case *BlockStmt:
		stmts(n.Body, f)
	case *EmptyStmt, *DebuggerStmt, *ThisExpr, *SuperExpr, *Ident, *PrivateName,
		*Literal, *MetaProperty:
	case *ExprStmt:
		Inspect(n.X, f)
	case *VarDecl:
		for _, d := range n.Decls {
			Inspect(d, f)
		}
	case *Declarator:
		Inspect(n.Target, f)
		Inspect(n.Init, f)
	case *FuncDecl:
		Inspect(n.Func, f)
	case *ClassDecl:
		Inspect(n.Class, f)
	case *ReturnStmt:
		Inspect(n.Result, f)
	case *IfStmt:
		Inspect(n.Test, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *ForStmt:
		Inspect(n.Init, f)
		Inspect(n.Test, f)
		Inspect(n.Update, f)
		Inspect(n.Body, f)
	case *ForInStmt:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
		Inspect(n.Body, f)
	case *WhileStmt:
		Inspect(n.Test, f)
		Inspect(n.Body, f)
	case *DoWhileStmt:
		Inspect(n.Body, f)
		Inspect(n.Test, f)
	case *BranchStmt:
		if n.Label != nil {
			Inspect(n.Label, f)
		}
	case *ThrowStmt:
		Inspect(n.X, f)
	case *TryStmt:
		if n.Block != nil {
			Inspect(n.Block, f)
		}
		Inspect(n.Param, f)
		if n.Handler != nil {
			Inspect(n.Handler, f)
		}
		if n.Finalizer != nil {
			Inspect(n.Finalizer, f)
		}
	case *SwitchStmt:
		Inspect(n.Disc, f)
		for _, c := range n.Cases {
			Inspect(c, f)
		}
	case *SwitchCase:
		Inspect(n.Test, f)
		stmts(n.Body, f)
	case *LabeledStmt:
		if n.Label != nil {
			Inspect(n.Label, f)
		}
		Inspect(n.Body, f)
	case *WithStmt:
		Inspect(n.Object, f)
		Inspect(n.Body, f)
	case *ImportDecl:
		if n.From != nil {
			Inspect(n.From, f)
		}
	case *ExportDecl:
		Inspect(n.Decl, f)
		Inspect(n.Default, f)
		if n.From != nil {
			Inspect(n.From, f)
		}
	case *DeferStmt:
		Inspect(n.Body, f)

	case *TemplateLit:
		Inspect(n.Tag, f)
		exprs(n.Exprs, f)
	case *ArrayLit:
		exprs(n.Elems, f)
	case *ObjectLit:
		for _, p := range n.Props {
			Inspect(p, f)
		}
	case *Property:
		if n.Kind != PropShorthand {
			Inspect(n.Key, f)
		}
		Inspect(n.Value, f)
	case *FuncExpr:
		Inspect(n.Func, f)
	case *ClassExpr:
		Inspect(n.Class, f)
	case *UnaryExpr:
		Inspect(n.X, f)
	case *UpdateExpr:
		Inspect(n.X, f)
	case *BinaryExpr:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *AssignExpr:
		Inspect(n.Target, f)
		Inspect(n.Value, f)
	case *CondExpr:
		Inspect(n.Test, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case *CallExpr:
		Inspect(n.Callee, f)
		exprs(n.Args, f)
	case *NewExpr:
		Inspect(n.Callee, f)
		exprs(n.Args, f)
	case *MemberExpr:
		Inspect(n.Object, f)
		Inspect(n.Property, f)
	case *SequenceExpr:
		exprs(n.List, f)
	case *SpreadExpr:
		Inspect(n.X, f)
	case *YieldExpr:
		Inspect(n.X, f)
	case *AwaitExpr:
		Inspect(n.X, f)
	case *ParenExpr:
		Inspect(n.X, f)

	case *Function:
		if n.Name != nil {
			Inspect(n.Name, f)
		}
		exprs(n.Params, f)
		if n.Body != nil {
			Inspect(n.Body, f)
		}
		Inspect(n.ExprBody, f)
	case *Class:
		if n.Name != nil {
			Inspect(n.Name, f)
		}
		Inspect(n.Super, f)
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *ClassMember:
		Inspect(n.Key, f)
		Inspect(n.Value, f)
		if n.Block != nil {
			Inspect(n.Block, f)
		}
	}
}
