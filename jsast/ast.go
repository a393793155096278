// Package jsast holds the syntax tree of the defer dialect. Every node
// records its byte range in the source, which is what the lowering edits.
package jsast

type Node interface {
	Span() (start, end int)
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Range struct {
	Start int
	End   int
}

func (r Range) Span() (int, int) {
	return r.Start, r.End
}

type Program struct {
	Range
	Body   []Stmt
	Module bool
	// every identifier spelled in the source
	Names map[string]struct{}
}

// statements

type BlockStmt struct {
	Range
	Body []Stmt
}

type EmptyStmt struct {
	Range
}

type ExprStmt struct {
	Range
	X Expr
}

type VarKind uint8

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

func (k VarKind) String() string {
	switch k {
	case VarLet:
		return "let"
	case VarConst:
		return "const"
	}
	return "var"
}

type VarDecl struct {
	Range
	Kind  VarKind
	Decls []*Declarator
}

type Declarator struct {
	Range
	Target Expr
	Init   Expr
}

type FuncDecl struct {
	Range
	Func *Function
}

type ClassDecl struct {
	Range
	Class *Class
}

type ReturnStmt struct {
	Range
	Result Expr
}

type IfStmt struct {
	Range
	Test Expr
	Then Stmt
	Else Stmt
}

type ForStmt struct {
	Range
	Init   Node // *VarDecl, Expr or nil
	Test   Expr
	Update Expr
	Body   Stmt
}

type ForInStmt struct {
	Range
	Left  Node // *VarDecl or Expr
	Right Expr
	Of    bool
	Await bool
	Body  Stmt
}

type WhileStmt struct {
	Range
	Test Expr
	Body Stmt
}

type DoWhileStmt struct {
	Range
	Body Stmt
	Test Expr
}

type BranchStmt struct {
	Range
	Keyword string // "break" or "continue"
	Label   *Ident
}

type ThrowStmt struct {
	Range
	X Expr
}

type TryStmt struct {
	Range
	Block     *BlockStmt
	Param     Expr
	Handler   *BlockStmt
	Finalizer *BlockStmt
}

type SwitchStmt struct {
	Range
	Disc  Expr
	Cases []*SwitchCase
}

type SwitchCase struct {
	Range
	Test Expr // nil for default
	Body []Stmt
}

type LabeledStmt struct {
	Range
	Label *Ident
	Body  Stmt
}

type DebuggerStmt struct {
	Range
}

type WithStmt struct {
	Range
	Object Expr
	Body   Stmt
}

type ImportDecl struct {
	Range
	From *Literal
}

type ExportDecl struct {
	Range
	Decl    Stmt // declaration form
	Default Expr // export default <expr>
	From    *Literal
}

type DeferKind uint8

const (
	// defer <statement>
	DeferSingle DeferKind = iota
	// defer { <statements> }
	DeferBlock
)

func (k DeferKind) String() string {
	if k == DeferBlock {
		return "block"
	}
	return "single"
}

// DeferStmt has no scope of its own: names in Body resolve in the
// enclosing function.
type DeferStmt struct {
	Range
	Kind    DeferKind
	Keyword Range
	Body    Stmt // *BlockStmt for DeferBlock
}

// expressions

type Ident struct {
	Range
	Name string
}

type PrivateName struct {
	Range
	Name string
}

type LitKind uint8

const (
	LitNumber LitKind = iota
	LitString
	LitRegExp
	LitNull
	LitBool
)

type Literal struct {
	Range
	Kind LitKind
	Raw  string
}

type TemplateLit struct {
	Range
	Tag    Expr
	Quasis []string
	Exprs  []Expr
}

type ArrayLit struct {
	Range
	Elems []Expr // nil for holes
}

type PropKind uint8

const (
	PropInit PropKind = iota
	PropShorthand
	PropMethod
	PropGet
	PropSet
	PropSpread
)

type Property struct {
	Range
	Kind     PropKind
	Key      Expr
	Computed bool
	Value    Expr
}

type ObjectLit struct {
	Range
	Props []*Property
}

// FuncExpr is a function expression, an arrow function, or the value of a
// method.
type FuncExpr struct {
	Range
	Func *Function
}

type ClassExpr struct {
	Range
	Class *Class
}

type UnaryExpr struct {
	Range
	Op string
	X  Expr
}

type UpdateExpr struct {
	Range
	Op     string
	Prefix bool
	X      Expr
}

type BinaryExpr struct {
	Range
	Op string
	X  Expr
	Y  Expr
}

type AssignExpr struct {
	Range
	Op     string
	Target Expr
	Value  Expr
}

type CondExpr struct {
	Range
	Test Expr
	Then Expr
	Else Expr
}

type CallExpr struct {
	Range
	Callee   Expr
	Args     []Expr
	Optional bool
}

type NewExpr struct {
	Range
	Callee Expr
	Args   []Expr
}

type MemberExpr struct {
	Range
	Object   Expr
	Property Expr
	Computed bool
	Optional bool
}

type SequenceExpr struct {
	Range
	List []Expr
}

type SpreadExpr struct {
	Range
	X Expr
}

type YieldExpr struct {
	Range
	X        Expr
	Delegate bool
}

type AwaitExpr struct {
	Range
	X Expr
}

type ThisExpr struct {
	Range
}

type SuperExpr struct {
	Range
}

type ParenExpr struct {
	Range
	X Expr // nil for the "()" of an arrow with no parameters
}

type MetaProperty struct {
	Range
	Meta     string
	Property string
}

// functions and classes

type FuncKind uint8

const (
	FuncDeclaration FuncKind = iota
	FuncExpression
	FuncArrow
	FuncMethod
	FuncGetter
	FuncSetter
	FuncConstructor
)

var funcKindNames = [...]string{
	FuncDeclaration: "declaration",
	FuncExpression:  "expression",
	FuncArrow:       "arrow",
	FuncMethod:      "method",
	FuncGetter:      "getter",
	FuncSetter:      "setter",
	FuncConstructor: "constructor",
}

func (k FuncKind) String() string {
	return funcKindNames[k]
}

type Function struct {
	Range
	Kind      FuncKind
	Name      *Ident // nil when anonymous
	Params    []Expr
	Body      *BlockStmt
	ExprBody  Expr // arrow functions with an expression body
	Async     bool
	Generator bool
}

type MemberKind uint8

const (
	MemberMethod MemberKind = iota
	MemberGetter
	MemberSetter
	MemberField
	MemberStaticBlock
)

type Class struct {
	Range
	Name    *Ident
	Super   Expr
	Members []*ClassMember
}

type ClassMember struct {
	Range
	Kind     MemberKind
	Static   bool
	Computed bool
	Key      Expr
	Value    Expr // *FuncExpr for methods, initializer for fields
	Block    *BlockStmt
}

func (*Program) stmtNode()      {}
func (*BlockStmt) stmtNode()    {}
func (*EmptyStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*VarDecl) stmtNode()      {}
func (*FuncDecl) stmtNode()     {}
func (*ClassDecl) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*IfStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()    {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*BranchStmt) stmtNode()   {}
func (*ThrowStmt) stmtNode()    {}
func (*TryStmt) stmtNode()      {}
func (*SwitchStmt) stmtNode()   {}
func (*LabeledStmt) stmtNode()  {}
func (*DebuggerStmt) stmtNode() {}
func (*WithStmt) stmtNode()     {}
func (*ImportDecl) stmtNode()   {}
func (*ExportDecl) stmtNode()   {}
func (*DeferStmt) stmtNode()    {}

func (*Ident) exprNode()        {}
func (*PrivateName) exprNode()  {}
func (*Literal) exprNode()      {}
func (*TemplateLit) exprNode()  {}
func (*ArrayLit) exprNode()     {}
func (*ObjectLit) exprNode()    {}
func (*FuncExpr) exprNode()     {}
func (*ClassExpr) exprNode()    {}
func (*UnaryExpr) exprNode()    {}
func (*UpdateExpr) exprNode()   {}
func (*BinaryExpr) exprNode()   {}
func (*AssignExpr) exprNode()   {}
func (*CondExpr) exprNode()     {}
func (*CallExpr) exprNode()     {}
func (*NewExpr) exprNode()      {}
func (*MemberExpr) exprNode()   {}
func (*SequenceExpr) exprNode() {}
func (*SpreadExpr) exprNode()   {}
func (*YieldExpr) exprNode()    {}
func (*AwaitExpr) exprNode()    {}
func (*ThisExpr) exprNode()     {}
func (*SuperExpr) exprNode()    {}
func (*ParenExpr) exprNode()    {}
func (*MetaProperty) exprNode() {}
