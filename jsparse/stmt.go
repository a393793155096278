package jsparse

import (
	"github.com/reusee/djs/jsast"
	"github.com/reusee/djs/jslex"
)

func (p *parser) parseStatement() jsast.Stmt {
	tok := p.tok
	switch tok.Kind {

	case jslex.KindDefer:
		return p.parseDefer()

	case jslex.KindPunct:
		switch tok.Text {
		case "{":
			return p.parseBlock()
		case ";":
			p.next()
			return &jsast.EmptyStmt{
				Range: p.rangeFrom(tok.Start),
			}
		}

	case jslex.KindKeyword:
		switch tok.Text {
		case "var", "const":
			return p.parseVarStatement()
		case "function":
			return p.parseFuncDecl(tok.Start, false)
		case "class":
			return p.parseClassDecl()
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "return":
			return p.parseReturn()
		case "break", "continue":
			return p.parseBranch()
		case "throw":
			return p.parseThrow()
		case "try":
			return p.parseTry()
		case "switch":
			return p.parseSwitch()
		case "with":
			return p.parseWith()
		case "debugger":
			p.next()
			p.semicolon()
			return &jsast.DebuggerStmt{
				Range: p.rangeFrom(tok.Start),
			}
		case "import":
			if next := p.peek(); !next.Is("(") && !next.Is(".") {
				return p.parseImport()
			}
		case "export":
			return p.parseExport()
		}

	case jslex.KindIdentifier:
		switch {
		case tok.Text == "let" && p.letDeclaration():
			return p.parseVarStatement()
		case tok.Text == "async":
			if next := p.peek(); next.Is("function") && !next.NewlineBefore {
				p.next()
				return p.parseFuncDecl(tok.Start, true)
			}
		}
		if p.peek().Is(":") {
			return p.parseLabeled()
		}
	}

	return p.parseExprStatement()
}

// letDeclaration reports whether the current "let" starts a declaration
// rather than an expression using let as an identifier.
func (p *parser) letDeclaration() bool {
	next := p.peek()
	return next.Kind == jslex.KindIdentifier ||
		next.Kind == jslex.KindDefer ||
		next.Is("[") ||
		next.Is("{")
}

func (p *parser) parseExprStatement() *jsast.ExprStmt {
	start := p.tok.Start
	x := p.parseExpression(false)
	p.semicolon()
	return &jsast.ExprStmt{
		Range: p.rangeFrom(start),
		X:     x,
	}
}

func (p *parser) parseBlock() *jsast.BlockStmt {
	return p.parseBlockUntil("unexpected end of input")
}

func (p *parser) parseBlockUntil(eofMsg string) *jsast.BlockStmt {
	start := p.expect("{").Start
	block := new(jsast.BlockStmt)
	for !p.is("}") {
		if p.tok.Kind == jslex.KindEOF {
			p.errorf(p.tok.Start, "%s", eofMsg)
		}
		block.Body = append(block.Body, p.parseStatement())
	}
	p.next()
	block.Range = p.rangeFrom(start)
	return block
}

func (p *parser) parseDefer() jsast.Stmt {
	keyword := p.tok
	if p.peek().Is(":") {
		p.errorf(keyword.Start, "unexpected reserved word defer")
	}
	if !p.frame.inFunction {
		p.errorf(keyword.Start, "defer outside function body")
	}
	p.next()

	saved := p.enterDefer()
	defer func() {
		p.frame = saved
	}()

	stmt := &jsast.DeferStmt{
		Keyword: jsast.Range{
			Start: keyword.Start,
			End:   keyword.End,
		},
	}

	if p.is("{") {
		stmt.Kind = jsast.DeferBlock
		stmt.Body = p.parseBlockUntil("unterminated defer block")
		stmt.Range = p.rangeFrom(keyword.Start)
		return stmt
	}

	if p.is(";") || p.is("}") || p.tok.Kind == jslex.KindEOF {
		p.errorf(p.tok.Start, "missing statement after defer")
	}
	if p.lexicalDeclaration() {
		p.errorf(p.tok.Start, "lexical declaration cannot be deferred")
	}
	stmt.Kind = jsast.DeferSingle
	stmt.Body = p.parseStatement()
	stmt.Range = p.rangeFrom(keyword.Start)
	return stmt
}

func (p *parser) lexicalDeclaration() bool {
	switch {
	case p.is("const"), p.is("class"), p.is("function"):
		return true
	case p.isWord("let"):
		return p.letDeclaration()
	case p.isWord("async"):
		next := p.peek()
		return next.Is("function") && !next.NewlineBefore
	}
	return false
}

func (p *parser) parseVarStatement() *jsast.VarDecl {
	decl := p.parseVarDecl(false)
	p.semicolon()
	decl.Range = p.rangeFrom(decl.Start)
	return decl
}

func (p *parser) parseVarDecl(noIn bool) *jsast.VarDecl {
	start := p.tok.Start
	decl := new(jsast.VarDecl)
	switch p.tok.Text {
	case "let":
		decl.Kind = jsast.VarLet
	case "const":
		decl.Kind = jsast.VarConst
	default:
		decl.Kind = jsast.VarVar
		if p.frame.inDefer {
			p.errorf(start, "var declaration inside defer body")
		}
	}
	p.next()
	for {
		d := &jsast.Declarator{}
		dStart := p.tok.Start
		d.Target = p.parseBindingTarget()
		if p.eat("=") {
			d.Init = p.parseAssign(noIn)
		}
		d.Range = p.rangeFrom(dStart)
		decl.Decls = append(decl.Decls, d)
		if !p.eat(",") {
			break
		}
	}
	decl.Range = p.rangeFrom(start)
	return decl
}

func (p *parser) parseIf() *jsast.IfStmt {
	start := p.expect("if").Start
	p.expect("(")
	stmt := &jsast.IfStmt{
		Test: p.parseExpression(false),
	}
	p.expect(")")
	stmt.Then = p.parseStatement()
	if p.eat("else") {
		stmt.Else = p.parseStatement()
	}
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseLoopBody() jsast.Stmt {
	p.frame.loops++
	p.frame.breakable++
	body := p.parseStatement()
	p.frame.loops--
	p.frame.breakable--
	return body
}

func (p *parser) parseFor() jsast.Stmt {
	start := p.expect("for").Start
	await := false
	if p.isWord("await") && (p.frame.async || !p.frame.inFunction && p.module) {
		await = true
		p.next()
	}
	p.expect("(")

	var init jsast.Node
	switch {
	case p.is(";"):
	case p.is("var"), p.is("const"), p.isWord("let") && p.letDeclaration():
		init = p.parseVarDecl(true)
	default:
		init = p.parseExpression(true)
	}

	if init != nil && (p.is("in") || p.isWord("of")) {
		of := p.isWord("of")
		p.next()
		stmt := &jsast.ForInStmt{
			Left:  init,
			Of:    of,
			Await: await,
		}
		if of {
			stmt.Right = p.parseAssign(false)
		} else {
			stmt.Right = p.parseExpression(false)
		}
		p.expect(")")
		stmt.Body = p.parseLoopBody()
		stmt.Range = p.rangeFrom(start)
		return stmt
	}

	stmt := &jsast.ForStmt{
		Init: init,
	}
	p.expect(";")
	if !p.is(";") {
		stmt.Test = p.parseExpression(false)
	}
	p.expect(";")
	if !p.is(")") {
		stmt.Update = p.parseExpression(false)
	}
	p.expect(")")
	stmt.Body = p.parseLoopBody()
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseWhile() *jsast.WhileStmt {
	start := p.expect("while").Start
	p.expect("(")
	stmt := &jsast.WhileStmt{
		Test: p.parseExpression(false),
	}
	p.expect(")")
	stmt.Body = p.parseLoopBody()
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseDoWhile() *jsast.DoWhileStmt {
	start := p.expect("do").Start
	stmt := &jsast.DoWhileStmt{
		Body: p.parseLoopBody(),
	}
	p.expect("while")
	p.expect("(")
	stmt.Test = p.parseExpression(false)
	p.expect(")")
	// the semicolon after do-while is always optional
	p.eat(";")
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) endOfRestricted() bool {
	return p.is(";") || p.is("}") || p.tok.Kind == jslex.KindEOF || p.tok.NewlineBefore
}

func (p *parser) parseReturn() *jsast.ReturnStmt {
	tok := p.expect("return")
	if !p.frame.inFunction {
		p.errorf(tok.Start, "illegal return statement")
	}
	stmt := new(jsast.ReturnStmt)
	if !p.endOfRestricted() {
		stmt.Result = p.parseExpression(false)
	}
	p.semicolon()
	stmt.Range = p.rangeFrom(tok.Start)
	return stmt
}

func (p *parser) parseBranch() *jsast.BranchStmt {
	tok := p.tok
	p.next()
	stmt := &jsast.BranchStmt{
		Keyword: tok.Text,
	}
	isContinue := tok.Text == "continue"

	if p.tok.Kind == jslex.KindIdentifier && !p.tok.NewlineBefore {
		stmt.Label = p.newIdent(p.tok)
		p.next()
		name := stmt.Label.Name
		if !hasLabel(p.frame.labels, name, isContinue) {
			if p.frame.inDefer && hasLabel(p.frame.outerLabels, name, isContinue) {
				p.errorf(tok.Start, "%s cannot jump out of defer body", tok.Text)
			}
			if isContinue && hasLabel(p.frame.labels, name, false) {
				p.errorf(stmt.Label.Start, "illegal continue statement: %q does not denote a loop", name)
			}
			p.errorf(stmt.Label.Start, "undefined label %q", name)
		}
	} else {
		ok := p.frame.breakable > 0
		outer := p.frame.outerBreakable
		if isContinue {
			ok = p.frame.loops > 0
			outer = p.frame.outerLoops
		}
		if !ok {
			if p.frame.inDefer && outer {
				p.errorf(tok.Start, "%s cannot jump out of defer body", tok.Text)
			}
			p.errorf(tok.Start, "illegal %s statement", tok.Text)
		}
	}

	p.semicolon()
	stmt.Range = p.rangeFrom(tok.Start)
	return stmt
}

func hasLabel(labels []label, name string, loopOnly bool) bool {
	for _, l := range labels {
		if l.name == name && (l.loop || !loopOnly) {
			return true
		}
	}
	return false
}

func (p *parser) parseThrow() *jsast.ThrowStmt {
	start := p.expect("throw").Start
	if p.tok.NewlineBefore {
		p.errorf(p.tok.Start, "illegal newline after throw")
	}
	stmt := &jsast.ThrowStmt{
		X: p.parseExpression(false),
	}
	p.semicolon()
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseTry() *jsast.TryStmt {
	start := p.expect("try").Start
	stmt := &jsast.TryStmt{
		Block: p.parseBlock(),
	}
	if p.eat("catch") {
		if p.eat("(") {
			stmt.Param = p.parseBindingTarget()
			p.expect(")")
		}
		stmt.Handler = p.parseBlock()
	}
	if p.eat("finally") {
		stmt.Finalizer = p.parseBlock()
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		p.errorf(p.tok.Start, "missing catch or finally after try")
	}
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseSwitch() *jsast.SwitchStmt {
	start := p.expect("switch").Start
	p.expect("(")
	stmt := &jsast.SwitchStmt{
		Disc: p.parseExpression(false),
	}
	p.expect(")")
	p.expect("{")
	p.frame.breakable++
	hasDefault := false
	for !p.eat("}") {
		c := &jsast.SwitchCase{}
		caseStart := p.tok.Start
		switch {
		case p.eat("case"):
			c.Test = p.parseExpression(false)
		case p.is("default"):
			if hasDefault {
				p.errorf(p.tok.Start, "more than one default clause in switch statement")
			}
			hasDefault = true
			p.next()
		default:
			p.unexpected()
		}
		p.expect(":")
		for !p.is("case") && !p.is("default") && !p.is("}") {
			if p.tok.Kind == jslex.KindEOF {
				p.unexpected()
			}
			c.Body = append(c.Body, p.parseStatement())
		}
		c.Range = p.rangeFrom(caseStart)
		stmt.Cases = append(stmt.Cases, c)
	}
	p.frame.breakable--
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseWith() *jsast.WithStmt {
	start := p.expect("with").Start
	p.expect("(")
	stmt := &jsast.WithStmt{
		Object: p.parseExpression(false),
	}
	p.expect(")")
	stmt.Body = p.parseStatement()
	stmt.Range = p.rangeFrom(start)
	return stmt
}

func (p *parser) parseLabeled() *jsast.LabeledStmt {
	start := p.tok.Start
	ident := p.bindingIdent()
	for _, l := range p.frame.labels {
		if l.name == ident.Name {
			p.errorf(ident.Start, "label %q has already been declared", ident.Name)
		}
	}
	p.expect(":")
	loop := p.is("for") || p.is("while") || p.is("do")
	p.frame.labels = append(p.frame.labels, label{
		name: ident.Name,
		loop: loop,
	})
	body := p.parseStatement()
	p.frame.labels = p.frame.labels[:len(p.frame.labels)-1]
	return &jsast.LabeledStmt{
		Range: p.rangeFrom(start),
		Label: ident,
		Body:  body,
	}
}

func (p *parser) parseFuncDecl(start int, async bool) *jsast.FuncDecl {
	fn := p.parseFunction(start, jsast.FuncDeclaration, async, true)
	return &jsast.FuncDecl{
		Range: fn.Range,
		Func:  fn,
	}
}

func (p *parser) parseClassDecl() *jsast.ClassDecl {
	class := p.parseClass(true)
	return &jsast.ClassDecl{
		Range: class.Range,
		Class: class,
	}
}

func (p *parser) moduleItem(start int) {
	if p.frame.inFunction || p.frame.classBody {
		p.errorf(start, "import and export may only appear at the top level")
	}
	p.module = true
}

func (p *parser) parseModuleSpecifier() *jsast.Literal {
	if p.tok.Kind != jslex.KindString {
		p.unexpected()
	}
	lit := &jsast.Literal{
		Range: jsast.Range{
			Start: p.tok.Start,
			End:   p.tok.End,
		},
		Kind: jsast.LitString,
		Raw:  p.tok.Text,
	}
	p.next()
	// import attributes
	if p.is("with") && !p.tok.NewlineBefore {
		p.next()
		p.parseObjectLiteral()
	}
	return lit
}

// parseSpecifiers parses "{ a, b as c }" lists of import and export.
func (p *parser) parseSpecifiers(binding bool) {
	p.expect("{")
	for !p.eat("}") {
		if !p.tok.IsName() && p.tok.Kind != jslex.KindString {
			p.unexpected()
		}
		local := p.tok
		p.next()
		if p.isWord("as") {
			p.next()
			if binding {
				p.bindingIdent()
			} else {
				if !p.tok.IsName() && p.tok.Kind != jslex.KindString {
					p.unexpected()
				}
				p.next()
			}
		} else if binding {
			switch local.Kind {
			case jslex.KindIdentifier:
			case jslex.KindDefer:
				p.errorf(local.Start, "unexpected reserved word defer")
			default:
				p.errorf(local.Start, "unexpected token %s", local)
			}
			p.newIdent(local)
		}
		if local.Kind == jslex.KindIdentifier {
			p.record(identName(local.Text))
		}
		if !p.is("}") {
			p.expect(",")
		}
	}
}

func (p *parser) parseImport() *jsast.ImportDecl {
	start := p.expect("import").Start
	p.moduleItem(start)
	decl := new(jsast.ImportDecl)

	if p.tok.Kind != jslex.KindString {
		if p.tok.Kind == jslex.KindIdentifier {
			p.bindingIdent()
			p.eat(",")
		}
		switch {
		case p.eat("*"):
			if !p.isWord("as") {
				p.unexpected()
			}
			p.next()
			p.bindingIdent()
		case p.is("{"):
			p.parseSpecifiers(true)
		}
		if !p.isWord("from") {
			p.unexpected()
		}
		p.next()
	}

	decl.From = p.parseModuleSpecifier()
	p.semicolon()
	decl.Range = p.rangeFrom(start)
	return decl
}

func (p *parser) parseExport() *jsast.ExportDecl {
	start := p.expect("export").Start
	p.moduleItem(start)
	decl := new(jsast.ExportDecl)

	switch {

	case p.eat("default"):
		switch {
		case p.is("function"):
			fn := p.parseFunction(p.tok.Start, jsast.FuncDeclaration, false, false)
			decl.Decl = &jsast.FuncDecl{Range: fn.Range, Func: fn}
		case p.isWord("async") && p.peek().Is("function") && !p.peek().NewlineBefore:
			fnStart := p.tok.Start
			p.next()
			fn := p.parseFunction(fnStart, jsast.FuncDeclaration, true, false)
			decl.Decl = &jsast.FuncDecl{Range: fn.Range, Func: fn}
		case p.is("class"):
			class := p.parseClass(false)
			decl.Decl = &jsast.ClassDecl{Range: class.Range, Class: class}
		default:
			decl.Default = p.parseAssign(false)
			p.semicolon()
		}

	case p.eat("*"):
		if p.isWord("as") {
			p.next()
			if !p.tok.IsName() && p.tok.Kind != jslex.KindString {
				p.unexpected()
			}
			p.next()
		}
		if !p.isWord("from") {
			p.unexpected()
		}
		p.next()
		decl.From = p.parseModuleSpecifier()
		p.semicolon()

	case p.is("{"):
		p.parseSpecifiers(false)
		if p.isWord("from") {
			p.next()
			decl.From = p.parseModuleSpecifier()
		}
		p.semicolon()

	case p.is("var"), p.is("const"), p.isWord("let"):
		decl.Decl = p.parseVarStatement()
	case p.is("function"):
		decl.Decl = p.parseFuncDecl(p.tok.Start, false)
	case p.isWord("async"):
		fnStart := p.tok.Start
		p.next()
		decl.Decl = p.parseFuncDecl(fnStart, true)
	case p.is("class"):
		decl.Decl = p.parseClassDecl()

	default:
		p.unexpected()
	}

	decl.Range = p.rangeFrom(start)
	return decl
}
