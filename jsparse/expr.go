package jsparse

import (
	"github.com/reusee/djs/jsast"
	"github.com/reusee/djs/jslex"
)

var assignOps = map[string]bool{
	"=":    true,
	"+=":   true,
	"-=":   true,
	"*=":   true,
	"/=":   true,
	"%=":   true,
	"**=":  true,
	"<<=":  true,
	">>=":  true,
	">>>=": true,
	"&=":   true,
	"|=":   true,
	"^=":   true,
	"&&=":  true,
	"||=":  true,
	"??=":  true,
}

var binaryPrecedence = map[string]int{
	"??":  1,
	"||":  2,
	"&&":  3,
	"|":   4,
	"^":   5,
	"&":   6,
	"==":  7,
	"!=":  7,
	"===": 7,
	"!==": 7,
	"<":   8,
	">":   8,
	"<=":  8,
	">=":  8,
	"<<":  9,
	">>":  9,
	">>>": 9,
	"+":   10,
	"-":   10,
	"*":   11,
	"/":   11,
	"%":   11,
	"**":  12,
}

func (p *parser) parseExpression(noIn bool) jsast.Expr {
	start := p.tok.Start
	x := p.parseAssign(noIn)
	if !p.is(",") {
		return x
	}
	seq := &jsast.SequenceExpr{
		List: []jsast.Expr{x},
	}
	for p.eat(",") {
		seq.List = append(seq.List, p.parseAssign(noIn))
	}
	seq.Range = p.rangeFrom(start)
	return seq
}

func (p *parser) parseAssign(noIn bool) jsast.Expr {
	if p.isWord("yield") && p.frame.generator {
		return p.parseYield(noIn)
	}

	start := p.tok.Start
	if p.isWord("async") {
		if next := p.peek(); next.Kind == jslex.KindIdentifier && !next.NewlineBefore {
			p.next()
			param := p.bindingIdent()
			if !p.is("=>") {
				p.unexpected()
			}
			return p.parseArrowBody(start, []jsast.Expr{param}, true, noIn)
		}
	}

	left := p.parseConditional(noIn)

	if p.is("=>") {
		if p.tok.NewlineBefore {
			p.unexpected()
		}
		params, async := p.arrowParams(left)
		return p.parseArrowBody(start, params, async, noIn)
	}

	if p.tok.Kind == jslex.KindPunct && assignOps[p.tok.Text] {
		op := p.tok.Text
		p.checkAssignTarget(left, op)
		p.next()
		value := p.parseAssign(noIn)
		return &jsast.AssignExpr{
			Range:  p.rangeFrom(start),
			Op:     op,
			Target: left,
			Value:  value,
		}
	}

	return left
}

func (p *parser) parseYield(noIn bool) jsast.Expr {
	tok := p.tok
	if p.frame.inDefer {
		p.errorf(tok.Start, "yield inside defer body")
	}
	p.next()
	expr := new(jsast.YieldExpr)
	if !p.tok.NewlineBefore {
		if p.eat("*") {
			expr.Delegate = true
			expr.X = p.parseAssign(noIn)
		} else if p.startsOperand() {
			expr.X = p.parseAssign(noIn)
		}
	}
	expr.Range = p.rangeFrom(tok.Start)
	return expr
}

// startsOperand reports whether the current token can begin an
// expression after a yield.
func (p *parser) startsOperand() bool {
	switch {
	case p.tok.Kind == jslex.KindEOF:
		return false
	case p.is(")"), p.is("]"), p.is("}"), p.is(","), p.is(";"), p.is(":"), p.is("in"):
		return false
	case p.isWord("of"):
		return false
	}
	return true
}

func (p *parser) parseConditional(noIn bool) jsast.Expr {
	start := p.tok.Start
	test := p.parseBinary(0, noIn)
	if !p.is("?") {
		return test
	}
	p.next()
	then := p.parseAssign(false)
	p.expect(":")
	els := p.parseAssign(noIn)
	return &jsast.CondExpr{
		Range: p.rangeFrom(start),
		Test:  test,
		Then:  then,
		Else:  els,
	}
}

func (p *parser) binaryPrec(noIn bool) int {
	switch p.tok.Kind {
	case jslex.KindKeyword:
		switch p.tok.Text {
		case "instanceof":
			return 8
		case "in":
			if noIn {
				return 0
			}
			return 8
		}
	case jslex.KindPunct:
		return binaryPrecedence[p.tok.Text]
	}
	return 0
}

func (p *parser) parseBinary(minPrec int, noIn bool) jsast.Expr {
	start := p.tok.Start
	var left jsast.Expr
	if p.tok.Kind == jslex.KindPrivateName && p.peek().Is("in") {
		left = &jsast.PrivateName{
			Range: jsast.Range{
				Start: p.tok.Start,
				End:   p.tok.End,
			},
			Name: p.tok.Text,
		}
		p.next()
	} else {
		left = p.parseUnary()
	}

	for {
		prec := p.binaryPrec(noIn)
		if prec == 0 || prec <= minPrec {
			return left
		}
		op := p.tok.Text
		p.next()
		var right jsast.Expr
		if op == "**" {
			// right associative
			right = p.parseBinary(prec-1, noIn)
		} else {
			right = p.parseBinary(prec, noIn)
		}
		left = &jsast.BinaryExpr{
			Range: p.rangeFrom(start),
			Op:    op,
			X:     left,
			Y:     right,
		}
	}
}

func (p *parser) awaitAllowed() bool {
	return p.frame.async || !p.frame.inFunction && !p.frame.classBody && p.module
}

func (p *parser) parseUnary() jsast.Expr {
	tok := p.tok
	switch {

	case tok.Kind == jslex.KindPunct && (tok.Text == "!" || tok.Text == "~" || tok.Text == "+" || tok.Text == "-"),
		tok.Kind == jslex.KindKeyword && (tok.Text == "delete" || tok.Text == "void" || tok.Text == "typeof"):
		p.next()
		x := p.parseUnary()
		return &jsast.UnaryExpr{
			Range: p.rangeFrom(tok.Start),
			Op:    tok.Text,
			X:     x,
		}

	case tok.Is("++"), tok.Is("--"):
		p.next()
		x := p.parseUnary()
		p.checkSimpleTarget(x)
		return &jsast.UpdateExpr{
			Range:  p.rangeFrom(tok.Start),
			Op:     tok.Text,
			Prefix: true,
			X:      x,
		}

	case p.isWord("await") && p.awaitAllowed():
		p.next()
		x := p.parseUnary()
		return &jsast.AwaitExpr{
			Range: p.rangeFrom(tok.Start),
			X:     x,
		}
	}

	x := p.parseLeftHandSide()
	if (p.is("++") || p.is("--")) && !p.tok.NewlineBefore {
		p.checkSimpleTarget(x)
		op := p.tok.Text
		p.next()
		return &jsast.UpdateExpr{
			Range: p.rangeFrom(tok.Start),
			Op:    op,
			X:     x,
		}
	}
	return x
}

func (p *parser) parseLeftHandSide() jsast.Expr {
	start := p.tok.Start
	return p.parseSuffixes(start, p.parsePrimary(), true)
}

func (p *parser) parseSuffixes(start int, x jsast.Expr, allowCall bool) jsast.Expr {
	for {
		switch {

		case p.is("."):
			p.next()
			x = &jsast.MemberExpr{
				Object:   x,
				Property: p.parseDotName(),
			}

		case p.is("?."):
			if !allowCall {
				p.unexpected()
			}
			p.next()
			switch {
			case p.is("("):
				x = &jsast.CallExpr{
					Callee:   x,
					Args:     p.parseArguments(),
					Optional: true,
				}
			case p.eat("["):
				prop := p.parseExpression(false)
				p.expect("]")
				x = &jsast.MemberExpr{
					Object:   x,
					Property: prop,
					Computed: true,
					Optional: true,
				}
			default:
				x = &jsast.MemberExpr{
					Object:   x,
					Property: p.parseDotName(),
					Optional: true,
				}
			}

		case p.is("["):
			p.next()
			prop := p.parseExpression(false)
			p.expect("]")
			x = &jsast.MemberExpr{
				Object:   x,
				Property: prop,
				Computed: true,
			}

		case p.is("(") && allowCall:
			x = &jsast.CallExpr{
				Callee: x,
				Args:   p.parseArguments(),
			}

		case p.tok.Kind == jslex.KindTemplate:
			x = p.parseTemplate(x, start)
			continue

		default:
			return x
		}

		setRange(x, start, p.prevEnd)
	}
}

func setRange(x jsast.Expr, start, end int) {
	r := jsast.Range{
		Start: start,
		End:   end,
	}
	switch x := x.(type) {
	case *jsast.MemberExpr:
		x.Range = r
	case *jsast.CallExpr:
		x.Range = r
	}
}

func (p *parser) parseDotName() jsast.Expr {
	tok := p.tok
	switch {
	case tok.IsName():
		p.next()
		return p.newIdent(tok)
	case tok.Kind == jslex.KindPrivateName:
		p.next()
		return &jsast.PrivateName{
			Range: jsast.Range{
				Start: tok.Start,
				End:   tok.End,
			},
			Name: tok.Text,
		}
	}
	p.unexpected()
	return nil
}

func (p *parser) parseArguments() []jsast.Expr {
	p.expect("(")
	var args []jsast.Expr
	for !p.eat(")") {
		if p.is("...") {
			start := p.tok.Start
			p.next()
			x := p.parseAssign(false)
			args = append(args, &jsast.SpreadExpr{
				Range: p.rangeFrom(start),
				X:     x,
			})
		} else {
			args = append(args, p.parseAssign(false))
		}
		if !p.is(")") {
			p.expect(",")
		}
	}
	return args
}

func (p *parser) parseNew() jsast.Expr {
	start := p.expect("new").Start
	if p.eat(".") {
		if !p.isWord("target") {
			p.unexpected()
		}
		p.next()
		return &jsast.MetaProperty{
			Range:    p.rangeFrom(start),
			Meta:     "new",
			Property: "target",
		}
	}
	calleeStart := p.tok.Start
	callee := p.parseSuffixes(calleeStart, p.parsePrimary(), false)
	expr := &jsast.NewExpr{
		Callee: callee,
	}
	if p.is("(") {
		expr.Args = p.parseArguments()
	}
	expr.Range = p.rangeFrom(start)
	return expr
}

func (p *parser) literal(tok jslex.Token, kind jsast.LitKind) *jsast.Literal {
	return &jsast.Literal{
		Range: jsast.Range{
			Start: tok.Start,
			End:   tok.End,
		},
		Kind: kind,
		Raw:  tok.Text,
	}
}

func (p *parser) parsePrimary() jsast.Expr {
	tok := p.tok
	switch tok.Kind {

	case jslex.KindIdentifier:
		if tok.Text == "async" {
			if next := p.peek(); next.Is("function") && !next.NewlineBefore {
				p.next()
				fn := p.parseFunction(tok.Start, jsast.FuncExpression, true, false)
				return &jsast.FuncExpr{
					Range: fn.Range,
					Func:  fn,
				}
			}
		}
		p.next()
		return p.newIdent(tok)

	case jslex.KindDefer:
		p.errorf(tok.Start, "defer outside statement position")

	case jslex.KindNumber:
		p.next()
		return p.literal(tok, jsast.LitNumber)

	case jslex.KindString:
		p.next()
		return p.literal(tok, jsast.LitString)

	case jslex.KindTemplate:
		return p.parseTemplate(nil, tok.Start)

	case jslex.KindKeyword:
		switch tok.Text {
		case "this":
			p.next()
			return &jsast.ThisExpr{
				Range: p.rangeFrom(tok.Start),
			}
		case "null":
			p.next()
			return p.literal(tok, jsast.LitNull)
		case "true", "false":
			p.next()
			return p.literal(tok, jsast.LitBool)
		case "function":
			fn := p.parseFunction(tok.Start, jsast.FuncExpression, false, false)
			return &jsast.FuncExpr{
				Range: fn.Range,
				Func:  fn,
			}
		case "class":
			class := p.parseClass(false)
			return &jsast.ClassExpr{
				Range: class.Range,
				Class: class,
			}
		case "new":
			return p.parseNew()
		case "super":
			p.next()
			if !p.is("(") && !p.is(".") && !p.is("[") {
				p.errorf(tok.Start, "unexpected keyword super")
			}
			return &jsast.SuperExpr{
				Range: p.rangeFrom(tok.Start),
			}
		case "import":
			p.next()
			if p.eat(".") {
				if !p.isWord("meta") {
					p.unexpected()
				}
				p.next()
				return &jsast.MetaProperty{
					Range:    p.rangeFrom(tok.Start),
					Meta:     "import",
					Property: "meta",
				}
			}
			if !p.is("(") {
				p.unexpected()
			}
			// dynamic import, a call with a keyword callee
			return &jsast.Ident{
				Range: p.rangeFrom(tok.Start),
				Name:  "import",
			}
		}

	case jslex.KindPunct:
		switch tok.Text {
		case "(":
			return p.parseParen()
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		case "/", "/=":
			re, err := p.lexer.ReadRegExp(tok.Start)
			if err != nil {
				panic(bailout{err: err})
			}
			p.tok = re
			p.next()
			return p.literal(re, jsast.LitRegExp)
		}
	}

	p.unexpected()
	return nil
}

func (p *parser) parseTemplate(tag jsast.Expr, start int) *jsast.TemplateLit {
	lit := &jsast.TemplateLit{
		Tag: tag,
	}
	for {
		tok := p.tok
		lit.Quasis = append(lit.Quasis, tok.Text)
		p.next()
		if tok.TemplateTail {
			break
		}
		lit.Exprs = append(lit.Exprs, p.parseExpression(false))
		if !p.is("}") {
			p.unexpected()
		}
		cont, err := p.lexer.ReadTemplateContinuation(p.tok.Start)
		if err != nil {
			panic(bailout{err: err})
		}
		p.tok = cont
	}
	lit.Range = p.rangeFrom(start)
	return lit
}

func (p *parser) parseParen() jsast.Expr {
	start := p.expect("(").Start
	if p.eat(")") {
		if !p.is("=>") {
			p.unexpected()
		}
		return &jsast.ParenExpr{
			Range: p.rangeFrom(start),
		}
	}

	var list []jsast.Expr
	innerStart := p.tok.Start
	arrowOnly := false
	for {
		if p.is("...") {
			restStart := p.tok.Start
			p.next()
			target := p.parseBindingTarget()
			list = append(list, &jsast.SpreadExpr{
				Range: p.rangeFrom(restStart),
				X:     target,
			})
			arrowOnly = true
			break
		}
		list = append(list, p.parseAssign(false))
		if !p.eat(",") {
			break
		}
		if p.is(")") {
			// trailing comma
			arrowOnly = true
			break
		}
	}
	innerEnd := p.prevEnd
	p.expect(")")
	if arrowOnly && !p.is("=>") {
		p.unexpected()
	}

	x := list[0]
	if len(list) > 1 {
		x = &jsast.SequenceExpr{
			Range: jsast.Range{
				Start: innerStart,
				End:   innerEnd,
			},
			List: list,
		}
	}
	return &jsast.ParenExpr{
		Range: p.rangeFrom(start),
		X:     x,
	}
}

func (p *parser) parseArrayLiteral() *jsast.ArrayLit {
	start := p.expect("[").Start
	arr := new(jsast.ArrayLit)
	for !p.eat("]") {
		if p.eat(",") {
			arr.Elems = append(arr.Elems, nil)
			continue
		}
		if p.is("...") {
			spreadStart := p.tok.Start
			p.next()
			x := p.parseAssign(false)
			arr.Elems = append(arr.Elems, &jsast.SpreadExpr{
				Range: p.rangeFrom(spreadStart),
				X:     x,
			})
		} else {
			arr.Elems = append(arr.Elems, p.parseAssign(false))
		}
		if !p.is("]") {
			p.expect(",")
		}
	}
	arr.Range = p.rangeFrom(start)
	return arr
}

func (p *parser) parseObjectLiteral() *jsast.ObjectLit {
	start := p.expect("{").Start
	obj := new(jsast.ObjectLit)
	for !p.eat("}") {
		obj.Props = append(obj.Props, p.parseProperty())
		if !p.is("}") {
			p.expect(",")
		}
	}
	obj.Range = p.rangeFrom(start)
	return obj
}

// modifierAhead reports whether a get, set, async or static word at the
// current token modifies the member that follows instead of naming it.
func (p *parser) modifierAhead() bool {
	next := p.peek()
	switch {
	case next.Kind == jslex.KindEOF, next.Kind == jslex.KindInvalid:
		return false
	case next.Is(","), next.Is(":"), next.Is("("), next.Is("}"), next.Is("="), next.Is(";"):
		return false
	case p.isWord("async") && next.NewlineBefore:
		return false
	}
	return true
}

func (p *parser) parseProperty() *jsast.Property {
	start := p.tok.Start
	prop := new(jsast.Property)

	if p.eat("...") {
		prop.Kind = jsast.PropSpread
		prop.Value = p.parseAssign(false)
		prop.Range = p.rangeFrom(start)
		return prop
	}

	kind := jsast.PropInit
	async := false
	if (p.isWord("get") || p.isWord("set") || p.isWord("async")) && p.modifierAhead() {
		switch p.tok.Text {
		case "get":
			kind = jsast.PropGet
		case "set":
			kind = jsast.PropSet
		default:
			async = true
		}
		p.next()
	}
	generator := p.eat("*")

	keyTok := p.tok
	prop.Key, prop.Computed = p.parsePropertyKey(false)

	switch {

	case kind != jsast.PropInit || async || generator || p.is("("):
		fnKind := jsast.FuncMethod
		switch kind {
		case jsast.PropGet:
			fnKind = jsast.FuncGetter
		case jsast.PropSet:
			fnKind = jsast.FuncSetter
		default:
			kind = jsast.PropMethod
		}
		fn := p.parseMethod(keyTok.Start, fnKind, async, generator)
		prop.Kind = kind
		prop.Value = &jsast.FuncExpr{
			Range: fn.Range,
			Func:  fn,
		}

	case p.eat(":"):
		prop.Kind = jsast.PropInit
		prop.Value = p.parseAssign(false)

	default:
		p.checkShorthand(keyTok)
		ident := prop.Key.(*jsast.Ident)
		prop.Kind = jsast.PropShorthand
		prop.Value = ident
		if p.eat("=") {
			// only valid when the literal turns out to be a pattern
			value := p.parseAssign(false)
			prop.Value = &jsast.AssignExpr{
				Range:  p.rangeFrom(ident.Start),
				Op:     "=",
				Target: ident,
				Value:  value,
			}
		}
	}

	prop.Range = p.rangeFrom(start)
	return prop
}

func (p *parser) checkShorthand(keyTok jslex.Token) {
	switch keyTok.Kind {
	case jslex.KindIdentifier:
	case jslex.KindDefer:
		p.errorf(keyTok.Start, "unexpected reserved word defer")
	default:
		p.errorf(keyTok.Start, "unexpected token %s", keyTok)
	}
}

func (p *parser) parsePropertyKey(allowPrivate bool) (jsast.Expr, bool) {
	tok := p.tok
	switch {
	case tok.IsName():
		p.next()
		return p.newIdent(tok), false
	case tok.Kind == jslex.KindString:
		p.next()
		return p.literal(tok, jsast.LitString), false
	case tok.Kind == jslex.KindNumber:
		p.next()
		return p.literal(tok, jsast.LitNumber), false
	case tok.Kind == jslex.KindPrivateName && allowPrivate:
		p.next()
		return &jsast.PrivateName{
			Range: jsast.Range{
				Start: tok.Start,
				End:   tok.End,
			},
			Name: tok.Text,
		}, false
	case tok.Is("["):
		p.next()
		key := p.parseAssign(false)
		p.expect("]")
		return key, true
	}
	p.unexpected()
	return nil, false
}

func (p *parser) arrowParams(left jsast.Expr) (params []jsast.Expr, async bool) {
	switch x := left.(type) {
	case *jsast.Ident:
		params = []jsast.Expr{x}
	case *jsast.ParenExpr:
		switch inner := x.X.(type) {
		case nil:
		case *jsast.SequenceExpr:
			params = inner.List
		default:
			params = []jsast.Expr{inner}
		}
	case *jsast.CallExpr:
		callee, ok := x.Callee.(*jsast.Ident)
		if !ok || callee.Name != "async" || x.Optional {
			p.errorf(x.Start, "invalid arrow function parameters")
		}
		params = x.Args
		async = true
	default:
		start, _ := left.Span()
		p.errorf(start, "invalid arrow function parameters")
	}
	for i, param := range params {
		p.checkParam(param, i == len(params)-1)
	}
	return
}

func (p *parser) checkParam(param jsast.Expr, last bool) {
	switch x := param.(type) {
	case *jsast.SpreadExpr:
		if !last {
			p.errorf(x.Start, "rest parameter must be last formal parameter")
		}
		p.checkPattern(x.X, false)
	case *jsast.AssignExpr:
		if x.Op != "=" {
			p.errorf(x.Start, "invalid arrow function parameters")
		}
		p.checkPattern(x.Target, false)
	default:
		p.checkPattern(param, false)
	}
}

// checkPattern validates an expression reinterpreted as a destructuring
// target. Member expressions are valid targets of assignment but not of
// parameters.
func (p *parser) checkPattern(x jsast.Expr, allowMember bool) {
	switch x := x.(type) {
	case *jsast.Ident:
		return
	case *jsast.MemberExpr:
		if allowMember && !x.Optional {
			return
		}
	case *jsast.ParenExpr:
		if allowMember && x.X != nil {
			switch x.X.(type) {
			case *jsast.Ident, *jsast.MemberExpr:
				return
			}
		}
	case *jsast.ArrayLit:
		for i, elem := range x.Elems {
			switch elem := elem.(type) {
			case nil:
			case *jsast.SpreadExpr:
				if i != len(x.Elems)-1 {
					p.errorf(elem.Start, "rest element must be last element")
				}
				p.checkPattern(elem.X, allowMember)
			default:
				p.checkPatternDefault(elem, allowMember)
			}
		}
		return
	case *jsast.ObjectLit:
		for i, prop := range x.Props {
			switch prop.Kind {
			case jsast.PropSpread:
				if i != len(x.Props)-1 {
					p.errorf(prop.Start, "rest element must be last element")
				}
				p.checkPattern(prop.Value, allowMember)
			case jsast.PropShorthand:
			case jsast.PropInit:
				p.checkPatternDefault(prop.Value, allowMember)
			default:
				p.errorf(prop.Start, "invalid destructuring target")
			}
		}
		return
	}
	start, _ := x.Span()
	p.errorf(start, "invalid destructuring target")
}

func (p *parser) checkPatternDefault(x jsast.Expr, allowMember bool) {
	if assign, ok := x.(*jsast.AssignExpr); ok && assign.Op == "=" {
		p.checkPattern(assign.Target, allowMember)
		return
	}
	p.checkPattern(x, allowMember)
}

func (p *parser) checkAssignTarget(x jsast.Expr, op string) {
	if op == "=" {
		p.checkPattern(x, true)
		return
	}
	p.checkSimpleTarget(x)
}

func (p *parser) checkSimpleTarget(x jsast.Expr) {
	switch x := x.(type) {
	case *jsast.Ident:
		return
	case *jsast.MemberExpr:
		if !x.Optional {
			return
		}
	case *jsast.ParenExpr:
		if x.X != nil {
			p.checkSimpleTarget(x.X)
			return
		}
	}
	start, _ := x.Span()
	p.errorf(start, "invalid assignment target")
}

func (p *parser) parseArrowBody(start int, params []jsast.Expr, async bool, noIn bool) *jsast.FuncExpr {
	p.expect("=>")
	fn := &jsast.Function{
		Kind:   jsast.FuncArrow,
		Params: params,
		Async:  async,
	}
	saved := p.enterFunction(async, false)
	if p.is("{") {
		fn.Body = p.parseBlock()
	} else {
		fn.ExprBody = p.parseAssign(noIn)
	}
	p.frame = saved
	fn.Range = p.rangeFrom(start)
	return &jsast.FuncExpr{
		Range: fn.Range,
		Func:  fn,
	}
}
