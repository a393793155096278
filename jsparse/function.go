package jsparse

import (
	"github.com/reusee/djs/jsast"
	"github.com/reusee/djs/jslex"
)

func (p *parser) parseFunction(start int, kind jsast.FuncKind, async bool, requireName bool) *jsast.Function {
	p.expect("function")
	fn := &jsast.Function{
		Kind:  kind,
		Async: async,
	}
	fn.Generator = p.eat("*")
	switch {
	case p.tok.Kind == jslex.KindIdentifier, p.tok.Kind == jslex.KindDefer:
		fn.Name = p.bindingIdent()
	case requireName:
		p.unexpected()
	}
	p.parseFunctionRest(fn)
	fn.Range = p.rangeFrom(start)
	return fn
}

func (p *parser) parseMethod(start int, kind jsast.FuncKind, async bool, generator bool) *jsast.Function {
	fn := &jsast.Function{
		Kind:      kind,
		Async:     async,
		Generator: generator,
	}
	p.parseFunctionRest(fn)
	fn.Range = p.rangeFrom(start)
	return fn
}

func (p *parser) parseFunctionRest(fn *jsast.Function) {
	saved := p.enterFunction(fn.Async, fn.Generator)
	fn.Params = p.parseParams()
	fn.Body = p.parseBlock()
	p.frame = saved
}

func (p *parser) parseParams() []jsast.Expr {
	p.expect("(")
	var params []jsast.Expr
	for !p.eat(")") {
		if p.is("...") {
			start := p.tok.Start
			p.next()
			target := p.parseBindingTarget()
			params = append(params, &jsast.SpreadExpr{
				Range: p.rangeFrom(start),
				X:     target,
			})
			p.expect(")")
			break
		}
		params = append(params, p.parseBindingElement())
		if !p.is(")") {
			p.expect(",")
		}
	}
	return params
}

// parseBindingElement parses a binding target with an optional default.
func (p *parser) parseBindingElement() jsast.Expr {
	start := p.tok.Start
	target := p.parseBindingTarget()
	if !p.eat("=") {
		return target
	}
	value := p.parseAssign(false)
	return &jsast.AssignExpr{
		Range:  p.rangeFrom(start),
		Op:     "=",
		Target: target,
		Value:  value,
	}
}

func (p *parser) parseBindingTarget() jsast.Expr {
	switch {
	case p.is("["):
		return p.parseArrayPattern()
	case p.is("{"):
		return p.parseObjectPattern()
	}
	return p.bindingIdent()
}

func (p *parser) parseArrayPattern() *jsast.ArrayLit {
	start := p.expect("[").Start
	arr := new(jsast.ArrayLit)
	for !p.eat("]") {
		if p.eat(",") {
			arr.Elems = append(arr.Elems, nil)
			continue
		}
		if p.is("...") {
			restStart := p.tok.Start
			p.next()
			target := p.parseBindingTarget()
			arr.Elems = append(arr.Elems, &jsast.SpreadExpr{
				Range: p.rangeFrom(restStart),
				X:     target,
			})
			p.expect("]")
			break
		}
		arr.Elems = append(arr.Elems, p.parseBindingElement())
		if !p.is("]") {
			p.expect(",")
		}
	}
	arr.Range = p.rangeFrom(start)
	return arr
}

func (p *parser) parseObjectPattern() *jsast.ObjectLit {
	start := p.expect("{").Start
	obj := new(jsast.ObjectLit)
	for !p.eat("}") {
		propStart := p.tok.Start
		prop := new(jsast.Property)

		if p.eat("...") {
			prop.Kind = jsast.PropSpread
			prop.Value = p.bindingIdent()
			prop.Range = p.rangeFrom(propStart)
			obj.Props = append(obj.Props, prop)
			p.expect("}")
			break
		}

		keyTok := p.tok
		prop.Key, prop.Computed = p.parsePropertyKey(false)
		if p.eat(":") {
			prop.Kind = jsast.PropInit
			prop.Value = p.parseBindingElement()
		} else {
			p.checkShorthand(keyTok)
			ident := prop.Key.(*jsast.Ident)
			if p.frame.generator && ident.Name == "yield" || p.frame.async && ident.Name == "await" {
				p.errorf(ident.Start, "unexpected reserved word %s", ident.Name)
			}
			prop.Kind = jsast.PropShorthand
			prop.Value = ident
			if p.eat("=") {
				value := p.parseAssign(false)
				prop.Value = &jsast.AssignExpr{
					Range:  p.rangeFrom(ident.Start),
					Op:     "=",
					Target: ident,
					Value:  value,
				}
			}
		}

		prop.Range = p.rangeFrom(propStart)
		obj.Props = append(obj.Props, prop)
		if !p.is("}") {
			p.expect(",")
		}
	}
	obj.Range = p.rangeFrom(start)
	return obj
}

func (p *parser) parseClass(requireName bool) *jsast.Class {
	start := p.expect("class").Start
	class := new(jsast.Class)
	switch {
	case p.tok.Kind == jslex.KindIdentifier, p.tok.Kind == jslex.KindDefer:
		class.Name = p.bindingIdent()
	case requireName:
		p.unexpected()
	}
	if p.eat("extends") {
		class.Super = p.parseLeftHandSide()
	}
	p.expect("{")
	for !p.eat("}") {
		if p.eat(";") {
			continue
		}
		class.Members = append(class.Members, p.parseClassMember())
	}
	class.Range = p.rangeFrom(start)
	return class
}

func (p *parser) parseClassMember() *jsast.ClassMember {
	start := p.tok.Start
	member := new(jsast.ClassMember)

	if p.isWord("static") && p.modifierAhead() {
		p.next()
		member.Static = true
		if p.is("{") {
			member.Kind = jsast.MemberStaticBlock
			saved := p.frame
			p.frame = frame{
				classBody: true,
			}
			member.Block = p.parseBlock()
			p.frame = saved
			member.Range = p.rangeFrom(start)
			return member
		}
	}

	kind := jsast.MemberMethod
	async := false
	if (p.isWord("get") || p.isWord("set") || p.isWord("async")) && p.modifierAhead() {
		switch p.tok.Text {
		case "get":
			kind = jsast.MemberGetter
		case "set":
			kind = jsast.MemberSetter
		default:
			async = true
		}
		p.next()
	}
	generator := p.eat("*")

	keyTok := p.tok
	member.Key, member.Computed = p.parsePropertyKey(true)

	if p.is("(") {
		fnKind := jsast.FuncMethod
		switch kind {
		case jsast.MemberGetter:
			fnKind = jsast.FuncGetter
		case jsast.MemberSetter:
			fnKind = jsast.FuncSetter
		default:
			if !member.Static && keyTok.Kind == jslex.KindIdentifier && keyTok.Text == "constructor" {
				fnKind = jsast.FuncConstructor
			}
		}
		fn := p.parseMethod(keyTok.Start, fnKind, async, generator)
		member.Kind = kind
		member.Value = &jsast.FuncExpr{
			Range: fn.Range,
			Func:  fn,
		}
		member.Range = p.rangeFrom(start)
		return member
	}

	if kind != jsast.MemberMethod || async || generator {
		p.unexpected()
	}
	member.Kind = jsast.MemberField
	if p.eat("=") {
		saved := p.frame
		p.frame = frame{
			classBody: true,
		}
		member.Value = p.parseAssign(false)
		p.frame = saved
	}
	p.semicolon()
	member.Range = p.rangeFrom(start)
	return member
}
