package syntax

import "keidec/ast"

// program := {function_decl} main EOF ;
func (p *Parser) parseProgram() {
	for p.tok.Kind != TOK_EOF && !p.gotKeyword("main") {
		if p.gotTypeKeyword() {
			fn, ok := p.parseFuncDecl()
			p.root.Add(fn)
			if ok {
				continue
			}
		} else {
			p.rejectWithMsg("expected function declaration or `main` but got %s", describe(p.tok))
		}

		p.skipDefinition()
	}

	if !p.gotKeyword("main") {
		p.rejectWithMsg("expected `main` but got %s", describe(p.tok))
		return
	}

	p.root.Add(p.parseMain())

	if p.tok.Kind != TOK_EOF {
		p.rejectTrailing()
	}
}

// function_decl := ret_type IDENT '(' [param {',' param}] ')' '{' {stmt} '}' ;
// ret_type := 'int' | 'float' | 'real' | 'string' | 'void' ;
func (p *Parser) parseFuncDecl() (*ast.Node, bool) {
	retType := newNode(ast.TYPE, p.tok.Value, p.tok)
	p.next()

	nameTok, ok := p.wantIdent()
	if !ok {
		return nil, false
	}

	fn := newNode(ast.FUNCTION_DECLARATION, nameTok.Value, nameTok, retType)

	params, ok := p.parseParamList()
	fn.Add(params)
	if !ok {
		return fn, false
	}

	fn.Add(p.parseBracedBody())
	return fn, true
}

// param_list := '(' [param {',' param}] ')' ;
// param := var_type IDENT ;
func (p *Parser) parseParamList() (*ast.Node, bool) {
	params := newNode(ast.PARAMETER_LIST, "", p.tok)
	if !p.wantSymbol("(") {
		return params, false
	}

	if p.gotSymbol(")") {
		p.next()
		return params, true
	}

	for {
		if !p.gotTypeKeyword() {
			p.rejectWithMsg("expected parameter type but got %s", describe(p.tok))
			return params, false
		}

		typeNode := newNode(ast.TYPE, p.tok.Value, p.tok)
		p.next()

		nameTok, ok := p.wantIdent()
		if !ok {
			return params, false
		}

		params.Add(newNode(ast.PARAMETER, nameTok.Value, nameTok, typeNode))

		if p.gotSymbol(",") {
			p.next()
			continue
		}

		break
	}

	p.wantSymbol(")")
	return params, true
}

// main := 'main' '{' {stmt} '}' ;
func (p *Parser) parseMain() *ast.Node {
	mainNode := newNode(ast.MAIN, "", p.tok)
	p.next()

	mainNode.Add(p.parseBracedBody())
	return mainNode
}

// braced_body := '{' {stmt} '}' ;
func (p *Parser) parseBracedBody() *ast.Node {
	p.wantSymbol("{")
	body := p.parseStmts("}")
	p.wantSymbol("}")
	return body
}

// skipDefinition skips to the start of the next top level definition: a type
// keyword or `main` outside of any braces.
func (p *Parser) skipDefinition() {
	depth := 0
	for p.tok.Kind != TOK_EOF {
		switch {
		case p.gotSymbol("{"):
			depth++
		case p.gotSymbol("}"):
			depth--
			if depth <= 0 {
				p.next()
				return
			}
		case depth <= 0 && (p.gotKeyword("main") || p.gotTypeKeyword()):
			return
		}

		p.next()
	}
}
