package syntax

import "keidec/ast"

// stmts := {stmt} ;
//
// The statement list ends on one of closers or the end of the input; the
// closing token is not consumed.
func (p *Parser) parseStmts(closers ...string) *ast.Node {
	block := newNode(ast.BLOCK, "", p.tok)

	for p.tok.Kind != TOK_EOF && !p.gotOneOf(closers...) {
		start := p.pos

		stmt, ok := p.parseStmt()
		block.Add(stmt)

		if !ok {
			p.synchronize()

			// always make progress, even on a token no statement can start
			// with
			if p.pos == start {
				p.next()
			}
		}
	}

	return block
}

// stmt := declaration | assignment | incdec | if | while | do_until | for
//
//	| switch | cin | cout | return | call_stmt ;
func (p *Parser) parseStmt() (*ast.Node, bool) {
	switch p.tok.Kind {
	case TOK_KEYWORD:
		switch p.tok.Value {
		case "int", "float", "real", "string", "void":
			return p.parseDeclaration()
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoUntil()
		case "for":
			return p.parseFor()
		case "switch":
			return p.parseSwitch()
		case "cin":
			return p.parseInput()
		case "cout":
			return p.parseOutput()
		case "return":
			return p.parseReturn()
		}
	case TOK_IDENT:
		next := p.peek()
		switch {
		case next.Kind == TOK_ASSIGN:
			return p.parseAssignStmt()
		case next.Is(TOK_ARITH, "++"), next.Is(TOK_ARITH, "--"):
			return p.parseIncDecStmt()
		case next.Is(TOK_SYMBOL, "("):
			return p.parseCallStmt()
		}

		p.errorOn(next, "expected `=`, `++`, `--` or `(` after `%s` but got %s", p.tok.Value, describe(next))
		p.next()
		return nil, false
	}

	p.reject()
	return nil, false
}

// declaration := var_type init_decl {',' init_decl} ';' ;
func (p *Parser) parseDeclaration() (*ast.Node, bool) {
	decl, ok := p.parseDeclarators()
	if !ok {
		return decl, false
	}

	p.wantSymbol(";")
	return decl, true
}

// declarators := var_type init_decl {',' init_decl} ;
// init_decl := IDENT ['=' expr] ;
func (p *Parser) parseDeclarators() (*ast.Node, bool) {
	decl := newNode(ast.DECLARATION, p.tok.Value, p.tok)
	p.next()

	for {
		nameTok, ok := p.wantIdent()
		if !ok {
			return decl, false
		}

		ident := newNode(ast.IDENTIFIER, nameTok.Value, nameTok)
		if p.tok.Kind == TOK_ASSIGN {
			assignTok := p.tok
			p.next()

			init, ok := p.parseExpr()
			decl.Add(newNode(ast.ASSIGNMENT, "=", assignTok, ident, init))
			if !ok {
				return decl, false
			}
		} else {
			decl.Add(ident)
		}

		if !p.gotSymbol(",") {
			return decl, true
		}

		p.next()
	}
}

// assignment := IDENT '=' expr ';' ;
func (p *Parser) parseAssignStmt() (*ast.Node, bool) {
	assign, ok := p.parseAssignment()
	if !ok {
		return assign, false
	}

	p.wantSymbol(";")
	return assign, true
}

// assign := IDENT '=' expr ;
func (p *Parser) parseAssignment() (*ast.Node, bool) {
	ident := newNode(ast.IDENTIFIER, p.tok.Value, p.tok)
	p.next()

	assign := newNode(ast.ASSIGNMENT, "=", p.tok, ident)
	if p.tok.Kind != TOK_ASSIGN {
		p.rejectWithMsg("expected `=` but got %s", describe(p.tok))
		return assign, false
	}
	p.next()

	value, ok := p.parseExpr()
	assign.Add(value)
	return assign, ok
}

// incdec := IDENT ('++' | '--') ';' ;
func (p *Parser) parseIncDecStmt() (*ast.Node, bool) {
	assign := p.parseIncDec()
	p.wantSymbol(";")
	return assign, true
}

// step := IDENT ('++' | '--') ;
//
// The step is desugared into `IDENT = IDENT + 1` (or `- 1`); the assignment
// node keeps the original operator as its value.
func (p *Parser) parseIncDec() *ast.Node {
	nameTok := p.tok
	p.next()

	opTok := p.tok
	p.next()

	return newNode(ast.ASSIGNMENT, opTok.Value, opTok,
		newNode(ast.IDENTIFIER, nameTok.Value, nameTok),
		newNode(ast.BINARY_OP, opTok.Value[:1], opTok,
			newNode(ast.IDENTIFIER, nameTok.Value, nameTok),
			newNode(ast.NUMBER, "1", opTok),
		),
	)
}

// call_stmt := call ';' ;
func (p *Parser) parseCallStmt() (*ast.Node, bool) {
	call, ok := p.parseCall()
	if !ok {
		return call, false
	}

	p.wantSymbol(";")
	return call, true
}

// cin := 'cin' '>>' IDENT {'>>' IDENT} ';' ;
func (p *Parser) parseInput() (*ast.Node, bool) {
	input := newNode(ast.INPUT_STATEMENT, "", p.tok)
	p.next()

	for {
		if !p.want(TOK_BITOP, ">>") {
			return input, false
		}

		nameTok, ok := p.wantIdent()
		if !ok {
			return input, false
		}

		input.Add(newNode(ast.IDENTIFIER, nameTok.Value, nameTok))

		if !p.got(TOK_BITOP, ">>") {
			break
		}
	}

	p.wantSymbol(";")
	return input, true
}

// cout := 'cout' '<<' expr {'<<' expr} ';' ;
func (p *Parser) parseOutput() (*ast.Node, bool) {
	output := newNode(ast.OUTPUT_STATEMENT, "", p.tok)
	p.next()

	for {
		if !p.want(TOK_BITOP, "<<") {
			return output, false
		}

		expr, ok := p.parseExpr()
		output.Add(expr)
		if !ok {
			return output, false
		}

		if !p.got(TOK_BITOP, "<<") {
			break
		}
	}

	p.wantSymbol(";")
	return output, true
}

// return := 'return' [expr] ';' ;
func (p *Parser) parseReturn() (*ast.Node, bool) {
	ret := newNode(ast.RETURN_STATEMENT, "", p.tok)
	p.next()

	if !p.gotSymbol(";") {
		value, ok := p.parseExpr()
		ret.Add(value)
		if !ok {
			return ret, false
		}
	}

	p.wantSymbol(";")
	return ret, true
}
