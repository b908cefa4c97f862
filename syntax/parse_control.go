package syntax

import (
	"strings"

	"keidec/ast"
)

// cond := '(' expr ')' ;
//
// Missing parentheses are reported but the condition is parsed regardless.
func (p *Parser) parseCondition() (*ast.Node, bool) {
	parenthesized := p.gotSymbol("(")
	if parenthesized {
		p.next()
	} else {
		p.rejectWithMsg("expected `(` before condition but got %s", describe(p.tok))
	}

	cond, ok := p.parseExpr()
	if !ok {
		return cond, false
	}

	if parenthesized {
		p.wantSymbol(")")
	}

	return cond, true
}

// if := 'if' cond 'then' {stmt} ['else' {stmt}] 'end' ;
func (p *Parser) parseIf() (*ast.Node, bool) {
	ifNode := newNode(ast.IF_STATEMENT, "", p.tok)
	p.next()

	cond, ok := p.parseCondition()
	ifNode.Add(cond)
	if !ok {
		return ifNode, false
	}

	if p.gotKeyword("then") {
		p.next()
	} else {
		p.rejectWithMsg("expected `then` after condition but got %s", describe(p.tok))
	}

	ifNode.Add(p.parseStmts("else", "end"))

	if p.gotKeyword("else") {
		p.next()
		ifNode.Add(p.parseStmts("end"))
	}

	p.wantKeyword("end")
	return ifNode, true
}

// while := 'while' cond {stmt} 'end' ;
func (p *Parser) parseWhile() (*ast.Node, bool) {
	whileNode := newNode(ast.WHILE_STATEMENT, "", p.tok)
	p.next()

	cond, ok := p.parseCondition()
	whileNode.Add(cond)
	if !ok {
		return whileNode, false
	}

	whileNode.Add(p.parseStmts("end"))
	p.wantKeyword("end")
	return whileNode, true
}

// do_until := 'do' {stmt} 'until' cond [';'] ;
func (p *Parser) parseDoUntil() (*ast.Node, bool) {
	doNode := newNode(ast.DO_UNTIL_STATEMENT, "", p.tok)
	p.next()

	doNode.Add(p.parseStmts("until"))
	if !p.wantKeyword("until") {
		return doNode, true
	}

	cond, ok := p.parseCondition()
	doNode.Add(cond)
	if !ok {
		return doNode, false
	}

	if p.gotSymbol(";") {
		p.next()
	}

	return doNode, true
}

// for := 'for' '(' for_init ';' expr ';' for_step ')' {stmt} 'end' ;
func (p *Parser) parseFor() (*ast.Node, bool) {
	forNode := newNode(ast.FOR_STATEMENT, "", p.tok)
	p.next()

	p.wantSymbol("(")

	init, ok := p.parseForInit()
	forNode.Add(init)
	if !ok {
		return forNode, false
	}
	p.wantSymbol(";")

	cond, ok := p.parseExpr()
	forNode.Add(cond)
	if !ok {
		return forNode, false
	}
	p.wantSymbol(";")

	step, ok := p.parseForStep()
	forNode.Add(step)
	if !ok {
		return forNode, false
	}
	p.wantSymbol(")")

	forNode.Add(p.parseStmts("end"))
	p.wantKeyword("end")
	return forNode, true
}

// for_init := var_type IDENT '=' expr | IDENT '=' expr ;
func (p *Parser) parseForInit() (*ast.Node, bool) {
	switch {
	case p.gotTypeKeyword():
		decl, ok := p.parseDeclarators()
		if ok && (decl.Len() != 1 || decl.Child(0).Kind != ast.ASSIGNMENT) {
			p.errorOn(p.lookbehind, "a `for` loop must declare exactly one initialized variable")
		}

		return decl, ok
	case p.tok.Kind == TOK_IDENT:
		return p.parseAssignment()
	}

	p.rejectWithMsg("expected loop initializer but got %s", describe(p.tok))
	return nil, false
}

// for_step := IDENT '=' expr | IDENT '++' | IDENT '--' ;
func (p *Parser) parseForStep() (*ast.Node, bool) {
	if p.tok.Kind != TOK_IDENT {
		p.rejectWithMsg("expected loop step but got %s", describe(p.tok))
		return nil, false
	}

	if next := p.peek(); next.Is(TOK_ARITH, "++") || next.Is(TOK_ARITH, "--") {
		return p.parseIncDec(), true
	}

	return p.parseAssignment()
}

// switch := 'switch' cond '{' {case_block | default_block} '}' ;
func (p *Parser) parseSwitch() (*ast.Node, bool) {
	switchNode := newNode(ast.SWITCH_STATEMENT, "", p.tok)
	p.next()

	cond, ok := p.parseCondition()
	switchNode.Add(cond)
	if !ok {
		return switchNode, false
	}

	p.wantSymbol("{")

	for p.tok.Kind != TOK_EOF && !p.gotSymbol("}") {
		switch {
		case p.gotKeyword("case"):
			if caseNode, ok := p.parseCase(); ok {
				switchNode.Add(caseNode)
				continue
			}
		case p.gotKeyword("default"):
			defaultNode := newNode(ast.DEFAULT_BLOCK, "", p.tok)
			p.next()

			p.wantSymbol(":")
			defaultNode.Add(p.parseStmts("case", "default", "}"))
			switchNode.Add(defaultNode)
			continue
		default:
			p.rejectWithMsg("expected `case` or `default` but got %s", describe(p.tok))
		}

		// skip to the next label
		p.next()
		for p.tok.Kind != TOK_EOF && !p.gotOneOf("case", "default", "}") {
			p.next()
		}
	}

	p.wantSymbol("}")
	return switchNode, true
}

// case_block := 'case' ['-'] NUMBER ':' {stmt} ;
func (p *Parser) parseCase() (*ast.Node, bool) {
	caseTok := p.tok
	p.next()

	sign := ""
	if p.got(TOK_ARITH, "-") {
		sign = "-"
		p.next()
	}

	if p.tok.Kind != TOK_NUMBER || strings.Contains(p.tok.Value, ".") {
		p.rejectWithMsg("expected integer literal after `case` but got %s", describe(p.tok))
		return nil, false
	}

	caseNode := newNode(ast.CASE_BLOCK, sign+p.tok.Value, caseTok)
	p.next()

	p.wantSymbol(":")
	caseNode.Add(p.parseStmts("case", "default", "}"))
	return caseNode, true
}
