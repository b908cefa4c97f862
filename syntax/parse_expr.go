package syntax

import (
	"strings"

	"keidec/ast"
)

// binaryLevels lists the binary operators from the lowest to the highest
// precedence.  All binary operators are left associative.
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

// expr := and_expr {'||' and_expr} ;
func (p *Parser) parseExpr() (*ast.Node, bool) {
	return p.parseBinaryLevel(0)
}

// and_expr := eq_expr {'&&' eq_expr} ;
// eq_expr := rel_expr {('==' | '!=') rel_expr} ;
// rel_expr := add_expr {('<' | '<=' | '>' | '>=') add_expr} ;
// add_expr := mul_expr {('+' | '-') mul_expr} ;
// mul_expr := unary {('*' | '/' | '%') unary} ;
func (p *Parser) parseBinaryLevel(level int) (*ast.Node, bool) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}

	lhs, ok := p.parseBinaryLevel(level + 1)
	if !ok {
		return lhs, false
	}

	for p.gotOperator(binaryLevels[level]...) {
		opTok := p.tok
		p.next()

		rhs, ok := p.parseBinaryLevel(level + 1)
		lhs = newNode(ast.BINARY_OP, opTok.Value, opTok, lhs, rhs)
		if !ok {
			return lhs, false
		}
	}

	return lhs, true
}

// gotOperator returns whether the parser is on one of the operators ops.
func (p *Parser) gotOperator(ops ...string) bool {
	switch p.tok.Kind {
	case TOK_ARITH, TOK_RELOP, TOK_LOGOP:
		for _, op := range ops {
			if p.tok.Value == op {
				return true
			}
		}
	}

	return false
}

// unary := ('-' | '!') unary | primary ;
func (p *Parser) parseUnary() (*ast.Node, bool) {
	if p.gotOperator("-", "!") {
		opTok := p.tok
		p.next()

		operand, ok := p.parseUnary()
		return newNode(ast.UNARY_OP, opTok.Value, opTok, operand), ok
	}

	return p.parsePrimary()
}

// primary := NUMBER | STRING | 'true' | 'false' | IDENT | call | '(' expr ')' ;
func (p *Parser) parsePrimary() (*ast.Node, bool) {
	tok := p.tok

	switch tok.Kind {
	case TOK_NUMBER:
		p.next()
		return newNode(ast.NUMBER, tok.Value, tok), true
	case TOK_STRING:
		p.next()
		return newNode(ast.STRING, Unquote(tok.Value), tok), true
	case TOK_KEYWORD:
		if tok.Value == "true" || tok.Value == "false" {
			p.next()
			return newNode(ast.BOOLEAN, tok.Value, tok), true
		}
	case TOK_IDENT:
		if p.peek().Is(TOK_SYMBOL, "(") {
			return p.parseCall()
		}

		p.next()
		return newNode(ast.IDENTIFIER, tok.Value, tok), true
	case TOK_SYMBOL:
		if tok.Value == "(" {
			p.next()

			expr, ok := p.parseExpr()
			if !ok {
				return expr, false
			}

			p.wantSymbol(")")
			return expr, true
		}
	}

	p.rejectWithMsg("expected expression but got %s", describe(tok))
	return nil, false
}

// call := IDENT '(' [expr {',' expr}] ')' ;
func (p *Parser) parseCall() (*ast.Node, bool) {
	call := newNode(ast.FUNCTION_CALL, p.tok.Value, p.tok)
	p.next()

	// skip the `(`
	p.next()

	if p.gotSymbol(")") {
		p.next()
		return call, true
	}

	for {
		arg, ok := p.parseExpr()
		call.Add(arg)
		if !ok {
			return call, false
		}

		if !p.gotSymbol(",") {
			break
		}

		p.next()
	}

	p.wantSymbol(")")
	return call, true
}

// -----------------------------------------------------------------------------

// Unquote returns the value of a string literal lexeme: the quotes are
// removed and the escape sequences `\n`, `\t`, `\"` and `\\` are replaced.
// Any other escaped character stands for itself.
func Unquote(lexeme string) string {
	body := strings.TrimPrefix(lexeme, `"`)
	body = strings.TrimSuffix(body, `"`)

	if !strings.ContainsRune(body, '\\') {
		return body
	}

	sb := strings.Builder{}
	escaped := false
	for _, c := range body {
		if escaped {
			switch c {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			default:
				sb.WriteRune(c)
			}

			escaped = false
		} else if c == '\\' {
			escaped = true
		} else {
			sb.WriteRune(c)
		}
	}

	return sb.String()
}
