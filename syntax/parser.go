package syntax

import (
	"fmt"
	"strings"

	"keidec/ast"
	"keidec/report"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser over a token sequence.  All parsing
// functions assume that they begin with the parser positioned on the first
// token of their production and consume all tokens of their production,
// leaving the parser on the next token.  Parsing functions which return a
// boolean return false when they could not make sense of their input: the
// caller is then responsible for recovering.  A missing delimiter is reported
// but does not make a production fail.
type Parser struct {
	tokens []*Token

	// pos is the index of the current token in tokens.
	pos int

	// tok is the current token the parser is positioned on.
	tok *Token

	// lookbehind is the token the parser was positioned on before tok.
	lookbehind *Token

	// eof is the sentinel token returned once tokens are exhausted.  It sits
	// at the position of the last token.
	eof *Token

	root *ast.Node

	errors []*report.Diagnostic
}

// NewParser creates a new parser over tokens.  Comment tokens are dropped.
func NewParser(tokens []*Token) *Parser {
	tokens = Significant(tokens)

	eofSpan := report.NewSpan(1, 1, 1)
	if len(tokens) > 0 {
		eofSpan = tokens[len(tokens)-1].Span
	}

	p := &Parser{
		tokens: tokens,
		pos:    -1,
		eof:    &Token{Kind: TOK_EOF, Span: eofSpan},
	}

	p.next()
	return p
}

// Parse parses a token sequence into a PROGRAM tree and the syntax errors
// found along the way.  The tree is always returned, even when it is only
// partial.
func Parse(tokens []*Token) (*ast.Node, []*report.Diagnostic) {
	p := NewParser(tokens)
	root := p.Parse()
	return root, p.errors
}

// Parse runs the parser.  An unexpected failure inside the parser is turned
// into a syntax error and the tree built up to that point is returned.
func (p *Parser) Parse() (root *ast.Node) {
	p.root = ast.NewNode(ast.PROGRAM, "", 1, 1)
	root = p.root

	defer func() {
		if x := recover(); x != nil {
			p.errorOn(p.tok, "parser failed unexpectedly: %v", x)
		}
	}()

	p.parseProgram()
	return
}

// Errors returns the syntax errors reported so far.
func (p *Parser) Errors() []*report.Diagnostic {
	return p.errors
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.
func (p *Parser) next() {
	p.lookbehind = p.tok

	if p.pos < len(p.tokens) {
		p.pos++
	}

	if p.pos < len(p.tokens) {
		p.tok = p.tokens[p.pos]
	} else {
		p.tok = p.eof
	}
}

// peek returns the token after the current token.
func (p *Parser) peek() *Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}

	return p.eof
}

// got returns true if the parser is on a token of a given kind and value.
func (p *Parser) got(kind int, value string) bool {
	return p.tok.Is(kind, value)
}

// gotSymbol returns true if the parser is on the given punctuation symbol.
func (p *Parser) gotSymbol(value string) bool {
	return p.tok.Is(TOK_SYMBOL, value)
}

// gotKeyword returns true if the parser is on the given keyword.
func (p *Parser) gotKeyword(value string) bool {
	return p.tok.Is(TOK_KEYWORD, value)
}

// gotOneOf returns true if the parser is on a keyword or symbol whose value is
// one of values.
func (p *Parser) gotOneOf(values ...string) bool {
	if p.tok.Kind != TOK_KEYWORD && p.tok.Kind != TOK_SYMBOL {
		return false
	}

	for _, value := range values {
		if p.tok.Value == value {
			return true
		}
	}

	return false
}

// gotTypeKeyword returns true if the parser is on a type keyword.
func (p *Parser) gotTypeKeyword() bool {
	return p.gotOneOf("int", "float", "real", "string", "void")
}

// want checks that the parser is on the given token and moves past it if so.
// Otherwise, a missing token error is reported and the parser does not move.
func (p *Parser) want(kind int, value string) bool {
	if p.got(kind, value) {
		p.next()
		return true
	}

	p.errorOn(p.tok, "expected `%s` but got %s", value, describe(p.tok))
	return false
}

// wantSymbol is want for punctuation symbols.
func (p *Parser) wantSymbol(value string) bool {
	return p.want(TOK_SYMBOL, value)
}

// wantKeyword is want for keywords.
func (p *Parser) wantKeyword(value string) bool {
	return p.want(TOK_KEYWORD, value)
}

// wantIdent checks that the parser is on an identifier and returns it.  The
// parser does not move if it is not.
func (p *Parser) wantIdent() (*Token, bool) {
	if p.tok.Kind == TOK_IDENT {
		tok := p.tok
		p.next()
		return tok, true
	}

	p.errorOn(p.tok, "expected identifier but got %s", describe(p.tok))
	return nil, false
}

// -----------------------------------------------------------------------------

// reject reports an unexpected token error on the current token.
func (p *Parser) reject() {
	p.errorOn(p.tok, "unexpected %s", describe(p.tok))
}

// rejectWithMsg rejects the current token with a specific message.
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	p.errorOn(p.tok, msg, a...)
}

// errorOn reports an error on a given token.  Two errors are never reported at
// the same position: the second one is almost always caused by the first.
func (p *Parser) errorOn(tok *Token, msg string, a ...interface{}) {
	if n := len(p.errors); n > 0 {
		last := p.errors[n-1].Span
		if last.StartLine == tok.Span.StartLine && last.StartCol == tok.Span.StartCol {
			return
		}
	}

	p.errors = append(p.errors, report.Raise(report.Syntax, tok.Span, msg, a...))
}

// describe returns a user-facing description of a token.
func describe(tok *Token) string {
	if tok.Kind == TOK_EOF {
		return "end of file"
	}

	return fmt.Sprintf("`%s`", tok.Value)
}

// -----------------------------------------------------------------------------

// statementStarters are the keywords that begin a statement.
var statementStarters = []string{
	"int", "float", "real", "string", "void",
	"if", "while", "do", "for", "switch", "cin", "cout", "return",
}

// blockClosers are the tokens that end a statement list.
var blockClosers = []string{"}", "end", "else", "until", "case", "default"}

// synchronize performs panic-mode recovery: it skips tokens up to and
// including the next `;`.  It stops without consuming on the end of a block
// or the start of another statement.
func (p *Parser) synchronize() {
	for p.tok.Kind != TOK_EOF {
		if p.gotSymbol(";") {
			p.next()
			return
		}

		if p.gotOneOf(blockClosers...) || p.gotOneOf(statementStarters...) {
			return
		}

		p.next()
	}
}

// rejectTrailing reports all tokens left over after the program as a single
// error with a preview of what was left.
func (p *Parser) rejectTrailing() {
	const previewLen = 5

	var preview []string
	for i := p.pos; i < len(p.tokens) && len(preview) < previewLen; i++ {
		preview = append(preview, p.tokens[i].Value)
	}

	more := ""
	if len(p.tokens)-p.pos > previewLen {
		more = " ..."
	}

	p.rejectWithMsg("unexpected input after the end of the program: `%s`%s", strings.Join(preview, " "), more)
	p.pos = len(p.tokens)
	p.tok = p.eof
}

// newNode creates a node positioned at tok.
func newNode(kind int, value string, tok *Token, children ...*ast.Node) *ast.Node {
	return ast.NewNode(kind, value, tok.Line(), tok.Col(), children...)
}
