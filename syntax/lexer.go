package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"keidec/report"
)

// Lexer is responsible for tokenizing a source text.  Lexing is total: every
// character of the input ends up in exactly one token, an error token or the
// whitespace skipped between tokens.
type Lexer struct {
	src string

	// pos is the byte offset of the next character to read.
	pos int

	line, col int

	// The position at which the current token began.
	startPos            int
	startLine, startCol int

	tokens []*Token
}

// NewLexer creates a new lexer for the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  1,
	}
}

// Tokenize converts src into its token sequence, comments and error tokens
// included.  Whitespace is never emitted.
func Tokenize(src string) []*Token {
	return NewLexer(src).lexAll()
}

// Analyze tokenizes src and returns the full token sequence along with the
// subsequence of error tokens.
func Analyze(src string) ([]*Token, []*Token) {
	tokens := Tokenize(src)

	var errTokens []*Token
	for _, tok := range tokens {
		if tok.Kind == TOK_ERROR {
			errTokens = append(errTokens, tok)
		}
	}

	return tokens, errTokens
}

// Lex tokenizes src and returns the token sequence along with one lexical
// diagnostic per error token.
func Lex(src string) ([]*Token, []*report.Diagnostic) {
	tokens, errTokens := Analyze(src)

	diags := make([]*report.Diagnostic, len(errTokens))
	for i, tok := range errTokens {
		diags[i] = lexicalError(tok)
	}

	return tokens, diags
}

// Significant returns the tokens the parser consumes: the input with all
// comments removed.
func Significant(tokens []*Token) []*Token {
	sig := make([]*Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != TOK_COMMENT {
			sig = append(sig, tok)
		}
	}

	return sig
}

// lexicalError converts an error token into a lexical diagnostic.
func lexicalError(tok *Token) *report.Diagnostic {
	// Only the first line of the offending text is quoted.
	if tok.Reason == ReasonUnclosedComment {
		return report.Raise(report.Lexical, tok.Span, "%s", tok.Reason)
	}

	text := tok.Value
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}

	return report.Raise(report.Lexical, tok.Span, "%s '%s'", tok.Reason, text)
}

// -----------------------------------------------------------------------------

// lexAll lexes the entire source text.
func (l *Lexer) lexAll() []*Token {
	for {
		c, ok := l.peek()
		if !ok {
			break
		}

		l.mark()
		switch {
		case unicode.IsSpace(c):
			l.skip()
		case c == '/' && l.peekAhead() == '/':
			l.lexLineComment()
		case c == '/' && l.peekAhead() == '*':
			l.lexBlockComment()
		case c == '"':
			l.lexStringLit()
		case isDecimalDigit(c):
			l.lexNumberLit()
		case isFirstIdentChar(c):
			l.lexIdentOrKeyword()
		default:
			l.lexPunctOrOper()
		}
	}

	return l.tokens
}

// lexLineComment lexes a `//` comment up to but not including the line break.
func (l *Lexer) lexLineComment() {
	for {
		c, ok := l.peek()
		if !ok || c == '\n' {
			break
		}

		l.skip()
	}

	l.makeToken(TOK_COMMENT)
}

// lexBlockComment lexes a `/* ... */` comment which may span multiple lines.
// A comment which runs into the end of the input becomes an error token
// positioned at its opening `/*`.
func (l *Lexer) lexBlockComment() {
	// skip the `/*`
	l.skip()
	l.skip()

	for {
		c, ok := l.peek()
		if !ok {
			l.makeErrorToken(ReasonUnclosedComment)
			return
		}

		l.skip()
		if c == '*' && l.peekIs('/') {
			l.skip()
			l.makeToken(TOK_COMMENT)
			return
		}
	}
}

// lexStringLit lexes a double quoted string literal.  A line break or the end
// of the input before the closing quote produces an error token; the line
// break itself is left for the next token.
func (l *Lexer) lexStringLit() {
	// skip the opening quote
	l.skip()

	for {
		c, ok := l.peek()
		if !ok || c == '\n' || c == '\r' {
			l.makeErrorToken(ReasonUnclosedString)
			return
		}

		l.skip()
		switch c {
		case '"':
			l.makeToken(TOK_STRING)
			return
		case '\\':
			// the escaped character is part of the literal unless it would end
			// the line
			if next, ok := l.peek(); ok && next != '\n' && next != '\r' {
				l.skip()
			}
		}
	}
}

// lexNumberLit lexes an integer or a real literal.  Digits followed by a dot
// which is not followed by a digit form a single malformed literal.
func (l *Lexer) lexNumberLit() {
	l.skipDigits()

	if l.peekIs('.') {
		l.skip()

		if c, ok := l.peek(); !ok || !isDecimalDigit(c) {
			l.makeErrorToken(ReasonBadNumber)
			return
		}

		l.skipDigits()
	}

	l.makeToken(TOK_NUMBER)
}

// lexIdentOrKeyword lexes an identifier or a keyword.
func (l *Lexer) lexIdentOrKeyword() {
	for {
		c, ok := l.peek()
		if !ok || !(isFirstIdentChar(c) || isDecimalDigit(c)) {
			break
		}

		l.skip()
	}

	if IsKeyword(l.src[l.startPos:l.pos]) {
		l.makeToken(TOK_KEYWORD)
	} else {
		l.makeToken(TOK_IDENT)
	}
}

// lexPunctOrOper lexes a punctuation symbol or an operator.  The longest
// pattern matching the input wins.  Characters which begin no pattern are
// emitted as single-character error tokens.
func (l *Lexer) lexPunctOrOper() {
	l.skip()

	kind, ok := symbolPatterns[l.src[l.startPos:l.pos]]
	if !ok {
		l.makeErrorToken(ReasonUnknownChar)
		return
	}

	if next, ok := l.peek(); ok {
		if longKind, ok := symbolPatterns[l.src[l.startPos:l.pos]+string(next)]; ok {
			l.skip()
			kind = longKind
		}
	}

	l.makeToken(kind)
}

// -----------------------------------------------------------------------------

// mark marks the beginning of a token.
func (l *Lexer) mark() {
	l.startPos = l.pos
	l.startLine = l.line
	l.startCol = l.col
}

// makeToken creates a new token of kind over the text read since the last
// call to mark.
func (l *Lexer) makeToken(kind int) *Token {
	tok := &Token{
		Kind:   kind,
		Value:  l.src[l.startPos:l.pos],
		Span:   l.getSpan(),
		Offset: l.startPos,
	}

	l.tokens = append(l.tokens, tok)
	return tok
}

// makeErrorToken creates a new error token with the given reason.
func (l *Lexer) makeErrorToken(reason string) {
	l.makeToken(TOK_ERROR).Reason = reason
}

// getSpan returns the span from the last mark to the current position.
func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine,
		StartCol:  l.startCol,
		EndLine:   l.line,
		EndCol:    l.col,
	}
}

// peek returns the next character without consuming it.
func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}

	c, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return c, true
}

// peekAhead returns the character after the next character, or zero if there
// is none.
func (l *Lexer) peekAhead() rune {
	if l.pos >= len(l.src) {
		return 0
	}

	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if l.pos+size >= len(l.src) {
		return 0
	}

	c, _ := utf8.DecodeRuneInString(l.src[l.pos+size:])
	return c
}

// peekIs returns whether the next character is c.
func (l *Lexer) peekIs(c rune) bool {
	next, ok := l.peek()
	return ok && next == c
}

// skip consumes the next character and updates the position.
func (l *Lexer) skip() {
	c, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size

	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// skipDigits consumes a run of decimal digits.
func (l *Lexer) skipDigits() {
	for {
		c, ok := l.peek()
		if !ok || !isDecimalDigit(c) {
			return
		}

		l.skip()
	}
}

// -----------------------------------------------------------------------------

func isDecimalDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isFirstIdentChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}
