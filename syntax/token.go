package syntax

import "keidec/report"

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The exact source text of the token (its lexeme).  String literals keep
	// their quotes.
	Value string

	// The text span over which the token exists.
	Span *report.TextSpan

	// Offset is the byte offset of the token's first character in the source.
	Offset int

	// Reason explains why an error token was produced.  It is empty for all
	// other tokens.
	Reason string
}

// Line returns the line the token begins on.
func (t *Token) Line() int {
	return t.Span.StartLine
}

// Col returns the column the token begins on.
func (t *Token) Col() int {
	return t.Span.StartCol
}

// Is returns whether the token is of kind and has the given value.
func (t *Token) Is(kind int, value string) bool {
	return t.Kind == kind && t.Value == value
}

// Enumeration of token kinds.
const (
	TOK_NUMBER = iota
	TOK_IDENT
	TOK_KEYWORD
	TOK_STRING
	TOK_COMMENT
	TOK_ARITH
	TOK_RELOP
	TOK_LOGOP
	TOK_BITOP
	TOK_SYMBOL
	TOK_ASSIGN
	TOK_ERROR

	// TOK_EOF is never emitted by the lexer: the parser synthesizes it once
	// the token stream is exhausted.
	TOK_EOF
)

var kindNames = [...]string{
	TOK_NUMBER:  "NUMBER",
	TOK_IDENT:   "IDENTIFIER",
	TOK_KEYWORD: "KEYWORD",
	TOK_STRING:  "STRING",
	TOK_COMMENT: "COMMENT",
	TOK_ARITH:   "ARITHMETIC_OP",
	TOK_RELOP:   "RELATIONAL_OP",
	TOK_LOGOP:   "LOGICAL_OP",
	TOK_BITOP:   "BITWISE_OP",
	TOK_SYMBOL:  "SYMBOL",
	TOK_ASSIGN:  "ASSIGNMENT",
	TOK_ERROR:   "ERROR",
	TOK_EOF:     "EOF",
}

// KindName returns the name of a token kind.
func KindName(kind int) string {
	if kind < 0 || kind >= len(kindNames) {
		return "UNKNOWN"
	}

	return kindNames[kind]
}

// Reasons attached to error tokens.
const (
	ReasonUnknownChar     = "unrecognized character"
	ReasonUnclosedComment = "unterminated comment"
	ReasonUnclosedString  = "unterminated string"
	ReasonBadNumber       = "malformed numeric literal"
)

// keywords is the set of reserved words.
var keywords = map[string]struct{}{
	"if":      {},
	"else":    {},
	"end":     {},
	"do":      {},
	"while":   {},
	"switch":  {},
	"case":    {},
	"default": {},
	"int":     {},
	"float":   {},
	"real":    {},
	"string":  {},
	"void":    {},
	"main":    {},
	"cin":     {},
	"cout":    {},
	"then":    {},
	"until":   {},
	"for":     {},
	"return":  {},
	"true":    {},
	"false":   {},
}

// IsKeyword returns whether word is a reserved word.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// symbolPatterns maps every operator and punctuation lexeme to its kind.
// Multi-character patterns are found by extending a matched prefix.
var symbolPatterns = map[string]int{
	"++": TOK_ARITH,
	"--": TOK_ARITH,
	"+":  TOK_ARITH,
	"-":  TOK_ARITH,
	"*":  TOK_ARITH,
	"/":  TOK_ARITH,
	"%":  TOK_ARITH,

	"==": TOK_RELOP,
	"!=": TOK_RELOP,
	"<=": TOK_RELOP,
	">=": TOK_RELOP,
	"<":  TOK_RELOP,
	">":  TOK_RELOP,

	"&&": TOK_LOGOP,
	"||": TOK_LOGOP,
	"!":  TOK_LOGOP,

	"<<": TOK_BITOP,
	">>": TOK_BITOP,
	"&":  TOK_BITOP,
	"|":  TOK_BITOP,
	"^":  TOK_BITOP,
	"~":  TOK_BITOP,

	"=": TOK_ASSIGN,

	"(": TOK_SYMBOL,
	")": TOK_SYMBOL,
	"{": TOK_SYMBOL,
	"}": TOK_SYMBOL,
	",": TOK_SYMBOL,
	";": TOK_SYMBOL,
	":": TOK_SYMBOL,
}
