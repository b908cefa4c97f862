package syntax

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"keidec/report"
)

type tokenShape struct {
	Kind  string
	Value string
	Line  int
	Col   int
}

func shapeTokens(tokens []*Token) []tokenShape {
	shapes := make([]tokenShape, len(tokens))
	for i, tok := range tokens {
		shapes[i] = tokenShape{KindName(tok.Kind), tok.Value, tok.Line(), tok.Col()}
	}

	return shapes
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tokenShape
	}{
		{
			name: "declaration",
			src:  "int x = 10;",
			want: []tokenShape{
				{"KEYWORD", "int", 1, 1},
				{"IDENTIFIER", "x", 1, 5},
				{"ASSIGNMENT", "=", 1, 7},
				{"NUMBER", "10", 1, 9},
				{"SYMBOL", ";", 1, 11},
			},
		},
		{
			name: "longest match",
			src:  "a<=b<<c",
			want: []tokenShape{
				{"IDENTIFIER", "a", 1, 1},
				{"RELATIONAL_OP", "<=", 1, 2},
				{"IDENTIFIER", "b", 1, 4},
				{"BITWISE_OP", "<<", 1, 5},
				{"IDENTIFIER", "c", 1, 7},
			},
		},
		{
			name: "increments",
			src:  "x++ --y",
			want: []tokenShape{
				{"IDENTIFIER", "x", 1, 1},
				{"ARITHMETIC_OP", "++", 1, 2},
				{"ARITHMETIC_OP", "--", 1, 5},
				{"IDENTIFIER", "y", 1, 7},
			},
		},
		{
			name: "numbers",
			src:  "3.14 2",
			want: []tokenShape{
				{"NUMBER", "3.14", 1, 1},
				{"NUMBER", "2", 1, 6},
			},
		},
		{
			name: "line comment",
			src:  "// hi\nmain",
			want: []tokenShape{
				{"COMMENT", "// hi", 1, 1},
				{"KEYWORD", "main", 2, 1},
			},
		},
		{
			name: "block comment",
			src:  "/* a\n b */x",
			want: []tokenShape{
				{"COMMENT", "/* a\n b */", 1, 1},
				{"IDENTIFIER", "x", 2, 6},
			},
		},
		{
			name: "escaped quote",
			src:  `"a\"b" c`,
			want: []tokenShape{
				{"STRING", `"a\"b"`, 1, 1},
				{"IDENTIFIER", "c", 1, 8},
			},
		},
		{
			name: "unicode identifier",
			src:  "año=1",
			want: []tokenShape{
				{"IDENTIFIER", "año", 1, 1},
				{"ASSIGNMENT", "=", 1, 4},
				{"NUMBER", "1", 1, 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shapeTokens(Tokenize(tt.src))
			if diff := pretty.Diff(tt.want, got); len(diff) > 0 {
				t.Errorf("tokens differ:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "unterminated comment",
			src:  "/* abc",
			want: []string{"Lexical error at line 1, column 1: unterminated comment"},
		},
		{
			name: "malformed number",
			src:  "int x = 12.;",
			want: []string{"Lexical error at line 1, column 9: malformed numeric literal '12.'"},
		},
		{
			name: "unknown character",
			src:  "x = @;",
			want: []string{"Lexical error at line 1, column 5: unrecognized character '@'"},
		},
		{
			name: "unterminated string",
			src:  "cout << \"abc\nx",
			want: []string{"Lexical error at line 1, column 9: unterminated string '\"abc'"},
		},
		{
			name: "several errors",
			src:  "a $ b # c",
			want: []string{
				"Lexical error at line 1, column 3: unrecognized character '$'",
				"Lexical error at line 1, column 7: unrecognized character '#'",
			},
		},
		{
			name: "no errors",
			src:  "main { cout << 1; }",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := Lex(tt.src)
			if diff := pretty.Diff(tt.want, report.Messages(diags)); len(diff) > 0 {
				t.Errorf("diagnostics differ:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestUnterminatedCommentEmitsNoComment(t *testing.T) {
	tokens, diags := Lex("/* abc")

	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diags))
	}

	if diags[0].Line() != 1 || diags[0].Col() != 1 {
		t.Errorf("diagnostic at %d:%d, want 1:1", diags[0].Line(), diags[0].Col())
	}

	for _, tok := range tokens {
		if tok.Kind == TOK_COMMENT {
			t.Errorf("unexpected comment token %q", tok.Value)
		}
	}
}

func TestUnterminatedStringKeepsNextLine(t *testing.T) {
	tokens := Tokenize("\"abc\nx")
	got := shapeTokens(tokens)
	want := []tokenShape{
		{"ERROR", `"abc`, 1, 1},
		{"IDENTIFIER", "x", 2, 1},
	}

	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Errorf("tokens differ:\n%s", strings.Join(diff, "\n"))
	}
}

// lexerInputs exercise every mode of the lexer including broken input.
var lexerInputs = []string{
	"",
	"   \n\t ",
	"main { int a; a = 2 + 3; cout << a; }",
	"/* abc",
	"/* a */ // b\n/* c",
	"\"abc",
	"\"a\\",
	"\"a\\\nb\"",
	"12. 3.4.5 6..7",
	"@#$`?\\",
	"x\xffy\x00z",
	"if (a != b && !c || d >= -1) then x++; end",
	"ñandú = \"día\" + 1.5;",
}

func TestLexIsTotal(t *testing.T) {
	for _, src := range lexerInputs {
		tokens := Tokenize(src)

		// every token must be non-empty: otherwise the lexer did not advance
		for _, tok := range tokens {
			if tok.Value == "" {
				t.Errorf("%q: empty %s token at %d:%d", src, KindName(tok.Kind), tok.Line(), tok.Col())
			}
		}
	}
}

func TestLexRoundTrip(t *testing.T) {
	for _, src := range lexerInputs {
		sb := strings.Builder{}
		prevEnd := 0

		for _, tok := range Tokenize(src) {
			gap := src[prevEnd:tok.Offset]
			if strings.TrimSpace(gap) != "" {
				t.Errorf("%q: non-whitespace %q skipped before %q", src, gap, tok.Value)
			}

			if got := src[tok.Offset : tok.Offset+len(tok.Value)]; got != tok.Value {
				t.Errorf("%q: token %q does not match source text %q", src, tok.Value, got)
			}

			sb.WriteString(gap)
			sb.WriteString(tok.Value)
			prevEnd = tok.Offset + len(tok.Value)
		}

		if strings.TrimSpace(src[prevEnd:]) != "" {
			t.Errorf("%q: trailing text %q was not tokenized", src, src[prevEnd:])
		}

		sb.WriteString(src[prevEnd:])
		if sb.String() != src {
			t.Errorf("round trip of %q produced %q", src, sb.String())
		}
	}
}
