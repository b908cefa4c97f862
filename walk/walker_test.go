package walk

import (
	"testing"

	"github.com/kr/pretty"

	"keidec/ast"
	"keidec/report"
	"keidec/syntax"
	"keidec/typing"
)

func walkSource(t *testing.T, src string) (*Walker, *ast.Node) {
	t.Helper()

	tokens, lexErrs := syntax.Lex(src)
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", report.Messages(lexErrs))
	}

	root, syntaxErrs := syntax.Parse(tokens)
	if len(syntaxErrs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", report.Messages(syntaxErrs))
	}

	w := NewWalker(0)
	w.Walk(root)
	return w, root
}

// find returns the nodes of the given kind in source order.
func find(root *ast.Node, kind int) []*ast.Node {
	var found []*ast.Node
	ast.Inspect(root, func(n *ast.Node) bool {
		if n.Kind == kind {
			found = append(found, n)
		}
		return true
	})

	return found
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "valid program",
			src: `int twice(int a) {
    return a * 2;
}
main {
    int x = 1;
    x = twice(x);
    cout << x;
}`,
		},
		{
			name: "redeclaration",
			src:  "main { int x; int x; cout << x; }",
			want: []string{
				"Semantic error at line 1, column 19: `x` is already declared in this scope",
			},
		},
		{
			name: "duplicate case",
			src: `main {
    int n;
    switch (n) {
        case 1:
        case 1:
    }
}`,
			want: []string{
				"Semantic error at line 5, column 9: duplicate case value `1` in switch",
			},
		},
		{
			name: "undeclared operand does not cascade",
			src:  "main { int x; x = y + 1; }",
			want: []string{
				"Semantic error at line 1, column 19: undeclared identifier `y`",
			},
		},
		{
			name: "calls",
			src: `int f(int a, string s) {
    return a;
}
main {
    int r;
    r = f(1);
    r = f(1, 2);
    r = g();
    r();
}`,
			want: []string{
				"Semantic error at line 6, column 9: function `f` expects 2 arguments but got 1",
				"Semantic error at line 7, column 14: argument 2 of `f` must be string, got int",
				"Semantic error at line 8, column 9: undeclared function `g`",
				"Semantic error at line 9, column 5: `r` is not a function",
			},
		},
		{
			name: "conditions and labels",
			src: `main {
    string s;
    float f;
    if (s) then
    end
    switch (f) {
        default:
        default:
    }
}`,
			want: []string{
				"Semantic error at line 4, column 9: condition of `if` must be numeric or boolean, got string",
				"Semantic error at line 6, column 13: switch discriminant must be int, got float",
				"Semantic error at line 8, column 9: multiple `default` labels in switch",
			},
		},
		{
			name: "returns",
			src: `void v() {
    return 1;
}
int i() {
    return;
}
string s() {
    return 2;
}
main {
    return;
}`,
			want: []string{
				"Semantic error at line 2, column 5: function `v` returns void but a value is returned",
				"Semantic error at line 5, column 5: function `i` must return a value of type int",
				"Semantic error at line 8, column 5: cannot return a value of type int from function `s` returning string",
				"Semantic error at line 11, column 5: `return` outside of a function body",
			},
		},
		{
			name: "assignments",
			src: `main {
    int x;
    string s = 5;
    x = "a";
    x = 1.5;
    s = s + x;
    cout << x << s;
}`,
			want: []string{
				"Semantic error at line 3, column 14: cannot initialize `s` of type string with a value of type int",
				"Semantic error at line 4, column 7: cannot assign a value of type string to `x` of type int",
				"Semantic error at line 5, column 7: cannot assign a value of type float to `x` of type int",
			},
		},
		{
			name: "void variables",
			src: `void f(void a) {
}
main {
    void x;
}`,
			want: []string{
				"Semantic error at line 1, column 13: parameter `a` cannot have type void",
				"Semantic error at line 4, column 5: variables cannot have type `void`",
			},
		},
		{
			name: "scopes",
			src: `int f() {
    return 1;
}
main {
    int x;
    x = f;
    if (1) then
        int y;
        y = 2;
    end
    x = y;
}`,
			want: []string{
				"Semantic error at line 6, column 9: function `f` cannot be used as a variable",
				"Semantic error at line 11, column 9: undeclared identifier `y`",
			},
		},
		{
			name: "case scopes are separate",
			src: `main {
    int n = 2;
    switch (n) {
        case 1:
            int z = 1;
            cout << z;
        case 2:
            int z = 2;
            cout << z;
    }
}`,
		},
		{
			name: "for variable is scoped to the loop",
			src: `main {
    for (int i = 0; i < 3; i++)
        cout << i;
    end
    i = 1;
}`,
			want: []string{
				"Semantic error at line 5, column 5: undeclared identifier `i`",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := walkSource(t, tt.src)

			got := report.Messages(w.Errors())
			if len(got) == 0 {
				got = nil
			}

			if diff := pretty.Diff(tt.want, got); len(diff) > 0 {
				t.Errorf("errors differ:\n%s", diff)
			}
		})
	}
}

func TestUnusedVariableWarning(t *testing.T) {
	w, _ := walkSource(t, `main {
    int unused;
    int used;
    used = 1;
    cout << used;
}`)

	if len(w.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", report.Messages(w.Errors()))
	}

	want := []string{
		"Semantic warning at line 2, column 9: variable `unused` is declared but never used",
	}
	if diff := pretty.Diff(want, report.Messages(w.Warnings())); len(diff) > 0 {
		t.Errorf("warnings differ:\n%s", diff)
	}
}

func TestIntPromotedOnAssignment(t *testing.T) {
	w, root := walkSource(t, "main { int x; float y; y = x + 1; cout << y; }")

	if len(w.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", report.Messages(w.Errors()))
	}

	assign := find(root, ast.ASSIGNMENT)[0]
	if assign.Type != typing.Float {
		t.Errorf("assignment resolved to %s, want float", assign.Type)
	}

	if sum := assign.Child(1); sum.Type != typing.Int {
		t.Errorf("`x + 1` resolved to %s, want int", sum.Type)
	}
}

func TestAnnotations(t *testing.T) {
	w, root := walkSource(t, "main { int a; a = 2 + 3; cout << a; }")

	if len(w.Errors()) > 0 {
		t.Fatalf("unexpected errors: %v", report.Messages(w.Errors()))
	}

	type annotation struct {
		Type  string
		Scope string
		State string
	}

	var got []annotation
	for _, ident := range find(root, ast.IDENTIFIER) {
		got = append(got, annotation{ident.Type.String(), ident.Scope, ident.State.String()})
	}

	want := []annotation{
		{"int", "main", "declared"},
		{"int", "main", "modified"},
		{"int", "main", "used"},
	}
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Errorf("identifier annotations differ:\n%s", diff)
	}

	if sum := find(root, ast.BINARY_OP)[0]; sum.Type != typing.Int {
		t.Errorf("`2 + 3` resolved to %s, want int", sum.Type)
	}
}

func TestHashTableMaterialization(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		w, _ := walkSource(t, `int f(int a) {
    return a;
}
main {
    int b = f(1);
    cout << b;
}`)

		ht := w.HashTable()
		if ht == nil {
			t.Fatal("no hash table was materialized")
		}

		if ht.Len() != 3 {
			t.Errorf("hash table holds %d entries, want 3", ht.Len())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		w, _ := walkSource(t, "main { x = 1; }")

		if w.HashTable() != nil {
			t.Error("a hash table was materialized despite errors")
		}
	})
}

func TestAnalyze(t *testing.T) {
	tokens, _ := syntax.Lex("main { int a; a = 1; cout << a; }")
	root, _ := syntax.Parse(tokens)

	errs, table := Analyze(root)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", report.Messages(errs))
	}

	var names []string
	for _, scope := range table.History() {
		names = append(names, scope.Name)
	}

	if diff := pretty.Diff([]string{"global", "main"}, names); len(diff) > 0 {
		t.Errorf("scopes differ:\n%s", diff)
	}
}
