package ast

import (
	"testing"
)

func TestNewNodeDropsNil(t *testing.T) {
	n := NewNode(BLOCK, "", 1, 1, nil, NewNode(IDENTIFIER, "x", 1, 2), nil)

	if n.Len() != 1 {
		t.Fatalf("expected one child, got %d", n.Len())
	}

	if n.Child(1) != nil || n.Child(-1) != nil {
		t.Errorf("out of range children must be nil")
	}
}

func TestSpan(t *testing.T) {
	tests := []struct {
		name      string
		node      *Node
		wantWidth int
	}{
		{"identifier", NewNode(IDENTIFIER, "count", 3, 4), 5},
		{"string", NewNode(STRING, "ab", 1, 1), 4},
		{"statement", NewNode(IF_STATEMENT, "", 2, 1), 1},
		{"operator", NewNode(BINARY_OP, "<=", 1, 7), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := tt.node.Span()
			if span.StartLine != tt.node.Line || span.StartCol != tt.node.Col {
				t.Errorf("span starts at %d:%d, want %d:%d", span.StartLine, span.StartCol, tt.node.Line, tt.node.Col)
			}

			if got := span.EndCol - span.StartCol; got != tt.wantWidth {
				t.Errorf("span width is %d, want %d", got, tt.wantWidth)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	root := NewNode(BINARY_OP, "+", 1, 1,
		NewNode(UNARY_OP, "-", 1, 1, NewNode(NUMBER, "1", 1, 2)),
		NewNode(IDENTIFIER, "x", 1, 6),
	)

	var kinds []string
	Inspect(root, func(n *Node) bool {
		kinds = append(kinds, KindName(n.Kind))
		return n.Kind != UNARY_OP
	})

	want := []string{"BINARY_OP", "UNARY_OP", "IDENTIFIER"}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}

	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visited %v, want %v", kinds, want)
			break
		}
	}
}

func TestAcceptPanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic")
		}
	}()

	Format(&Node{Kind: -1})
}

func TestFormat(t *testing.T) {
	ident := func(name string) *Node { return NewNode(IDENTIFIER, name, 1, 1) }
	num := func(value string) *Node { return NewNode(NUMBER, value, 1, 1) }

	root := NewNode(PROGRAM, "", 1, 1,
		NewNode(MAIN, "", 1, 1,
			NewNode(BLOCK, "", 1, 1,
				NewNode(DECLARATION, "int", 1, 1,
					ident("a"),
					NewNode(ASSIGNMENT, "=", 1, 1, ident("b"), num("2")),
				),
				NewNode(IF_STATEMENT, "", 1, 1,
					NewNode(BINARY_OP, "<", 1, 1, ident("a"), ident("b")),
					NewNode(BLOCK, "", 1, 1,
						NewNode(OUTPUT_STATEMENT, "", 1, 1,
							NewNode(STRING, "say \"hi\"\n", 1, 1),
							NewNode(UNARY_OP, "-", 1, 1, NewNode(UNARY_OP, "-", 1, 1, ident("a"))),
						),
					),
					NewNode(BLOCK, "", 1, 1,
						NewNode(FUNCTION_CALL, "f", 1, 1, ident("a"), num("1.5")),
					),
				),
			),
		),
	)

	want := `main {
    int a, b = 2;
    if ((a < b)) then
        cout << "say \"hi\"\n" << -(-a);
    else
        f(a, 1.5);
    end
}
`

	if got := Format(root); got != want {
		t.Errorf("Format produced:\n%s\nwant:\n%s", got, want)
	}
}
