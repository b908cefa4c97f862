package symtab

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"keidec/report"
	"keidec/typing"
)

func newVar(name string, typ typing.Type, line, col int) *Symbol {
	return &Symbol{
		Name:    name,
		DefSpan: report.NewSpan(line, col, len(name)),
		Type:    typ,
		DefKind: DefKindVar,
	}
}

func TestTableScoping(t *testing.T) {
	table := NewTable()

	if !table.Define(newVar("x", typing.Int, 1, 1)) {
		t.Fatalf("failed to define x in the global scope")
	}

	table.Push("main")
	if !table.Define(newVar("x", typing.Float, 2, 1)) {
		t.Fatalf("shadowing x in an inner scope must succeed")
	}

	if table.Define(newVar("x", typing.String, 3, 1)) {
		t.Errorf("redefining x in the same scope must fail")
	}

	sym, ok := table.Lookup("x")
	if !ok || sym.Type != typing.Float || sym.Scope != "main" {
		t.Errorf("inner lookup found %# v", pretty.Formatter(sym))
	}

	table.Pop()

	sym, ok = table.Lookup("x")
	if !ok || sym.Type != typing.Int || sym.Scope != "global" {
		t.Errorf("outer lookup found %# v", pretty.Formatter(sym))
	}

	// the global scope is never popped
	table.Pop()
	if table.Depth() != 1 || table.Current() != table.Global() {
		t.Errorf("the global scope was popped")
	}

	if _, ok := table.Lookup("y"); ok {
		t.Errorf("found undeclared y")
	}

	var names []string
	for _, scope := range table.History() {
		names = append(names, scope.Name)
	}

	if diff := pretty.Diff([]string{"global", "main"}, names); len(diff) > 0 {
		t.Errorf("history differs:\n%s", strings.Join(diff, "\n"))
	}
}

func TestAddresses(t *testing.T) {
	table := NewTable()

	a := newVar("a", typing.Int, 1, 1)
	b := newVar("b", typing.Int, 1, 4)
	dup := newVar("a", typing.Int, 2, 1)
	table.Define(a)
	table.Define(b)
	table.Define(dup)

	if a.AddressString() != "@1000" || b.AddressString() != "@1004" {
		t.Errorf("addresses are %s and %s, want @1000 and @1004", a.AddressString(), b.AddressString())
	}

	// rejected definitions do not consume an address
	c := newVar("c", typing.Int, 3, 1)
	table.Define(c)
	if c.Address != 1008 {
		t.Errorf("c has address %d, want 1008", c.Address)
	}
}

func TestTypeString(t *testing.T) {
	fn := &Symbol{
		Name:       "f",
		Type:       typing.Int,
		DefKind:    DefKindFunc,
		ParamTypes: []typing.Type{typing.Int, typing.Float},
	}

	if got := fn.TypeString(); got != "function(int, float) -> int" {
		t.Errorf("function type is %q", got)
	}

	noParams := &Symbol{Name: "g", Type: typing.Void, DefKind: DefKindFunc}
	if got := noParams.TypeString(); got != "function() -> void" {
		t.Errorf("function type is %q", got)
	}

	if got := newVar("s", typing.String, 1, 1).TypeString(); got != "string" {
		t.Errorf("variable type is %q", got)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		// 'a' = 97
		{"a", 16, 1},
		// 'a' + 'b' = 195
		{"ab", 16, 3},
		{"ba", 16, 3},
		{"x", 10, 0},
		{"", 16, 0},
	}

	for _, tt := range tests {
		if got := Hash(tt.name, tt.size); got != tt.want {
			t.Errorf("Hash(%q, %d) = %d, want %d", tt.name, tt.size, got, tt.want)
		}
	}
}

func TestMaterialize(t *testing.T) {
	table := NewTable()
	table.Define(newVar("ab", typing.Int, 1, 1))

	table.Push("main")
	table.Define(newVar("ba", typing.Float, 2, 5))
	table.Define(newVar("ab", typing.String, 3, 5))
	table.Pop()

	ht := table.Materialize(16)
	if ht.Size() != 16 || ht.Len() != 3 {
		t.Fatalf("hash table has %d buckets and %d entries", ht.Size(), ht.Len())
	}

	// all three names collide in bucket 3 and are chained in definition order
	want := []*Entry{
		{Name: "ab", Type: "int", Scope: "global", Line: 1, Col: 1, Address: "@1000"},
		{Name: "ba", Type: "float", Scope: "main", Line: 2, Col: 5, Address: "@1004"},
		{Name: "ab", Type: "string", Scope: "main", Line: 3, Col: 5, Address: "@1008"},
	}

	if diff := pretty.Diff(want, ht.Buckets[3]); len(diff) > 0 {
		t.Errorf("bucket differs:\n%s", strings.Join(diff, "\n"))
	}

	if found := ht.Lookup("ab"); len(found) != 2 {
		t.Errorf("found %d entries for ab, want 2", len(found))
	}

	if found := ht.Lookup("zz"); len(found) != 0 {
		t.Errorf("found entries for zz")
	}
}

func TestNewHashTableDefaultSize(t *testing.T) {
	if size := NewHashTable(0).Size(); size != DefaultHashSize {
		t.Errorf("default size is %d, want %d", size, DefaultHashSize)
	}
}
