package symtab

// Scope is a single named lexical scope.
type Scope struct {
	Name string

	// Depth is the number of scopes enclosing this scope.
	Depth int

	symbols map[string]*Symbol

	// order lists the symbols in definition order.
	order []*Symbol
}

func newScope(name string, depth int) *Scope {
	return &Scope{
		Name:    name,
		Depth:   depth,
		symbols: make(map[string]*Symbol),
	}
}

// Lookup looks up a symbol defined directly in the scope.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Symbols returns the symbols of the scope in definition order.
func (s *Scope) Symbols() []*Symbol {
	return s.order
}

// -----------------------------------------------------------------------------

// The base and the stride of symbol addresses.
const (
	BaseAddress = 1000
	AddressStep = 4
)

// Table is a stack of scopes.  Every scope ever pushed is also kept in the
// table's history so that the table can be inspected after analysis.
type Table struct {
	stack   []*Scope
	history []*Scope

	nextAddress int
}

// NewTable creates a new table holding only the global scope.
func NewTable() *Table {
	t := &Table{nextAddress: BaseAddress}
	t.Push("global")
	return t
}

// Push pushes a new scope onto the stack.
func (t *Table) Push(name string) *Scope {
	s := newScope(name, len(t.stack))
	t.stack = append(t.stack, s)
	t.history = append(t.history, s)
	return s
}

// Pop pops the innermost scope.  The global scope is never popped.
func (t *Table) Pop() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// Current returns the innermost scope.
func (t *Table) Current() *Scope {
	return t.stack[len(t.stack)-1]
}

// Global returns the global scope.
func (t *Table) Global() *Scope {
	return t.stack[0]
}

// Depth returns the number of live scopes.
func (t *Table) Depth() int {
	return len(t.stack)
}

// Define defines sym in the current scope and assigns it an address.  It
// returns false if the current scope already defines a symbol by that name.
func (t *Table) Define(sym *Symbol) bool {
	cur := t.Current()
	if _, ok := cur.symbols[sym.Name]; ok {
		return false
	}

	sym.Scope = cur.Name
	sym.Address = t.nextAddress
	t.nextAddress += AddressStep

	cur.symbols[sym.Name] = sym
	cur.order = append(cur.order, sym)
	return true
}

// Lookup looks up a symbol from the innermost scope out to the global scope.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if sym, ok := t.stack[i].symbols[name]; ok {
			return sym, true
		}
	}

	return nil, false
}

// History returns every scope pushed so far in the order they were pushed.
func (t *Table) History() []*Scope {
	return t.history
}

// Materialize builds a chained hash table of size buckets over every symbol
// in the table's history.
func (t *Table) Materialize(size int) *HashTable {
	ht := NewHashTable(size)
	for _, scope := range t.history {
		for _, sym := range scope.order {
			ht.Insert(&Entry{
				Name:    sym.Name,
				Type:    sym.TypeString(),
				Scope:   scope.Name,
				Line:    sym.DefSpan.StartLine,
				Col:     sym.DefSpan.StartCol,
				Address: sym.AddressString(),
			})
		}
	}

	return ht
}
