package walk

import (
	"keidec/ast"
	"keidec/report"
	"keidec/symtab"
	"keidec/typing"
)

// Walker is responsible for walking a program tree and performing semantic
// analysis on it: it resolves every name, checks every statement and annotates
// every node it visits with its type, its scope and its usage state.  A
// walker must only be used for a single tree.
type Walker struct {
	// The scope stack used to define and lookup symbols.
	table *symtab.Table

	// The function whose body is being walked.  If this is `nil`, then there
	// is no enclosing function: ie. return statements are not valid.
	enclosingFunc *symtab.Symbol

	errors   []*report.Diagnostic
	warnings []*report.Diagnostic

	// The number of buckets of the materialized hash table.
	hashSize int

	// hash is the hash table materialized after a walk without errors.
	hash *symtab.HashTable
}

// NewWalker creates a new walker which materializes a hash table of hashSize
// buckets.  A size of zero selects the default size.
func NewWalker(hashSize int) *Walker {
	if hashSize <= 0 {
		hashSize = symtab.DefaultHashSize
	}

	return &Walker{
		table:    symtab.NewTable(),
		hashSize: hashSize,
	}
}

// Analyze semantically analyzes the tree rooted at root.  It returns the
// semantic errors found and the symbol table built during the walk.
func Analyze(root *ast.Node) ([]*report.Diagnostic, *symtab.Table) {
	w := NewWalker(symtab.DefaultHashSize)
	w.Walk(root)
	return w.errors, w.table
}

// Walk walks the tree rooted at root.  If no error was found, the chained
// hash table is materialized from the scope history.
func (w *Walker) Walk(root *ast.Node) {
	w.visit(root)

	if len(w.errors) == 0 {
		w.hash = w.table.Materialize(w.hashSize)
	}
}

// Errors returns the semantic errors found by the walk.
func (w *Walker) Errors() []*report.Diagnostic {
	return w.errors
}

// Warnings returns the warnings found by the walk.
func (w *Walker) Warnings() []*report.Diagnostic {
	return w.warnings
}

// Table returns the walker's symbol table.
func (w *Walker) Table() *symtab.Table {
	return w.table
}

// HashTable returns the materialized hash table or nil if the walk found
// errors.
func (w *Walker) HashTable() *symtab.HashTable {
	return w.hash
}

// -----------------------------------------------------------------------------

// visit visits n and annotates it with the current scope and the type it
// resolves to.  Statements resolve to no type.
func (w *Walker) visit(n *ast.Node) typing.Type {
	n.Scope = w.table.Current().Name

	typ := ast.Accept[typing.Type](n, w)
	if typ != typing.Unresolved {
		n.Type = typ
	}

	return typ
}

// withScope walks f inside a new scope named name.
func (w *Walker) withScope(name string, f func()) {
	w.table.Push(name)
	defer w.popScope()

	f()
}

// popScope pops the current scope, warning about all of its variables that
// were never used.
func (w *Walker) popScope() {
	for _, sym := range w.table.Current().Symbols() {
		if !sym.IsFunc() && !sym.Used && sym.Type != typing.Error {
			w.warn(sym.DefSpan, "variable `%s` is declared but never used", sym.Name)
		}
	}

	w.table.Pop()
}

// define defines sym in the current scope.  If the scope already defines a
// symbol with the same name, an error is reported on the new definition.
func (w *Walker) define(sym *symtab.Symbol) bool {
	if !w.table.Define(sym) {
		w.error(sym.DefSpan, "`%s` is already declared in this scope", sym.Name)
		return false
	}

	return true
}

// lookup looks up a symbol by name in all visible scopes.  If no symbol by the
// given name can be found, then an error is reported.
func (w *Walker) lookup(n *ast.Node) (*symtab.Symbol, bool) {
	if sym, ok := w.table.Lookup(n.Value); ok {
		return sym, true
	}

	w.errorOn(n, "undeclared identifier `%s`", n.Value)
	return nil, false
}

// -----------------------------------------------------------------------------

// error reports an error on the given span.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	w.errors = append(w.errors, report.Raise(report.Semantic, span, msg, args...))
}

// errorOn reports an error on the given node.
func (w *Walker) errorOn(n *ast.Node, msg string, args ...interface{}) {
	w.error(n.Span(), msg, args...)
}

// warn reports a warning on the given span.
func (w *Walker) warn(span *report.TextSpan, msg string, args ...interface{}) {
	w.warnings = append(w.warnings, report.Warn(report.Semantic, span, msg, args...))
}
