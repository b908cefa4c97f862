package walk

import (
	"keidec/ast"
	"keidec/symtab"
	"keidec/typing"
)

// VisitAssignment walks an assignment statement, including the desugared
// forms of `++` and `--`.  A valid assignment resolves to the type of its
// target: an int value stored into a float is promoted.
func (w *Walker) VisitAssignment(n *ast.Node) typing.Type {
	target := n.Child(0)
	target.Scope = w.table.Current().Name

	sym, ok := w.lookupVariable(target)
	if !ok {
		// the value is still checked so that its names are resolved
		w.visit(n.Child(1))
		return typing.Unresolved
	}

	target.Type = sym.Type
	target.State = ast.StateModified
	sym.Modified = true

	if n.Value == "++" || n.Value == "--" {
		if !sym.Type.IsNumeric() && sym.Type != typing.Error {
			w.errorOn(n, "operator `%s` cannot be applied to `%s` of type %s", n.Value, target.Value, sym.Type)
			return typing.Unresolved
		}
	}

	valueType := w.visit(n.Child(1))
	if !typing.Assignable(sym.Type, valueType) {
		w.errorOn(n, "cannot assign a value of type %s to `%s` of type %s", valueType, target.Value, sym.Type)
		return typing.Unresolved
	}

	// the assignment is annotated with the type its value is stored as
	return sym.Type
}

// lookupVariable looks up the variable named by an identifier node.  Errors
// are reported if the name is undeclared or names a function.
func (w *Walker) lookupVariable(ident *ast.Node) (*symtab.Symbol, bool) {
	sym, ok := w.lookup(ident)
	if !ok {
		ident.Type = typing.Error
		return nil, false
	}

	if sym.IsFunc() {
		w.errorOn(ident, "function `%s` cannot be used as a variable", ident.Value)
		ident.Type = typing.Error
		return nil, false
	}

	return sym, true
}

func (w *Walker) VisitInput(n *ast.Node) typing.Type {
	for _, ident := range n.Children {
		ident.Scope = w.table.Current().Name

		if sym, ok := w.lookupVariable(ident); ok {
			ident.Type = sym.Type
			ident.State = ast.StateModified
			sym.Modified = true
		}
	}

	return typing.Unresolved
}

func (w *Walker) VisitOutput(n *ast.Node) typing.Type {
	for _, expr := range n.Children {
		if w.visit(expr) == typing.Void {
			w.errorOn(expr, "cannot output a value of type void")
		}
	}

	return typing.Unresolved
}

// VisitReturn checks a return statement against the return type of the
// enclosing function.
func (w *Walker) VisitReturn(n *ast.Node) typing.Type {
	valueType := typing.Void
	if value := n.Child(0); value != nil {
		valueType = w.visit(value)
	}

	if w.enclosingFunc == nil {
		w.errorOn(n, "`return` outside of a function body")
		return typing.Unresolved
	}

	fn := w.enclosingFunc
	switch {
	case fn.Type == typing.Void && n.Len() > 0:
		w.errorOn(n, "function `%s` returns void but a value is returned", fn.Name)
	case fn.Type != typing.Void && n.Len() == 0:
		w.errorOn(n, "function `%s` must return a value of type %s", fn.Name, fn.Type)
	case fn.Type != typing.Void && !typing.Assignable(fn.Type, valueType):
		w.errorOn(n, "cannot return a value of type %s from function `%s` returning %s", valueType, fn.Name, fn.Type)
	}

	return typing.Unresolved
}
