package walk

import (
	"keidec/ast"
	"keidec/symtab"
	"keidec/typing"
)

func (w *Walker) VisitProgram(n *ast.Node) typing.Type {
	for _, def := range n.Children {
		w.visit(def)
	}

	return typing.Unresolved
}

// VisitFuncDecl walks a function declaration.  The function's symbol is
// defined before its body is walked so that the function may call itself.
func (w *Walker) VisitFuncDecl(n *ast.Node) typing.Type {
	retType := w.visit(n.Child(0))

	params := n.Child(1)
	paramTypes := make([]typing.Type, params.Len())
	for i, param := range params.Children {
		paramTypes[i] = w.resolveTypeName(param.Child(0))
		if paramTypes[i] == typing.Void {
			paramTypes[i] = typing.Error
		}
	}

	fnSym := &symtab.Symbol{
		Name:       n.Value,
		DefSpan:    n.Span(),
		Type:       retType,
		DefKind:    symtab.DefKindFunc,
		ParamTypes: paramTypes,
	}
	w.define(fnSym)

	prevFunc := w.enclosingFunc
	w.enclosingFunc = fnSym
	defer func() {
		w.enclosingFunc = prevFunc
	}()

	w.withScope(n.Value, func() {
		w.visit(params)
		w.visit(n.Child(2))
	})

	return retType
}

func (w *Walker) VisitParamList(n *ast.Node) typing.Type {
	for _, param := range n.Children {
		w.visit(param)
	}

	return typing.Unresolved
}

func (w *Walker) VisitParam(n *ast.Node) typing.Type {
	typ := w.visit(n.Child(0))
	if typ == typing.Void {
		w.errorOn(n, "parameter `%s` cannot have type void", n.Value)
		typ = typing.Error
	}

	w.define(&symtab.Symbol{
		Name:    n.Value,
		DefSpan: n.Span(),
		Type:    typ,
		DefKind: symtab.DefKindParam,
	})

	n.State = ast.StateDeclared
	return typ
}

func (w *Walker) VisitType(n *ast.Node) typing.Type {
	return w.resolveTypeName(n)
}

// resolveTypeName returns the type named by a type node's keyword.
func (w *Walker) resolveTypeName(n *ast.Node) typing.Type {
	if typ, ok := typing.FromName(n.Value); ok {
		return typ
	}

	w.errorOn(n, "unknown type `%s`", n.Value)
	return typing.Error
}

func (w *Walker) VisitMain(n *ast.Node) typing.Type {
	w.withScope("main", func() {
		w.visit(n.Child(0))
	})

	return typing.Unresolved
}

// VisitBlock walks a list of statements.  The construct owning the block is
// responsible for pushing its scope.
func (w *Walker) VisitBlock(n *ast.Node) typing.Type {
	for _, stmt := range n.Children {
		w.visit(stmt)
	}

	return typing.Unresolved
}

// VisitDeclaration walks a variable declaration.  Initializers are checked
// before the variable is defined: a variable is not visible in its own
// initializer.
func (w *Walker) VisitDeclaration(n *ast.Node) typing.Type {
	declType, ok := typing.FromName(n.Value)
	if !ok || declType == typing.Void {
		w.errorOn(n, "variables cannot have type `%s`", n.Value)
		declType = typing.Error
	}

	for _, child := range n.Children {
		ident := child
		initial := ""

		if child.Kind == ast.ASSIGNMENT {
			ident = child.Child(0)
			value := child.Child(1)

			child.Scope = w.table.Current().Name
			valueType := w.visit(value)
			if typing.Assignable(declType, valueType) {
				child.Type = declType
			} else {
				w.errorOn(child, "cannot initialize `%s` of type %s with a value of type %s", ident.Value, declType, valueType)
			}

			switch value.Kind {
			case ast.NUMBER, ast.STRING, ast.BOOLEAN:
				initial = value.Value
			}
		}

		ident.Scope = w.table.Current().Name
		ident.Type = declType
		ident.State = ast.StateDeclared

		w.define(&symtab.Symbol{
			Name:    ident.Value,
			DefSpan: ident.Span(),
			Type:    declType,
			DefKind: symtab.DefKindVar,
			Initial: initial,
		})
	}

	return typing.Unresolved
}
