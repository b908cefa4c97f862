package generate

import (
	"github.com/llir/llvm/ir/value"

	"keidec/ast"
)

// VisitAssignment stores the value of an assignment into the target's stack
// slot.  Increments and decrements were desugared by the parser.
func (g *Generator) VisitAssignment(n *ast.Node) value.Value {
	target, valueExpr := n.Child(0), n.Child(1)
	slot := g.lookupSlot(target.Value)

	val := g.genCast(g.gen(valueExpr), exprType(valueExpr), exprType(target))
	g.block.NewStore(val, slot)
	return nil
}

// VisitReturn returns from the current function, converting the returned
// value to the function's return type.
func (g *Generator) VisitReturn(n *ast.Node) value.Value {
	if n.Len() == 0 {
		g.block.NewRet(nil)
		return nil
	}

	valueExpr := n.Child(0)
	val := g.genCast(g.gen(valueExpr), exprType(valueExpr), g.retType)
	g.block.NewRet(val)
	return nil
}
