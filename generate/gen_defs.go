package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"keidec/ast"
	"keidec/report"
	"keidec/typing"
)

// VisitProgram generates the whole program.  All functions are declared
// before any body is generated so that calls never depend on declaration
// order.  Functions are emitted in source order followed by `main`.
func (g *Generator) VisitProgram(n *ast.Node) value.Value {
	for _, def := range n.Children {
		if def.Kind == ast.FUNCTION_DECLARATION {
			g.declareFunc(def)
		}
	}

	for _, def := range n.Children {
		g.gen(def)
	}

	return nil
}

// declareFunc declares the IR function of a function declaration.
func (g *Generator) declareFunc(n *ast.Node) {
	var params []*ir.Param
	for _, param := range n.Child(1).Children {
		params = append(params, ir.NewParam(param.Value, convType(typeOf(param.Child(0)))))
	}

	fn := g.mod.NewFunc(funcName(n.Value), convType(typeOf(n.Child(0))), params...)
	g.funcs[n.Value] = fn
}

// runtimeNames are the names of the C runtime functions the generator may
// declare.
var runtimeNames = map[string]struct{}{
	"main":    {},
	"printf":  {},
	"scanf":   {},
	"malloc":  {},
	"strlen":  {},
	"sprintf": {},
	"strcmp":  {},
}

// funcName returns the IR name of a program function.  Functions which would
// collide with a runtime function are prefixed.
func funcName(name string) string {
	if _, ok := runtimeNames[name]; ok {
		return "kd." + name
	}

	return name
}

// typeOf returns the type named by a TYPE node.
func typeOf(n *ast.Node) typing.Type {
	typ, ok := typing.FromName(n.Value)
	if !ok {
		report.Throw("unknown type name `%s`", n.Value)
	}

	return typ
}

func (g *Generator) VisitFuncDecl(n *ast.Node) value.Value {
	fn := g.lookupFunc(n.Value)
	g.beginFunc(fn, typeOf(n.Child(0)))

	g.pushScope()
	defer g.popScope()

	g.gen(n.Child(1))
	g.gen(n.Child(2))

	g.endFunc()
	return nil
}

// VisitParamList spills every parameter into its own stack slot so that
// parameters can be assigned like any other variable.
func (g *Generator) VisitParamList(n *ast.Node) value.Value {
	for i, param := range n.Children {
		slot := g.allocSlot(param.Value, typeOf(param.Child(0)))
		g.block.NewStore(g.enclosingFunc.Params[i], slot)
	}

	return nil
}

func (g *Generator) VisitParam(n *ast.Node) value.Value {
	report.Throw("parameter `%s` generated outside of its parameter list", n.Value)
	return nil
}

func (g *Generator) VisitType(n *ast.Node) value.Value {
	report.Throw("type `%s` generated as a value", n.Value)
	return nil
}

// VisitMain generates the program's entry point: `i32 @main()`.
func (g *Generator) VisitMain(n *ast.Node) value.Value {
	fn := g.mod.NewFunc("main", types.I32)
	g.beginFunc(fn, typing.Int)

	g.pushScope()
	defer g.popScope()

	g.gen(n.Child(0))

	g.endFunc()
	return nil
}

// VisitBlock generates the statements of a block.  Statements following a
// terminated block are unreachable and are not generated.
func (g *Generator) VisitBlock(n *ast.Node) value.Value {
	for _, stmt := range n.Children {
		if g.block.Term != nil {
			break
		}

		g.gen(stmt)
	}

	return nil
}

func (g *Generator) VisitDeclaration(n *ast.Node) value.Value {
	declType, ok := typing.FromName(n.Value)
	if !ok {
		report.Throw("unknown type name `%s`", n.Value)
	}

	for _, child := range n.Children {
		if child.Kind == ast.ASSIGNMENT {
			// the initializer cannot see the variable it initializes
			initExpr := child.Child(1)
			val := g.genCast(g.gen(initExpr), exprType(initExpr), declType)

			slot := g.allocSlot(child.Child(0).Value, declType)
			g.block.NewStore(val, slot)
		} else {
			g.allocSlot(child.Value, declType)
		}
	}

	return nil
}

// genDefaultReturn terminates the current block with the zero value of the
// current function's return type.
func (g *Generator) genDefaultReturn() {
	switch g.retType {
	case typing.Void:
		g.block.NewRet(nil)
	case typing.String:
		g.block.NewRet(g.genStringPtr(""))
	case typing.Int, typing.Float:
		g.block.NewRet(zeroOf(g.retType))
	default:
		report.Throw("function returns unsupported type %s", g.retType)
	}
}
