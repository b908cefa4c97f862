package generate

import (
	"fmt"
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"keidec/ast"
	"keidec/report"
	"keidec/typing"
)

// genCond generates a condition as an `i1` value.
func (g *Generator) genCond(cond *ast.Node) value.Value {
	return g.genTruth(g.gen(cond), exprType(cond))
}

// genScopedBlock generates a block inside its own local scope.
func (g *Generator) genScopedBlock(block *ast.Node) {
	g.pushScope()
	defer g.popScope()

	g.gen(block)
}

// VisitIf generates an if statement.  The arms branch to a shared end block
// unless they return; the end block is dropped if no arm reaches it.
func (g *Generator) VisitIf(n *ast.Node) value.Value {
	label := g.nextLabel()
	thenBlock := g.newBlock("if.then", label)
	endBlock := g.newBlock("if.end", label)

	// if there is no else, then the false branch goes straight to the end
	elseBlock := endBlock
	if n.Child(2) != nil {
		elseBlock = g.newBlock("if.else", label)
	}

	g.condBr(g.genCond(n.Child(0)), thenBlock, elseBlock)

	g.setBlock(thenBlock)
	g.genScopedBlock(n.Child(1))
	if g.block.Term == nil {
		g.br(endBlock)
	}

	if elseBlock != endBlock {
		g.setBlock(elseBlock)
		g.genScopedBlock(n.Child(2))
		if g.block.Term == nil {
			g.br(endBlock)
		}
	}

	if g.reachable(endBlock) {
		g.setBlock(endBlock)
	}

	return nil
}

// VisitWhile generates a while loop: the header tests the condition before
// every iteration.
func (g *Generator) VisitWhile(n *ast.Node) value.Value {
	label := g.nextLabel()
	headerBlock := g.newBlock("while.header", label)
	bodyBlock := g.newBlock("while.body", label)
	endBlock := g.newBlock("while.end", label)

	g.br(headerBlock)

	g.setBlock(headerBlock)
	g.condBr(g.genCond(n.Child(0)), bodyBlock, endBlock)

	g.setBlock(bodyBlock)
	g.genScopedBlock(n.Child(1))
	if g.block.Term == nil {
		g.br(headerBlock)
	}

	g.setBlock(endBlock)
	return nil
}

// VisitDoUntil generates a do-until loop: the body runs once before the
// condition is tested and the loop exits once the condition is true.
func (g *Generator) VisitDoUntil(n *ast.Node) value.Value {
	label := g.nextLabel()
	bodyBlock := g.newBlock("do.body", label)
	endBlock := g.newBlock("do.end", label)

	g.br(bodyBlock)

	g.setBlock(bodyBlock)
	g.genScopedBlock(n.Child(0))

	// a body which always returns never tests its condition
	if g.block.Term == nil {
		g.condBr(g.genCond(n.Child(1)), endBlock, bodyBlock)
	}

	if g.reachable(endBlock) {
		g.setBlock(endBlock)
	}

	return nil
}

// VisitFor generates a for loop as four blocks: header, body, step and end.
// The loop variable lives in a scope enclosing the whole loop.
func (g *Generator) VisitFor(n *ast.Node) value.Value {
	g.pushScope()
	defer g.popScope()

	g.gen(n.Child(0))

	label := g.nextLabel()
	headerBlock := g.newBlock("for.header", label)
	bodyBlock := g.newBlock("for.body", label)
	stepBlock := g.newBlock("for.step", label)
	endBlock := g.newBlock("for.end", label)

	g.br(headerBlock)

	g.setBlock(headerBlock)
	g.condBr(g.genCond(n.Child(1)), bodyBlock, endBlock)

	g.setBlock(bodyBlock)
	g.gen(n.Child(3))
	if g.block.Term == nil {
		g.br(stepBlock)
	}

	if g.reachable(stepBlock) {
		g.setBlock(stepBlock)
		g.gen(n.Child(2))
		g.br(headerBlock)
	}

	g.setBlock(endBlock)
	return nil
}

// VisitSwitch generates a switch statement as a multi-way branch to one block
// per label.  A switch without a default label gets an empty default block.
// Labels never fall through into each other.
func (g *Generator) VisitSwitch(n *ast.Node) value.Value {
	disc := g.gen(n.Child(0))
	if exprType(n.Child(0)) != typing.Int {
		report.Throw("switch discriminant of type %s", n.Child(0).Type)
	}

	label := g.nextLabel()
	endBlock := g.newBlock("switch.end", label)

	labels := n.Children[1:]
	labelBlocks := make([]*ir.Block, len(labels))

	var defaultBlock *ir.Block
	var cases []*ir.Case
	for i, labelNode := range labels {
		switch labelNode.Kind {
		case ast.CASE_BLOCK:
			caseValue, err := strconv.ParseInt(labelNode.Value, 10, 32)
			if err != nil {
				report.Throw("invalid case value `%s`", labelNode.Value)
			}

			labelBlocks[i] = g.newBlock(fmt.Sprintf("switch.case%d", i), label)
			cases = append(cases, ir.NewCase(constant.NewInt(types.I32, caseValue), labelBlocks[i]))
		case ast.DEFAULT_BLOCK:
			labelBlocks[i] = g.newBlock("switch.default", label)
			defaultBlock = labelBlocks[i]
		}
	}

	synthesizedDefault := defaultBlock == nil
	if synthesizedDefault {
		defaultBlock = g.newBlock("switch.default", label)
	}

	g.preds[defaultBlock]++
	for _, block := range labelBlocks {
		g.preds[block]++
	}
	g.block.NewSwitch(disc, defaultBlock, cases...)

	g.pushScope()
	defer g.popScope()

	for i, labelNode := range labels {
		g.setBlock(labelBlocks[i])
		g.gen(labelNode)

		if g.block.Term == nil {
			g.br(endBlock)
		}
	}

	if synthesizedDefault {
		g.setBlock(defaultBlock)
		g.br(endBlock)
	}

	if g.reachable(endBlock) {
		g.setBlock(endBlock)
	}

	return nil
}

func (g *Generator) VisitCase(n *ast.Node) value.Value {
	g.genScopedBlock(n.Child(0))
	return nil
}

func (g *Generator) VisitDefault(n *ast.Node) value.Value {
	g.genScopedBlock(n.Child(0))
	return nil
}
