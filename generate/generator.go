package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"keidec/ast"
	"keidec/common"
	"keidec/report"
	"keidec/typing"
)

// Options configures the module produced by a generator.
type Options struct {
	// ModuleName is recorded as the source file name of the module.
	ModuleName string

	// TargetTriple is the target of the module.  The host triple is used if it
	// is empty.
	TargetTriple string
}

// Generator is responsible for converting a checked program tree into an LLVM
// IR module.  A generator must only be used for a single tree.
type Generator struct {
	// mod is the module being generated.
	mod *ir.Module

	// funcs maps the names of the program's functions to their IR functions.
	funcs map[string]*ir.Func

	// runtime holds the external functions of the C runtime which have been
	// declared so far.
	runtime map[string]*ir.Func

	// globals holds the format strings and interned string literals which
	// have been defined so far keyed by their content.
	formats map[string]*ir.Global
	strlits map[string]*ir.Global

	// globalCounter is used to name string literal globals.
	globalCounter int

	// enclosingFunc is the function whose body is being generated.
	enclosingFunc *ir.Func

	// retType is the return type of enclosingFunc.
	retType typing.Type

	// block is the block instructions are currently appended to.
	block *ir.Block

	// labelCounter numbers the control constructs of the current function.
	labelCounter int

	// preds counts the branches into every block of the current function.
	preds map[*ir.Block]int

	// localScopes is the stack of scopes mapping variable names to their
	// stack slots.
	localScopes []map[string]*ir.InstAlloca

	// slotNames counts the stack slots allocated per variable name in the
	// current function so that every slot gets a unique name.
	slotNames map[string]int
}

// Generate converts the checked tree rooted at root into an IR module using
// the default options.  The tree must be free of errors: any inconsistency
// found is reported as an internal compiler error.
func Generate(root *ast.Node) (*ir.Module, error) {
	return GenerateWithOptions(root, Options{})
}

// GenerateWithOptions converts the checked tree rooted at root into an IR
// module configured by opts.
func GenerateWithOptions(root *ast.Node, opts Options) (mod *ir.Module, err error) {
	defer report.CatchICE(&err)

	g := &Generator{
		mod:     ir.NewModule(),
		funcs:   make(map[string]*ir.Func),
		runtime: make(map[string]*ir.Func),
		formats: make(map[string]*ir.Global),
		strlits: make(map[string]*ir.Global),
	}

	g.mod.SourceFilename = opts.ModuleName
	if g.mod.SourceFilename == "" {
		g.mod.SourceFilename = common.DefaultModuleName
	}

	g.mod.TargetTriple = opts.TargetTriple
	if g.mod.TargetTriple == "" {
		g.mod.TargetTriple = HostTriple()
	}

	if root.Kind != ast.PROGRAM {
		report.Throw("expected a PROGRAM node but got %s", ast.KindName(root.Kind))
	}

	g.gen(root)

	if err := Verify(g.mod); err != nil {
		report.Throw("%s", err)
	}

	return g.mod, nil
}

// gen generates n.
func (g *Generator) gen(n *ast.Node) value.Value {
	return ast.Accept[value.Value](n, g)
}

// -----------------------------------------------------------------------------

// beginFunc positions the generator at the entry block of fn.
func (g *Generator) beginFunc(fn *ir.Func, retType typing.Type) {
	g.enclosingFunc = fn
	g.retType = retType
	g.labelCounter = 0
	g.preds = make(map[*ir.Block]int)
	g.slotNames = make(map[string]int)
	g.localScopes = nil

	g.block = fn.NewBlock("entry")
}

// endFunc terminates the last block of the current function with the default
// return if control can fall off the end of the function.
func (g *Generator) endFunc() {
	if g.block.Term == nil {
		g.genDefaultReturn()
	}

	g.enclosingFunc = nil
	g.block = nil
}

// nextLabel returns a new construct number for block labels.
func (g *Generator) nextLabel() int {
	g.labelCounter++
	return g.labelCounter
}

// newBlock creates a new block labelled `name.label` which is not yet part of
// the current function.  It is only added to the function when the generator
// is positioned on it: blocks nothing branches to are never added.
func (g *Generator) newBlock(name string, label int) *ir.Block {
	return ir.NewBlock(fmt.Sprintf("%s.%d", name, label))
}

// setBlock appends block to the current function and positions the generator
// on it.
func (g *Generator) setBlock(block *ir.Block) {
	block.Parent = g.enclosingFunc
	g.enclosingFunc.Blocks = append(g.enclosingFunc.Blocks, block)
	g.block = block
}

// reachable returns whether anything branches to block.
func (g *Generator) reachable(block *ir.Block) bool {
	return g.preds[block] > 0
}

// br terminates the current block with a branch to target.
func (g *Generator) br(target *ir.Block) {
	g.preds[target]++
	g.block.NewBr(target)
}

// condBr terminates the current block with a conditional branch.
func (g *Generator) condBr(cond value.Value, ifTrue, ifFalse *ir.Block) {
	g.preds[ifTrue]++
	g.preds[ifFalse]++
	g.block.NewCondBr(cond, ifTrue, ifFalse)
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope onto the scope stack.
func (g *Generator) pushScope() {
	g.localScopes = append(g.localScopes, make(map[string]*ir.InstAlloca))
}

// popScope removes the top local scope from the scope stack.
func (g *Generator) popScope() {
	g.localScopes = g.localScopes[:len(g.localScopes)-1]
}

// allocSlot allocates a stack slot for a variable in the entry block of the
// current function and defines it in the current local scope.
func (g *Generator) allocSlot(name string, typ typing.Type) *ir.InstAlloca {
	slot := g.enclosingFunc.Blocks[0].NewAlloca(convType(typ))

	// slots are suffixed so that they never clash with parameters or labels
	if n := g.slotNames[name]; n > 0 {
		slot.SetName(fmt.Sprintf("%s.addr.%d", name, n))
	} else {
		slot.SetName(name + ".addr")
	}
	g.slotNames[name]++

	g.localScopes[len(g.localScopes)-1][name] = slot
	return slot
}

// lookupSlot returns the stack slot of the variable name.  A missing slot is
// an internal error: the semantic analyzer resolves every name.
func (g *Generator) lookupSlot(name string) *ir.InstAlloca {
	for i := len(g.localScopes) - 1; i >= 0; i-- {
		if slot, ok := g.localScopes[i][name]; ok {
			return slot
		}
	}

	report.Throw("no stack slot for variable `%s`", name)
	return nil
}

// lookupFunc returns the IR function of the program function name.
func (g *Generator) lookupFunc(name string) *ir.Func {
	if fn, ok := g.funcs[name]; ok {
		return fn
	}

	report.Throw("no IR function for `%s`", name)
	return nil
}

// exprType returns the resolved type of an expression node.
func exprType(n *ast.Node) typing.Type {
	switch n.Type {
	case typing.Unresolved, typing.Error:
		report.Throw("%s at %d:%d has no valid type", ast.KindName(n.Kind), n.Line, n.Col)
	}

	return n.Type
}

// i8Ptr is the type of strings.
var i8Ptr = types.NewPointer(types.I8)
