package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
)

// Verify checks the structural well-formedness of a generated module: every
// block of a defined function ends in exactly one terminator and every block
// is reachable from the entry block of its function.
func Verify(mod *ir.Module) error {
	for _, fn := range mod.Funcs {
		// declarations have no body to check
		if len(fn.Blocks) == 0 {
			continue
		}

		if err := verifyFunc(fn); err != nil {
			return err
		}
	}

	return nil
}

func verifyFunc(fn *ir.Func) error {
	for _, block := range fn.Blocks {
		if block.Term == nil {
			return fmt.Errorf("block `%s` of function `%s` has no terminator", block.Name(), fn.Name())
		}
	}

	reached := make(map[*ir.Block]bool)
	worklist := []*ir.Block{fn.Blocks[0]}
	for len(worklist) > 0 {
		block := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if reached[block] {
			continue
		}
		reached[block] = true

		for _, succ := range block.Term.Succs() {
			if succ.Parent != fn {
				return fmt.Errorf("block `%s` of function `%s` branches to a block outside of the function", block.Name(), fn.Name())
			}

			worklist = append(worklist, succ)
		}
	}

	for _, block := range fn.Blocks {
		if !reached[block] {
			return fmt.Errorf("block `%s` of function `%s` is unreachable", block.Name(), fn.Name())
		}
	}

	return nil
}
