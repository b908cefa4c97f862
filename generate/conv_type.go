package generate

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"keidec/report"
	"keidec/typing"
)

// convType converts a language type into its IR type.
func convType(typ typing.Type) types.Type {
	switch typ {
	case typing.Int:
		return types.I32
	case typing.Float:
		return types.Float
	case typing.String:
		return i8Ptr
	case typing.Boolean:
		return types.I1
	case typing.Void:
		return types.Void
	}

	report.Throw("type %s has no IR representation", typ)
	return nil
}

// genCast converts val of type from into a value of type to.  Only the
// conversions allowed by the type checker are supported.
func (g *Generator) genCast(val value.Value, from, to typing.Type) value.Value {
	if from == to {
		return val
	}

	switch {
	case from == typing.Int && to == typing.Float:
		return g.block.NewSIToFP(val, types.Float)
	case from == typing.Float && to == typing.Int:
		return g.block.NewFPToSI(val, types.I32)
	case from == typing.Boolean && to == typing.Int:
		return g.block.NewZExt(val, types.I32)
	case from == typing.Boolean && to == typing.Float:
		return g.block.NewUIToFP(val, types.Float)
	}

	report.Throw("no conversion from %s to %s", from, to)
	return nil
}

// genTruth converts val of type typ into an `i1` truth value.  Numbers are
// true when they are not zero.
func (g *Generator) genTruth(val value.Value, typ typing.Type) value.Value {
	switch typ {
	case typing.Boolean:
		return val
	case typing.Int:
		return g.block.NewICmp(enum.IPredNE, val, zeroOf(typing.Int))
	case typing.Float:
		return g.block.NewFCmp(enum.FPredONE, val, zeroOf(typing.Float))
	}

	report.Throw("type %s cannot be used as a condition", typ)
	return nil
}

// zeroOf returns the zero constant of a numeric type.
func zeroOf(typ typing.Type) value.Value {
	if typ == typing.Float {
		return constant.NewFloat(types.Float, 0)
	}

	return constant.NewInt(types.I32, 0)
}
