package generate

import (
	"strconv"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"keidec/ast"
	"keidec/report"
	"keidec/typing"
)

func (g *Generator) VisitIdentifier(n *ast.Node) value.Value {
	slot := g.lookupSlot(n.Value)
	return g.block.NewLoad(convType(exprType(n)), slot)
}

func (g *Generator) VisitNumber(n *ast.Node) value.Value {
	if exprType(n) == typing.Float {
		x, err := strconv.ParseFloat(n.Value, 32)
		if err != nil {
			report.Throw("invalid real literal `%s`", n.Value)
		}

		// the constant must be exactly representable as a float
		return constant.NewFloat(types.Float, float64(float32(x)))
	}

	x, err := strconv.ParseInt(n.Value, 10, 32)
	if err != nil {
		report.Throw("invalid integer literal `%s`", n.Value)
	}

	return constant.NewInt(types.I32, x)
}

func (g *Generator) VisitString(n *ast.Node) value.Value {
	return g.genStringPtr(n.Value)
}

func (g *Generator) VisitBoolean(n *ast.Node) value.Value {
	return constant.NewBool(n.Value == "true")
}

// -----------------------------------------------------------------------------

// intPredicates and floatPredicates map the relational operators to their
// comparison predicates.  Integers compare signed and floats compare ordered.
var intPredicates = map[string]enum.IPred{
	"<":  enum.IPredSLT,
	"<=": enum.IPredSLE,
	">":  enum.IPredSGT,
	">=": enum.IPredSGE,
	"==": enum.IPredEQ,
	"!=": enum.IPredNE,
}

var floatPredicates = map[string]enum.FPred{
	"<":  enum.FPredOLT,
	"<=": enum.FPredOLE,
	">":  enum.FPredOGT,
	">=": enum.FPredOGE,
	"==": enum.FPredOEQ,
	"!=": enum.FPredONE,
}

// VisitBinaryOp generates a binary operator.  Both operands are always
// evaluated: `&&` and `||` do not short-circuit.
func (g *Generator) VisitBinaryOp(n *ast.Node) value.Value {
	lhsNode, rhsNode := n.Child(0), n.Child(1)
	lhsType, rhsType := exprType(lhsNode), exprType(rhsNode)

	lhs := g.gen(lhsNode)
	rhs := g.gen(rhsNode)

	switch n.Value {
	case "&&":
		return g.block.NewAnd(g.genTruth(lhs, lhsType), g.genTruth(rhs, rhsType))
	case "||":
		return g.block.NewOr(g.genTruth(lhs, lhsType), g.genTruth(rhs, rhsType))
	case "<", "<=", ">", ">=", "==", "!=":
		return g.genCompare(n.Value, lhs, lhsType, rhs, rhsType)
	}

	if lhsType == typing.String {
		if n.Value != "+" {
			report.Throw("operator `%s` applied to a string", n.Value)
		}

		return g.genConcat(lhs, rhs, rhsType)
	}

	// numeric operands are converted to the type of the result
	resultType := exprType(n)
	lhs = g.genCast(lhs, lhsType, resultType)
	rhs = g.genCast(rhs, rhsType, resultType)

	if resultType == typing.Float {
		switch n.Value {
		case "+":
			return g.block.NewFAdd(lhs, rhs)
		case "-":
			return g.block.NewFSub(lhs, rhs)
		case "*":
			return g.block.NewFMul(lhs, rhs)
		case "/":
			return g.block.NewFDiv(lhs, rhs)
		case "%":
			return g.block.NewFRem(lhs, rhs)
		}
	} else {
		switch n.Value {
		case "+":
			return g.block.NewAdd(lhs, rhs)
		case "-":
			return g.block.NewSub(lhs, rhs)
		case "*":
			return g.block.NewMul(lhs, rhs)
		case "/":
			return g.block.NewSDiv(lhs, rhs)
		case "%":
			return g.block.NewSRem(lhs, rhs)
		}
	}

	report.Throw("unknown binary operator `%s`", n.Value)
	return nil
}

// genCompare generates a relational operator.  Mixed numeric operands are
// compared as floats and strings are compared by content.
func (g *Generator) genCompare(op string, lhs value.Value, lhsType typing.Type, rhs value.Value, rhsType typing.Type) value.Value {
	if lhsType == typing.String && rhsType == typing.String {
		cmp := g.block.NewCall(g.runtimeFunc("strcmp"), lhs, rhs)
		return g.block.NewICmp(intPredicates[op], cmp, zeroOf(typing.Int))
	}

	if lhsType == typing.Float || rhsType == typing.Float {
		lhs = g.genCast(lhs, lhsType, typing.Float)
		rhs = g.genCast(rhs, rhsType, typing.Float)
		return g.block.NewFCmp(floatPredicates[op], lhs, rhs)
	}

	return g.block.NewICmp(intPredicates[op], lhs, rhs)
}

// concatWidths are the maximum number of characters a formatted number may
// add to a string.
var concatWidths = map[typing.Type]int64{
	typing.Int:   16,
	typing.Float: 64,
}

// genConcat concatenates a string with a string or a number into a fresh heap
// buffer sized to fit the result.
func (g *Generator) genConcat(lhs, rhs value.Value, rhsType typing.Type) value.Value {
	strlen := g.runtimeFunc("strlen")

	var format string
	var rhsLen value.Value
	switch rhsType {
	case typing.String:
		format = "cat_str"
		rhsLen = g.block.NewCall(strlen, rhs)
	case typing.Int:
		format = "cat_int"
		rhsLen = constant.NewInt(types.I64, concatWidths[rhsType])
	case typing.Float:
		format = "cat_float"
		rhsLen = constant.NewInt(types.I64, concatWidths[rhsType])
		rhs = g.block.NewFPExt(rhs, types.Double)
	default:
		report.Throw("cannot concatenate a string with %s", rhsType)
	}

	size := g.block.NewAdd(g.block.NewCall(strlen, lhs), rhsLen)
	size = g.block.NewAdd(size, constant.NewInt(types.I64, 1))

	buf := g.block.NewCall(g.runtimeFunc("malloc"), size)
	g.block.NewCall(g.runtimeFunc("sprintf"), buf, g.genFormatPtr(format), lhs, rhs)
	return buf
}

// VisitUnaryOp generates a prefix operator.  `!` yields a boolean and `-`
// keeps the type of its operand.
func (g *Generator) VisitUnaryOp(n *ast.Node) value.Value {
	operandNode := n.Child(0)
	operandType := exprType(operandNode)
	operand := g.gen(operandNode)

	switch n.Value {
	case "!":
		return g.block.NewXor(g.genTruth(operand, operandType), constant.True)
	case "-":
		if operandType == typing.Float {
			return g.block.NewFNeg(operand)
		}

		return g.block.NewSub(zeroOf(typing.Int), operand)
	}

	report.Throw("unknown unary operator `%s`", n.Value)
	return nil
}

// VisitCall generates a function call.  Arguments are converted to the
// parameter types of the callee.
func (g *Generator) VisitCall(n *ast.Node) value.Value {
	fn := g.lookupFunc(n.Value)
	if len(fn.Params) != n.Len() {
		report.Throw("call to `%s` with %d arguments, expected %d", n.Value, n.Len(), len(fn.Params))
	}

	args := make([]value.Value, n.Len())
	for i, arg := range n.Children {
		paramType := paramTypeOf(fn.Params[i].Typ)
		args[i] = g.genCast(g.gen(arg), exprType(arg), paramType)
	}

	return g.block.NewCall(fn, args...)
}

// paramTypeOf returns the language type of an IR parameter type.
func paramTypeOf(typ types.Type) typing.Type {
	switch {
	case typ.Equal(types.I32):
		return typing.Int
	case typ.Equal(types.Float):
		return typing.Float
	case typ.Equal(i8Ptr):
		return typing.String
	}

	report.Throw("unsupported parameter type `%s`", typ)
	return typing.Unresolved
}
