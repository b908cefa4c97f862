package typing

// All the rule functions below return the result type of an operation and
// whether the operation is legal.  An operation with an Error operand is
// always "legal" and yields Error so that no cascading diagnostic is raised.

// Assignable returns whether a value of type src can be stored into a
// location of type dst.  Int values are promoted to Float; every other
// combination must match exactly.
func Assignable(dst, src Type) bool {
	if dst == Error || src == Error {
		return true
	}

	switch dst {
	case Float:
		return src == Float || src == Int
	case Int, String:
		return src == dst
	default:
		return false
	}
}

// Arithmetic checks one of `+ - * / %`.
func Arithmetic(op string, lhs, rhs Type) (Type, bool) {
	if lhs == Error || rhs == Error {
		return Error, true
	}

	if lhs.IsNumeric() && rhs.IsNumeric() {
		if lhs == Float || rhs == Float {
			return Float, true
		}

		return Int, true
	}

	// string concatenation: numeric right operands are converted to text
	if op == "+" && lhs == String && (rhs == String || rhs.IsNumeric()) {
		return String, true
	}

	return Error, false
}

// Relational checks one of `< <= > >= == !=`.
func Relational(op string, lhs, rhs Type) (Type, bool) {
	if lhs == Error || rhs == Error {
		return Error, true
	}

	if lhs.IsNumeric() && rhs.IsNumeric() {
		return Boolean, true
	}

	if (op == "==" || op == "!=") && lhs == String && rhs == String {
		return Boolean, true
	}

	return Error, false
}

// Logical checks `&&` and `||`.
func Logical(lhs, rhs Type) (Type, bool) {
	if lhs == Error || rhs == Error {
		return Error, true
	}

	if lhs.IsTruthy() && rhs.IsTruthy() {
		return Boolean, true
	}

	return Error, false
}

// Unary checks the prefix operators `!` and `-`.
func Unary(op string, operand Type) (Type, bool) {
	if operand == Error {
		return Error, true
	}

	switch op {
	case "!":
		if operand.IsTruthy() {
			return Boolean, true
		}
	case "-":
		if operand.IsNumeric() {
			return operand, true
		}
	}

	return Error, false
}

// Binary dispatches a binary operator to its rule.
func Binary(op string, lhs, rhs Type) (Type, bool) {
	switch op {
	case "+", "-", "*", "/", "%":
		return Arithmetic(op, lhs, rhs)
	case "<", "<=", ">", ">=", "==", "!=":
		return Relational(op, lhs, rhs)
	case "&&", "||":
		return Logical(lhs, rhs)
	}

	return Error, false
}
