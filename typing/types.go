package typing

// Type is the closed set of types a value may have.  The zero value,
// Unresolved, marks a node the semantic analyzer has not typed.
type Type int

// Enumeration of types.
const (
	Unresolved Type = iota
	Int
	Float
	String
	Boolean
	Void

	// Error is given to every expression which failed to check.  Operands of
	// type Error never produce further diagnostics.
	Error
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Void:
		return "void"
	case Error:
		return "error"
	default:
		return "unresolved"
	}
}

// FromName returns the type named by a type keyword.  `real` is a synonym of
// `float`.
func FromName(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float", "real":
		return Float, true
	case "string":
		return String, true
	case "void":
		return Void, true
	}

	return Unresolved, false
}

// IsNumeric returns whether t is Int or Float.
func (t Type) IsNumeric() bool {
	return t == Int || t == Float
}

// IsTruthy returns whether values of type t can be used as conditions.
func (t Type) IsTruthy() bool {
	return t == Int || t == Float || t == Boolean
}
