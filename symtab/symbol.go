package symtab

import (
	"fmt"
	"strings"

	"keidec/report"
	"keidec/typing"
)

// Symbol represents a semantic symbol: a named variable or function.
type Symbol struct {
	// The name of the symbol.
	Name string

	// Where the symbol was defined.
	DefSpan *report.TextSpan

	// The type of the variable or the return type of the function.
	Type typing.Type

	// The symbol's kind.  This must be one of the enumerated definition kinds.
	DefKind int

	// The parameter types of a function symbol.
	ParamTypes []typing.Type

	// The literal the variable was initialized with, if any.
	Initial string

	// The name of the scope defining the symbol.
	Scope string

	// Address is the symbol's pseudo memory address.
	Address int

	// Whether or not the symbol was ever read.
	Used bool

	// Whether or not the symbol was ever assigned after its declaration.
	Modified bool
}

// Enumeration of different symbol kinds.
const (
	DefKindVar = iota
	DefKindParam
	DefKindFunc
)

// IsFunc returns whether the symbol names a function.
func (s *Symbol) IsFunc() bool {
	return s.DefKind == DefKindFunc
}

// TypeString returns the printed type of the symbol: the variable's type or
// the signature of the function.
func (s *Symbol) TypeString() string {
	if !s.IsFunc() {
		return s.Type.String()
	}

	params := make([]string, len(s.ParamTypes))
	for i, pt := range s.ParamTypes {
		params[i] = pt.String()
	}

	return fmt.Sprintf("function(%s) -> %s", strings.Join(params, ", "), s.Type)
}

// AddressString returns the printed pseudo memory address of the symbol.
func (s *Symbol) AddressString() string {
	return fmt.Sprintf("@%d", s.Address)
}
