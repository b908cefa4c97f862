package ast

import (
	"keidec/report"
	"keidec/typing"
)

// Node is a single node of the abstract syntax tree.  Every kind of node
// shares this representation: what its value and children mean depends on its
// kind (see the kind enumeration).
type Node struct {
	Kind int

	// Value is the literal value of the node: an operator, a name, a type
	// keyword or a literal's text.  It is empty for nodes which carry none.
	Value string

	Children []*Node

	// The position of the token the node was built from.
	Line, Col int

	// The annotations below are only written by the semantic analyzer.

	// Type is the resolved type of an expression node.
	Type typing.Type

	// Scope is the name of the scope the node was checked in.
	Scope string

	// State is the usage state of an identifier node.
	State UsageState
}

// NewNode creates a new node of kind at the given position.  Nil children are
// dropped.
func NewNode(kind int, value string, line, col int, children ...*Node) *Node {
	n := &Node{
		Kind:  kind,
		Value: value,
		Line:  line,
		Col:   col,
	}

	n.Add(children...)
	return n
}

// Add appends children to the node.  Nil children are dropped.
func (n *Node) Add(children ...*Node) {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
}

// Child returns the i'th child of the node or nil if it has no such child.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}

	return n.Children[i]
}

// Len returns the number of children of the node.
func (n *Node) Len() int {
	return len(n.Children)
}

// Span returns the text span of the token the node was built from.
func (n *Node) Span() *report.TextSpan {
	width := len([]rune(n.Value))
	switch n.Kind {
	case STRING:
		width += 2
	case IDENTIFIER, NUMBER, BOOLEAN, BINARY_OP, UNARY_OP, TYPE, DECLARATION, FUNCTION_CALL:
	default:
		width = 1
	}

	return report.NewSpan(n.Line, n.Col, width)
}

// UsageState records how an identifier occurrence uses its variable.
type UsageState int

// Enumeration of usage states.
const (
	StateNone UsageState = iota
	StateDeclared
	StateModified
	StateUsed
)

func (s UsageState) String() string {
	switch s {
	case StateDeclared:
		return "declared"
	case StateModified:
		return "modified"
	case StateUsed:
		return "used"
	default:
		return ""
	}
}

// Enumeration of node kinds.
const (
	PROGRAM = iota
	FUNCTION_DECLARATION
	PARAMETER_LIST
	PARAMETER
	TYPE
	MAIN
	BLOCK
	DECLARATION
	ASSIGNMENT
	IDENTIFIER
	NUMBER
	STRING
	BOOLEAN
	BINARY_OP
	UNARY_OP
	IF_STATEMENT
	WHILE_STATEMENT
	DO_UNTIL_STATEMENT
	FOR_STATEMENT
	SWITCH_STATEMENT
	CASE_BLOCK
	DEFAULT_BLOCK
	INPUT_STATEMENT
	OUTPUT_STATEMENT
	RETURN_STATEMENT
	FUNCTION_CALL

	numKinds
)

var kindNames = [numKinds]string{
	PROGRAM:              "PROGRAM",
	FUNCTION_DECLARATION: "FUNCTION_DECLARATION",
	PARAMETER_LIST:       "PARAMETER_LIST",
	PARAMETER:            "PARAMETER",
	TYPE:                 "TYPE",
	MAIN:                 "MAIN",
	BLOCK:                "BLOCK",
	DECLARATION:          "DECLARATION",
	ASSIGNMENT:           "ASSIGNMENT",
	IDENTIFIER:           "IDENTIFIER",
	NUMBER:               "NUMBER",
	STRING:               "STRING",
	BOOLEAN:              "BOOLEAN",
	BINARY_OP:            "BINARY_OP",
	UNARY_OP:             "UNARY_OP",
	IF_STATEMENT:         "IF_STATEMENT",
	WHILE_STATEMENT:      "WHILE_STATEMENT",
	DO_UNTIL_STATEMENT:   "DO_UNTIL_STATEMENT",
	FOR_STATEMENT:        "FOR_STATEMENT",
	SWITCH_STATEMENT:     "SWITCH_STATEMENT",
	CASE_BLOCK:           "CASE_BLOCK",
	DEFAULT_BLOCK:        "DEFAULT_BLOCK",
	INPUT_STATEMENT:      "INPUT_STATEMENT",
	OUTPUT_STATEMENT:     "OUTPUT_STATEMENT",
	RETURN_STATEMENT:     "RETURN_STATEMENT",
	FUNCTION_CALL:        "FUNCTION_CALL",
}

// KindName returns the name of a node kind.
func KindName(kind int) string {
	if kind < 0 || kind >= numKinds {
		return "UNKNOWN"
	}

	return kindNames[kind]
}
