package ast

import "fmt"

// Visitor is implemented by every pass over the tree.  It has one method per
// node kind so that a pass which forgets a kind does not compile.
type Visitor[T any] interface {
	VisitProgram(n *Node) T
	VisitFuncDecl(n *Node) T
	VisitParamList(n *Node) T
	VisitParam(n *Node) T
	VisitType(n *Node) T
	VisitMain(n *Node) T
	VisitBlock(n *Node) T
	VisitDeclaration(n *Node) T
	VisitAssignment(n *Node) T
	VisitIdentifier(n *Node) T
	VisitNumber(n *Node) T
	VisitString(n *Node) T
	VisitBoolean(n *Node) T
	VisitBinaryOp(n *Node) T
	VisitUnaryOp(n *Node) T
	VisitIf(n *Node) T
	VisitWhile(n *Node) T
	VisitDoUntil(n *Node) T
	VisitFor(n *Node) T
	VisitSwitch(n *Node) T
	VisitCase(n *Node) T
	VisitDefault(n *Node) T
	VisitInput(n *Node) T
	VisitOutput(n *Node) T
	VisitReturn(n *Node) T
	VisitCall(n *Node) T
}

// Accept dispatches n to the method of v handling its kind.
func Accept[T any](n *Node, v Visitor[T]) T {
	switch n.Kind {
	case PROGRAM:
		return v.VisitProgram(n)
	case FUNCTION_DECLARATION:
		return v.VisitFuncDecl(n)
	case PARAMETER_LIST:
		return v.VisitParamList(n)
	case PARAMETER:
		return v.VisitParam(n)
	case TYPE:
		return v.VisitType(n)
	case MAIN:
		return v.VisitMain(n)
	case BLOCK:
		return v.VisitBlock(n)
	case DECLARATION:
		return v.VisitDeclaration(n)
	case ASSIGNMENT:
		return v.VisitAssignment(n)
	case IDENTIFIER:
		return v.VisitIdentifier(n)
	case NUMBER:
		return v.VisitNumber(n)
	case STRING:
		return v.VisitString(n)
	case BOOLEAN:
		return v.VisitBoolean(n)
	case BINARY_OP:
		return v.VisitBinaryOp(n)
	case UNARY_OP:
		return v.VisitUnaryOp(n)
	case IF_STATEMENT:
		return v.VisitIf(n)
	case WHILE_STATEMENT:
		return v.VisitWhile(n)
	case DO_UNTIL_STATEMENT:
		return v.VisitDoUntil(n)
	case FOR_STATEMENT:
		return v.VisitFor(n)
	case SWITCH_STATEMENT:
		return v.VisitSwitch(n)
	case CASE_BLOCK:
		return v.VisitCase(n)
	case DEFAULT_BLOCK:
		return v.VisitDefault(n)
	case INPUT_STATEMENT:
		return v.VisitInput(n)
	case OUTPUT_STATEMENT:
		return v.VisitOutput(n)
	case RETURN_STATEMENT:
		return v.VisitReturn(n)
	case FUNCTION_CALL:
		return v.VisitCall(n)
	}

	panic(fmt.Sprintf("ast: unknown node kind %d", n.Kind))
}

// Inspect traverses the tree rooted at n in depth-first order calling f for
// each node.  The children of a node are skipped if f returns false.
func Inspect(n *Node, f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}

	for _, child := range n.Children {
		Inspect(child, f)
	}
}
