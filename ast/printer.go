package ast

import "strings"

// Format re-serializes a tree into source text.  The output is not the text
// the tree was parsed from: binary operations are fully parenthesized and the
// layout is normalized, but parsing the output yields the same tree.
func Format(n *Node) string {
	p := &printer{}
	return Accept[string](n, p)
}

// printer is the visitor behind Format.  Statement methods return complete
// indented lines; expression methods return inline text.
type printer struct {
	indent int
}

func (p *printer) line(text string) string {
	return strings.Repeat("    ", p.indent) + text + "\n"
}

// body prints the statements of a block one level deeper.
func (p *printer) body(block *Node) string {
	if block == nil {
		return ""
	}

	p.indent++
	text := Accept[string](block, p)
	p.indent--
	return text
}

func (p *printer) expr(n *Node) string {
	if n == nil {
		return ""
	}

	return Accept[string](n, p)
}

func (p *printer) exprList(nodes []*Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = p.expr(n)
	}

	return strings.Join(parts, ", ")
}

// -----------------------------------------------------------------------------

func (p *printer) VisitProgram(n *Node) string {
	sb := strings.Builder{}
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteString("\n")
		}

		sb.WriteString(Accept[string](child, p))
	}

	return sb.String()
}

func (p *printer) VisitFuncDecl(n *Node) string {
	header := p.expr(n.Child(0)) + " " + n.Value + "(" + p.expr(n.Child(1)) + ") {"
	return p.line(header) + p.body(n.Child(2)) + p.line("}")
}

func (p *printer) VisitParamList(n *Node) string {
	return p.exprList(n.Children)
}

func (p *printer) VisitParam(n *Node) string {
	return p.expr(n.Child(0)) + " " + n.Value
}

func (p *printer) VisitType(n *Node) string {
	return n.Value
}

func (p *printer) VisitMain(n *Node) string {
	return p.line("main {") + p.body(n.Child(0)) + p.line("}")
}

func (p *printer) VisitBlock(n *Node) string {
	sb := strings.Builder{}
	for _, stmt := range n.Children {
		if stmt.Kind == FUNCTION_CALL {
			sb.WriteString(p.line(p.expr(stmt) + ";"))
		} else {
			sb.WriteString(Accept[string](stmt, p))
		}
	}

	return sb.String()
}

func (p *printer) VisitDeclaration(n *Node) string {
	return p.line(n.Value + " " + p.declarators(n) + ";")
}

func (p *printer) declarators(n *Node) string {
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		if child.Kind == ASSIGNMENT {
			parts[i] = p.assignment(child)
		} else {
			parts[i] = child.Value
		}
	}

	return strings.Join(parts, ", ")
}

func (p *printer) VisitAssignment(n *Node) string {
	return p.line(p.assignment(n) + ";")
}

// assignment prints an assignment without its terminating semicolon.
func (p *printer) assignment(n *Node) string {
	switch n.Value {
	case "++", "--":
		return n.Child(0).Value + n.Value
	default:
		return n.Child(0).Value + " = " + p.expr(n.Child(1))
	}
}

func (p *printer) VisitIdentifier(n *Node) string {
	return n.Value
}

func (p *printer) VisitNumber(n *Node) string {
	return n.Value
}

func (p *printer) VisitString(n *Node) string {
	return Quote(n.Value)
}

func (p *printer) VisitBoolean(n *Node) string {
	return n.Value
}

func (p *printer) VisitBinaryOp(n *Node) string {
	return "(" + p.expr(n.Child(0)) + " " + n.Value + " " + p.expr(n.Child(1)) + ")"
}

func (p *printer) VisitUnaryOp(n *Node) string {
	operand := n.Child(0)
	if operand != nil && operand.Kind == UNARY_OP {
		return n.Value + "(" + p.expr(operand) + ")"
	}

	return n.Value + p.expr(operand)
}

func (p *printer) VisitIf(n *Node) string {
	text := p.line("if (" + p.expr(n.Child(0)) + ") then")
	text += p.body(n.Child(1))

	if elseBlock := n.Child(2); elseBlock != nil {
		text += p.line("else")
		text += p.body(elseBlock)
	}

	return text + p.line("end")
}

func (p *printer) VisitWhile(n *Node) string {
	return p.line("while ("+p.expr(n.Child(0))+")") + p.body(n.Child(1)) + p.line("end")
}

func (p *printer) VisitDoUntil(n *Node) string {
	return p.line("do") + p.body(n.Child(0)) + p.line("until ("+p.expr(n.Child(1))+");")
}

func (p *printer) VisitFor(n *Node) string {
	var init string
	if initNode := n.Child(0); initNode != nil && initNode.Kind == DECLARATION {
		init = initNode.Value + " " + p.declarators(initNode)
	} else if initNode != nil {
		init = p.assignment(initNode)
	}

	header := "for (" + init + "; " + p.expr(n.Child(1)) + "; " + p.assignment(n.Child(2)) + ")"
	return p.line(header) + p.body(n.Child(3)) + p.line("end")
}

func (p *printer) VisitSwitch(n *Node) string {
	text := p.line("switch (" + p.expr(n.Child(0)) + ") {")

	p.indent++
	for _, label := range n.Children[1:] {
		text += Accept[string](label, p)
	}
	p.indent--

	return text + p.line("}")
}

func (p *printer) VisitCase(n *Node) string {
	return p.line("case "+n.Value+":") + p.body(n.Child(0))
}

func (p *printer) VisitDefault(n *Node) string {
	return p.line("default:") + p.body(n.Child(0))
}

func (p *printer) VisitInput(n *Node) string {
	names := make([]string, len(n.Children))
	for i, child := range n.Children {
		names[i] = child.Value
	}

	return p.line("cin >> " + strings.Join(names, " >> ") + ";")
}

func (p *printer) VisitOutput(n *Node) string {
	exprs := make([]string, len(n.Children))
	for i, child := range n.Children {
		exprs[i] = p.expr(child)
	}

	return p.line("cout << " + strings.Join(exprs, " << ") + ";")
}

func (p *printer) VisitReturn(n *Node) string {
	if n.Len() == 0 {
		return p.line("return;")
	}

	return p.line("return " + p.expr(n.Child(0)) + ";")
}

// VisitCall prints a call expression.  VisitBlock terminates call statements.
func (p *printer) VisitCall(n *Node) string {
	return n.Value + "(" + p.exprList(n.Children) + ")"
}

// -----------------------------------------------------------------------------

// Quote returns the source form of a string literal's value.
func Quote(s string) string {
	sb := strings.Builder{}
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')

	return sb.String()
}
