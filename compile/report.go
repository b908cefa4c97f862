package compile

import (
	"encoding/json"

	"keidec/ast"
	"keidec/report"
	"keidec/symtab"
	"keidec/syntax"
	"keidec/typing"
)

// Report is the structured summary of a compilation consumed by editors and
// other tools.  It serializes to JSON.
type Report struct {
	Tokens         []TokenRecord     `json:"tokens"`
	LexicalErrors  []string          `json:"lexical_errors"`
	SyntaxErrors   []string          `json:"syntax_errors"`
	SemanticErrors []string          `json:"semantic_errors"`
	Warnings       []string          `json:"warnings"`
	AST            *NodeRecord       `json:"ast"`
	SymbolTable    []ScopeRecord     `json:"symbol_table"`
	HashTable      [][]*symtab.Entry `json:"hash_table"`
	IR             string            `json:"ir"`
}

// TokenRecord is a single token of the report.
type TokenRecord struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Line  int    `json:"line"`
	Col   int    `json:"column"`
}

// NodeRecord is a single node of the nested tree of the report.
type NodeRecord struct {
	Type     string        `json:"type"`
	Value    string        `json:"value,omitempty"`
	Line     int           `json:"line"`
	Col      int           `json:"column"`
	DataType string        `json:"data_type,omitempty"`
	Scope    string        `json:"scope,omitempty"`
	State    string        `json:"state,omitempty"`
	Children []*NodeRecord `json:"children,omitempty"`
}

// ScopeRecord is the snapshot of one scope of the symbol table.
type ScopeRecord struct {
	Name    string         `json:"name"`
	Depth   int            `json:"depth"`
	Symbols []SymbolRecord `json:"symbols"`
}

// SymbolRecord is the snapshot of one symbol.
type SymbolRecord struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Col      int    `json:"column"`
	Address  string `json:"memory_address"`
	Used     bool   `json:"used"`
	Modified bool   `json:"modified"`
}

// NewReport builds the report of a compilation result.
func NewReport(res *Result) *Report {
	r := &Report{
		Tokens:         make([]TokenRecord, 0, len(res.Tokens)),
		LexicalErrors:  messages(res.LexicalErrors),
		SyntaxErrors:   messages(res.SyntaxErrors),
		SemanticErrors: messages(res.SemanticErrors),
		Warnings:       messages(res.Warnings),
		SymbolTable:    []ScopeRecord{},
	}

	for _, tok := range res.Tokens {
		r.Tokens = append(r.Tokens, TokenRecord{
			Type:  syntax.KindName(tok.Kind),
			Value: tok.Value,
			Line:  tok.Line(),
			Col:   tok.Col(),
		})
	}

	if res.AST != nil {
		r.AST = nodeRecord(res.AST)
	}

	if res.Table != nil {
		for _, scope := range res.Table.History() {
			r.SymbolTable = append(r.SymbolTable, scopeRecord(scope))
		}
	}

	if res.HashTable != nil {
		r.HashTable = res.HashTable.Buckets
	}

	if res.Module != nil {
		r.IR = res.Module.String()
	}

	return r
}

// JSON returns the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// messages returns the messages of diags; never nil so that empty lists are
// serialized as `[]`.
func messages(diags []*report.Diagnostic) []string {
	msgs := report.Messages(diags)
	if msgs == nil {
		return []string{}
	}

	return msgs
}

func nodeRecord(n *ast.Node) *NodeRecord {
	rec := &NodeRecord{
		Type:  ast.KindName(n.Kind),
		Value: n.Value,
		Line:  n.Line,
		Col:   n.Col,
		Scope: n.Scope,
	}

	if n.Type != typing.Unresolved {
		rec.DataType = n.Type.String()
	}

	if n.State != ast.StateNone {
		rec.State = n.State.String()
	}

	for _, child := range n.Children {
		rec.Children = append(rec.Children, nodeRecord(child))
	}

	return rec
}

func scopeRecord(scope *symtab.Scope) ScopeRecord {
	rec := ScopeRecord{
		Name:    scope.Name,
		Depth:   scope.Depth,
		Symbols: []SymbolRecord{},
	}

	for _, sym := range scope.Symbols() {
		rec.Symbols = append(rec.Symbols, SymbolRecord{
			Name:     sym.Name,
			Type:     sym.TypeString(),
			Line:     sym.DefSpan.StartLine,
			Col:      sym.DefSpan.StartCol,
			Address:  sym.AddressString(),
			Used:     sym.Used,
			Modified: sym.Modified,
		})
	}

	return rec
}
