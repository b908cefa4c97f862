package compile

import (
	"github.com/llir/llvm/ir"

	"keidec/ast"
	"keidec/generate"
	"keidec/report"
	"keidec/symtab"
	"keidec/syntax"
	"keidec/walk"
)

// Stage identifies a stage of the compilation pipeline.
type Stage int

// Enumeration of the pipeline stages in the order they run.
const (
	StageNone Stage = iota
	StageLex
	StageParse
	StageAnalyze
	StageGenerate
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "Lexing"
	case StageParse:
		return "Parsing"
	case StageAnalyze:
		return "Checking"
	case StageGenerate:
		return "Generating"
	default:
		return "None"
	}
}

// Options configures a compilation.
type Options struct {
	// HashTableSize is the number of buckets of the materialized symbol hash
	// table.  Zero selects the default.
	HashTableSize int

	// Generate configures the generated IR module.
	Generate generate.Options
}

// Result holds everything produced while compiling one source text.  The
// results of stages which completed are kept even when a later stage was
// skipped.
type Result struct {
	// Tokens is every token of the source, comments included.
	Tokens []*syntax.Token

	LexicalErrors  []*report.Diagnostic
	SyntaxErrors   []*report.Diagnostic
	SemanticErrors []*report.Diagnostic
	Warnings       []*report.Diagnostic

	AST       *ast.Node
	Table     *symtab.Table
	HashTable *symtab.HashTable

	// Module is the generated IR module: it is nil unless every stage
	// succeeded.
	Module *ir.Module

	// LastStage is the last stage which was run.
	LastStage Stage
}

// Errors returns every error of the compilation in stage order.
func (res *Result) Errors() []*report.Diagnostic {
	var errs []*report.Diagnostic
	errs = append(errs, res.LexicalErrors...)
	errs = append(errs, res.SyntaxErrors...)
	return append(errs, res.SemanticErrors...)
}

// Succeeded returns whether the source compiled into an IR module.
func (res *Result) Succeeded() bool {
	return res.Module != nil
}

// Compiler runs the compilation pipeline over a single source text.  Each
// stage only runs if every stage before it produced no errors.
type Compiler struct {
	opts Options

	// rep is used to display diagnostics and phases as they happen.  It may
	// be nil in which case the compiler is silent.
	rep *report.Reporter

	res *Result
}

// NewCompiler creates a new compiler.  rep may be nil.
func NewCompiler(opts Options, rep *report.Reporter) *Compiler {
	return &Compiler{opts: opts, rep: rep}
}

// Compile compiles src with opts without displaying anything.
func Compile(src string, opts Options) (*Result, error) {
	return NewCompiler(opts, nil).Compile(src)
}

// Compile runs every stage of the pipeline over src.  Compile errors are
// recorded in the result; the returned error is only ever an internal
// compiler error.
func (c *Compiler) Compile(src string) (*Result, error) {
	c.res = &Result{}

	if c.lex(src) && c.parse() && c.analyze() {
		if err := c.generate(); err != nil {
			return c.res, err
		}
	}

	return c.res, nil
}

// -----------------------------------------------------------------------------

func (c *Compiler) lex(src string) bool {
	c.beginStage(StageLex)

	c.res.Tokens, c.res.LexicalErrors = syntax.Lex(src)

	return c.endStage(c.res.LexicalErrors)
}

func (c *Compiler) parse() bool {
	c.beginStage(StageParse)

	c.res.AST, c.res.SyntaxErrors = syntax.Parse(c.res.Tokens)

	return c.endStage(c.res.SyntaxErrors)
}

func (c *Compiler) analyze() bool {
	c.beginStage(StageAnalyze)

	w := walk.NewWalker(c.opts.HashTableSize)
	w.Walk(c.res.AST)

	c.res.SemanticErrors = w.Errors()
	c.res.Warnings = w.Warnings()
	c.res.Table = w.Table()
	c.res.HashTable = w.HashTable()

	if c.rep != nil {
		c.rep.ReportAll(c.res.Warnings)
	}

	return c.endStage(c.res.SemanticErrors)
}

func (c *Compiler) generate() error {
	c.beginStage(StageGenerate)

	mod, err := generate.GenerateWithOptions(c.res.AST, c.opts.Generate)
	if err != nil {
		if c.rep != nil {
			c.rep.EndPhase(false)
			c.rep.ReportICE(err)
		}

		return err
	}

	c.res.Module = mod
	c.endStage(nil)
	return nil
}

// beginStage records the start of stage.
func (c *Compiler) beginStage(stage Stage) {
	c.res.LastStage = stage

	if c.rep != nil {
		c.rep.BeginPhase(stage.String())
	}
}

// endStage reports the errors of the current stage and returns whether the
// pipeline should proceed.
func (c *Compiler) endStage(errs []*report.Diagnostic) bool {
	if c.rep != nil {
		c.rep.EndPhase(len(errs) == 0)
		c.rep.ReportAll(errs)
	}

	return len(errs) == 0
}
