package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"keidec/ast"
	"keidec/report"
	"keidec/typing"
)

// inputBufferSize is the size of the buffer a string is read into.  The scan
// format leaves room for the terminating NUL.
const inputBufferSize = 256

// formatStrings are the format strings passed to the C runtime.
var formatStrings = map[string]string{
	"fmt_int":    "%d\n",
	"fmt_float":  "%f\n",
	"fmt_str":    "%s\n",
	"scan_int":   "%d",
	"scan_float": "%f",
	"scan_str":   fmt.Sprintf("%%%ds", inputBufferSize-1),
	"cat_str":    "%s%s",
	"cat_int":    "%s%d",
	"cat_float":  "%s%f",
}

// VisitInput reads every variable of a `cin` statement with `scanf`.  Strings
// are read into a fresh heap buffer.
func (g *Generator) VisitInput(n *ast.Node) value.Value {
	scanf := g.runtimeFunc("scanf")

	for _, ident := range n.Children {
		slot := g.lookupSlot(ident.Value)

		switch typ := exprType(ident); typ {
		case typing.Int:
			g.block.NewCall(scanf, g.genFormatPtr("scan_int"), slot)
		case typing.Float:
			g.block.NewCall(scanf, g.genFormatPtr("scan_float"), slot)
		case typing.String:
			buf := g.block.NewCall(g.runtimeFunc("malloc"), constant.NewInt(types.I64, inputBufferSize))
			g.block.NewCall(scanf, g.genFormatPtr("scan_str"), buf)
			g.block.NewStore(buf, slot)
		default:
			report.Throw("cannot read a value of type %s", typ)
		}
	}

	return nil
}

// VisitOutput prints every expression of a `cout` statement with `printf`,
// each on its own line.  Booleans print as `0` or `1`.
func (g *Generator) VisitOutput(n *ast.Node) value.Value {
	printf := g.runtimeFunc("printf")

	for _, expr := range n.Children {
		val := g.gen(expr)

		switch typ := exprType(expr); typ {
		case typing.Int:
			g.block.NewCall(printf, g.genFormatPtr("fmt_int"), val)
		case typing.Boolean:
			g.block.NewCall(printf, g.genFormatPtr("fmt_int"), g.genCast(val, typ, typing.Int))
		case typing.Float:
			// variadic arguments are promoted to double
			g.block.NewCall(printf, g.genFormatPtr("fmt_float"), g.block.NewFPExt(val, types.Double))
		case typing.String:
			g.block.NewCall(printf, g.genFormatPtr("fmt_str"), val)
		default:
			report.Throw("cannot print a value of type %s", typ)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// runtimeFunc returns the declaration of a C runtime function, declaring it on
// first use.
func (g *Generator) runtimeFunc(name string) *ir.Func {
	if fn, ok := g.runtime[name]; ok {
		return fn
	}

	var fn *ir.Func
	switch name {
	case "printf", "scanf":
		fn = g.mod.NewFunc(name, types.I32, ir.NewParam("format", i8Ptr))
		fn.Sig.Variadic = true
	case "sprintf":
		fn = g.mod.NewFunc(name, types.I32, ir.NewParam("buf", i8Ptr), ir.NewParam("format", i8Ptr))
		fn.Sig.Variadic = true
	case "malloc":
		fn = g.mod.NewFunc(name, i8Ptr, ir.NewParam("size", types.I64))
	case "strlen":
		fn = g.mod.NewFunc(name, types.I64, ir.NewParam("s", i8Ptr))
	case "strcmp":
		fn = g.mod.NewFunc(name, types.I32, ir.NewParam("a", i8Ptr), ir.NewParam("b", i8Ptr))
	default:
		report.Throw("unknown runtime function `%s`", name)
	}

	g.runtime[name] = fn
	return fn
}

// genFormatPtr returns a pointer to the named format string.
func (g *Generator) genFormatPtr(name string) value.Value {
	glob, ok := g.formats[name]
	if !ok {
		text, ok := formatStrings[name]
		if !ok {
			report.Throw("unknown format string `%s`", name)
		}

		glob = g.defineStringGlobal("."+name, text)
		g.formats[name] = glob
	}

	return stringPtr(glob)
}

// genStringPtr returns a pointer to the first character of a string literal.
// Literals with the same content share a single global.
func (g *Generator) genStringPtr(s string) value.Value {
	glob, ok := g.strlits[s]
	if !ok {
		glob = g.defineStringGlobal(fmt.Sprintf(".str.%d", g.globalCounter), s)
		g.globalCounter++
		g.strlits[s] = glob
	}

	return stringPtr(glob)
}

// defineStringGlobal defines an internal, immutable, NUL-terminated byte
// array global.
func (g *Generator) defineStringGlobal(name, s string) *ir.Global {
	data := constant.NewCharArrayFromString(s + "\x00")

	glob := g.mod.NewGlobalDef(name, data)
	glob.Immutable = true
	glob.Linkage = enum.LinkageInternal
	glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	return glob
}

// stringPtr returns a constant pointer to the first element of a byte array
// global.
func stringPtr(glob *ir.Global) value.Value {
	zero := constant.NewInt(types.I64, 0)

	gep := constant.NewGetElementPtr(glob.ContentType, glob, zero, zero)
	gep.InBounds = true
	return gep
}
