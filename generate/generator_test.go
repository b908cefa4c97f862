package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"golang.org/x/tools/txtar"

	"keidec/ast"
	"keidec/report"
	"keidec/syntax"
	"keidec/walk"
)

// checkSource parses and analyzes src, failing the test on any error.
func checkSource(t *testing.T, src string) *ast.Node {
	t.Helper()

	tokens, lexErrs := syntax.Lex(src)
	if len(lexErrs) > 0 {
		t.Fatalf("unexpected lexical errors: %v", report.Messages(lexErrs))
	}

	root, syntaxErrs := syntax.Parse(tokens)
	if len(syntaxErrs) > 0 {
		t.Fatalf("unexpected syntax errors: %v", report.Messages(syntaxErrs))
	}

	if errs, _ := walk.Analyze(root); len(errs) > 0 {
		t.Fatalf("unexpected semantic errors: %v", report.Messages(errs))
	}

	return root
}

func generateSource(t *testing.T, src string) *ir.Module {
	t.Helper()

	mod, err := GenerateWithOptions(checkSource(t, src), Options{
		ModuleName:   "test.kd",
		TargetTriple: "x86_64-unknown-linux-gnu",
	})
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	return mod
}

// blockLabels lists the block labels of every defined function, one line per
// function.
func blockLabels(mod *ir.Module) []string {
	var lines []string
	for _, fn := range mod.Funcs {
		if len(fn.Blocks) == 0 {
			continue
		}

		labels := make([]string, len(fn.Blocks))
		for i, block := range fn.Blocks {
			labels[i] = block.Name()
		}

		lines = append(lines, fmt.Sprintf("%s: %s", fn.Name(), strings.Join(labels, " ")))
	}

	return lines
}

func TestBlockLayout(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")

		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatal(err)
			}

			files := make(map[string]string)
			for _, f := range archive.Files {
				files[f.Name] = string(f.Data)
			}

			mod := generateSource(t, files["input.kd"])

			want := strings.Split(strings.TrimSpace(files["blocks"]), "\n")
			if diff := pretty.Diff(want, blockLabels(mod)); len(diff) > 0 {
				t.Errorf("block labels differ:\n%s", diff)
			}

			if err := Verify(mod); err != nil {
				t.Errorf("generated module does not verify: %v", err)
			}
		})
	}
}

func TestGenerateAssignAndPrint(t *testing.T) {
	mod := generateSource(t, "main { int a; a = 2 + 3; cout << a; }")

	var main *ir.Func
	for _, fn := range mod.Funcs {
		if fn.Name() == "main" {
			main = fn
		}
	}

	if main == nil {
		t.Fatal("no main function was generated")
	}

	if len(main.Blocks) != 1 {
		t.Fatalf("main has %d blocks, want 1", len(main.Blocks))
	}

	storedSum, printfCalls := false, 0
	for _, inst := range main.Blocks[0].Insts {
		switch inst := inst.(type) {
		case *ir.InstStore:
			_, isAdd := inst.Src.(*ir.InstAdd)
			if slot, ok := inst.Dst.(*ir.InstAlloca); ok && isAdd && slot.Name() == "a.addr" {
				storedSum = true
			}
		case *ir.InstCall:
			if callee, ok := inst.Callee.(*ir.Func); ok && callee.Name() == "printf" {
				printfCalls++
			}
		}
	}

	if !storedSum {
		t.Error("the sum is not stored into the slot of `a`")
	}

	if printfCalls != 1 {
		t.Errorf("main calls printf %d times, want 1", printfCalls)
	}

	ret, ok := main.Blocks[0].Term.(*ir.TermRet)
	if !ok {
		t.Fatalf("main ends with %T, want a return", main.Blocks[0].Term)
	}

	if zero, ok := ret.X.(*constant.Int); !ok || zero.X.Int64() != 0 {
		t.Errorf("main returns %v, want 0", ret.X)
	}

	text := mod.String()
	for _, fragment := range []string{"@.fmt_int", "%a.addr = alloca i32", "ret i32 0"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("module does not contain %q:\n%s", fragment, text)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("testdata", "switch.txtar"))
	if err != nil {
		t.Fatal(err)
	}

	archive := txtar.Parse(src)

	var input string
	for _, f := range archive.Files {
		if f.Name == "input.kd" {
			input = string(f.Data)
		}
	}

	first := generateSource(t, input).String()
	second := generateSource(t, input).String()

	if first != second {
		t.Errorf("generating twice gave different modules:\n%s\n\n%s", first, second)
	}
}

func TestModuleHeader(t *testing.T) {
	mod := generateSource(t, "main { }")

	if mod.SourceFilename != "test.kd" {
		t.Errorf("source file name is %q, want test.kd", mod.SourceFilename)
	}

	if mod.TargetTriple != "x86_64-unknown-linux-gnu" {
		t.Errorf("target triple is %q", mod.TargetTriple)
	}

	root := checkSource(t, "main { }")
	mod, err := Generate(root)
	if err != nil {
		t.Fatal(err)
	}

	if mod.TargetTriple != HostTriple() {
		t.Errorf("default target triple is %q, want %q", mod.TargetTriple, HostTriple())
	}
}

func TestRuntimeNamesArePrefixed(t *testing.T) {
	mod := generateSource(t, `int strlen(string s) {
    return 1;
}

main {
    cout << "x" + strlen("abc");
}`)

	names := make(map[string]bool)
	for _, fn := range mod.Funcs {
		names[fn.Name()] = true
	}

	for _, name := range []string{"kd.strlen", "strlen", "main"} {
		if !names[name] {
			t.Errorf("module does not define `%s`", name)
		}
	}
}

func TestStringsAndFloats(t *testing.T) {
	mod := generateSource(t, `float half(int n) {
    return n / 2.0;
}

main {
    string s = "a";
    string t = "a";
    float f;
    cin >> f;
    s = s + f;
    if (s == t) then
        cout << half(3) << true;
    end
}`)

	if err := Verify(mod); err != nil {
		t.Fatal(err)
	}

	text := mod.String()
	for _, fragment := range []string{"@strcmp", "@sprintf", "@scanf", "@.cat_float", "@.scan_float", "sitofp", "fpext"} {
		if !strings.Contains(text, fragment) {
			t.Errorf("module does not contain %q", fragment)
		}
	}

	// equal string literals share a single global
	if strings.Count(text, "c\"a\\00\"") != 1 {
		t.Errorf("the literal \"a\" is not interned:\n%s", text)
	}
}

func TestGenerateUncheckedTree(t *testing.T) {
	tokens, _ := syntax.Lex("main { int a; a = 1; cout << a; }")
	root, _ := syntax.Parse(tokens)

	_, err := Generate(root)
	if err == nil {
		t.Fatal("generating an unchecked tree succeeded")
	}

	if _, ok := err.(*report.ICE); !ok {
		t.Errorf("got %T, want an internal compiler error", err)
	}

	if _, err := Generate(ast.NewNode(ast.BLOCK, "", 1, 1)); err == nil {
		t.Error("generating a tree which is not a program succeeded")
	}
}

func TestVerify(t *testing.T) {
	t.Run("missing terminator", func(t *testing.T) {
		mod := ir.NewModule()
		fn := mod.NewFunc("f", i8Ptr)
		fn.NewBlock("entry")

		want := "block `entry` of function `f` has no terminator"
		if err := Verify(mod); err == nil || err.Error() != want {
			t.Errorf("got %v, want %q", err, want)
		}
	})

	t.Run("unreachable block", func(t *testing.T) {
		mod := ir.NewModule()
		fn := mod.NewFunc("f", i8Ptr)
		entry := fn.NewBlock("entry")
		entry.NewRet(constant.NewNull(i8Ptr))
		dead := fn.NewBlock("dead")
		dead.NewRet(constant.NewNull(i8Ptr))

		want := "block `dead` of function `f` is unreachable"
		if err := Verify(mod); err == nil || err.Error() != want {
			t.Errorf("got %v, want %q", err, want)
		}
	})
}

func TestTriple(t *testing.T) {
	tests := []struct {
		goarch, goos string
		want         string
	}{
		{"amd64", "linux", "x86_64-unknown-linux-gnu"},
		{"arm64", "darwin", "aarch64-apple-darwin"},
		{"386", "windows", "i686-pc-windows-msvc"},
		{"amd64", "freebsd", "x86_64-unknown-freebsd"},
		{"riscv64", "netbsd", "riscv64-unknown-netbsd"},
	}

	for _, tt := range tests {
		if got := Triple(tt.goarch, tt.goos); got != tt.want {
			t.Errorf("Triple(%q, %q) = %q, want %q", tt.goarch, tt.goos, got, tt.want)
		}
	}
}
