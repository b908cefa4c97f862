package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"

	"keidec/common"
	"keidec/compile"
	"keidec/config"
	"keidec/generate"
	"keidec/report"
	"keidec/syntax"
)

// session is the state shared by the commands which compile a source file.
type session struct {
	srcPath string
	src     string
	conf    *config.Config
}

// openSession loads the source file named by the primary argument of result
// along with its configuration.
func openSession(result *olive.ArgParseResult) (*session, error) {
	srcRelPath, _ := result.PrimaryArg()

	srcPath, err := filepath.Abs(srcRelPath)
	if err != nil {
		return nil, fmt.Errorf("invalid source path: %w", err)
	}

	if filepath.Ext(srcPath) != common.SrcFileExtension {
		return nil, fmt.Errorf("source files must have the extension `%s`", common.SrcFileExtension)
	}

	buff, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, err
	}

	conf, err := config.Load(srcPath)
	if err != nil {
		return nil, err
	}

	return &session{srcPath: srcPath, src: string(buff), conf: conf}, nil
}

// compile compiles the session's source file displaying its progress at
// loglevel.  An empty log level selects the configured one.
func (s *session) compile(loglevel string) (*compile.Result, bool) {
	if loglevel == "" {
		loglevel = s.conf.LogLevel
	}

	target := s.conf.TargetTriple
	if target == "" {
		target = generate.HostTriple()
	}

	rep := report.NewReporter(filepath.Base(s.srcPath), s.src, report.LogLevelFromName(loglevel))
	if rep.LogLevel == report.LogLevelVerbose {
		report.DisplayCompileHeader(filepath.Base(s.srcPath), target)
	}

	c := compile.NewCompiler(compile.Options{
		HashTableSize: s.conf.HashTableSize,
		Generate: generate.Options{
			ModuleName:   s.conf.ModuleName,
			TargetTriple: target,
		},
	}, rep)

	res, err := c.Compile(s.src)
	rep.Finish()

	return res, err == nil && res.Succeeded()
}

// -----------------------------------------------------------------------------

// execCheckCommand executes the `check` subcommand: the source file is
// compiled and only its diagnostics are displayed.
func execCheckCommand(result *olive.ArgParseResult, loglevel string) int {
	s, err := openSession(result)
	if err != nil {
		report.PrintErrorMessage("Load Error", err)
		return 1
	}

	if _, ok := s.compile(loglevel); !ok {
		return 1
	}

	return 0
}

// execEmitCommand executes the `emit` subcommand: the generated IR is written
// to a `.ll` file next to the source file unless another output path is
// given.
func execEmitCommand(result *olive.ArgParseResult, loglevel string) int {
	s, err := openSession(result)
	if err != nil {
		report.PrintErrorMessage("Load Error", err)
		return 1
	}

	res, ok := s.compile(loglevel)
	if !ok {
		return 1
	}

	outPath := strings.TrimSuffix(s.srcPath, common.SrcFileExtension) + ".ll"
	if outArgVal, ok := result.Arguments["output"]; ok {
		outPath = outArgVal.(string)
	}

	if err := writeOutputFile(outPath, res.Module.String()); err != nil {
		report.PrintErrorMessage("Output Error", err)
		return 1
	}

	return 0
}

// execReportCommand executes the `report` subcommand: the JSON report of the
// compilation is written to standard out.  The report is produced even if
// compilation fails.
func execReportCommand(result *olive.ArgParseResult) int {
	s, err := openSession(result)
	if err != nil {
		report.PrintErrorMessage("Load Error", err)
		return 1
	}

	res, ok := s.compile("silent")
	if res == nil {
		return 1
	}

	buff, err := compile.NewReport(res).JSON()
	if err != nil {
		report.PrintErrorMessage("Report Error", err)
		return 1
	}

	fmt.Println(string(buff))

	if !ok {
		return 1
	}

	return 0
}

// execTokensCommand executes the `tokens` subcommand: every token of the
// source file is displayed in a table.
func execTokensCommand(result *olive.ArgParseResult) int {
	s, err := openSession(result)
	if err != nil {
		report.PrintErrorMessage("Load Error", err)
		return 1
	}

	tokens, errs := syntax.Lex(s.src)

	data := pterm.TableData{{"Line", "Column", "Kind", "Value"}}
	for _, tok := range tokens {
		data = append(data, []string{
			strconv.Itoa(tok.Line()),
			strconv.Itoa(tok.Col()),
			syntax.KindName(tok.Kind),
			tok.Value,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		report.PrintErrorMessage("Output Error", err)
		return 1
	}

	if len(errs) > 0 {
		rep := report.NewReporter(filepath.Base(s.srcPath), s.src, report.LogLevelError)
		rep.ReportAll(errs)
		return 1
	}

	return 0
}

// writeOutputFile is used to quickly write an output file for the compiler.
func writeOutputFile(fpath, content string) error {
	// open or create the file
	file, err := os.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open output file `%s`: %w", fpath, err)
	}
	defer file.Close()

	// write the data
	if _, err = file.WriteString(content); err != nil {
		return fmt.Errorf("failed to write output to file `%s`: %w", fpath, err)
	}

	return nil
}
