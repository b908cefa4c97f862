package cmd

import (
	"errors"
	"os"

	"github.com/ComedicChimera/olive"
	"github.com/pterm/pterm"

	"keidec/common"
	"keidec/report"
)

// Execute is the main entry point for the `keidec` CLI utility.
func Execute() {
	os.Exit(Run(os.Args))
}

// Run runs the `keidec` CLI utility over args and returns the exit code.
func Run(args []string) int {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		pterm.DisableColor()
	}

	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("keidec", "keidec compiles Keide source files to LLVM IR", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})

	checkCmd := cli.AddSubcommand("check", "check a source file and output errors", true)
	checkCmd.AddPrimaryArg("file-path", "the path to the source file", true)

	emitCmd := cli.AddSubcommand("emit", "compile a source file to LLVM IR", true)
	emitCmd.AddPrimaryArg("file-path", "the path to the source file", true)
	emitCmd.AddStringArg("output", "o", "the path of the output IR file", false)

	reportCmd := cli.AddSubcommand("report", "output a JSON report of the compilation", true)
	reportCmd.AddPrimaryArg("file-path", "the path to the source file", true)

	tokensCmd := cli.AddSubcommand("tokens", "output the tokens of a source file", true)
	tokensCmd.AddPrimaryArg("file-path", "the path to the source file", true)

	cli.AddSubcommand("version", "print the keidec version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.PrintErrorMessage("CLI Usage Error", err)
		return 2
	}

	// the log level of the command line overrides the config file
	loglevel := ""
	if llArgVal, ok := result.Arguments["loglevel"]; ok {
		loglevel = llArgVal.(string)
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		return execCheckCommand(subResult, loglevel)
	case "emit":
		return execEmitCommand(subResult, loglevel)
	case "report":
		return execReportCommand(subResult)
	case "tokens":
		return execTokensCommand(subResult)
	case "version":
		report.PrintInfoMessage("keidec Version", common.KeidecVersion)
		return 0
	}

	report.PrintErrorMessage("CLI Usage Error", errors.New("missing subcommand"))
	return 2
}
