package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"keidec/common"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the console.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

const icePostlude = `This error was not supposed to happen: it is a bug in keidec.
Please report it along with the source file that caused it.`

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n")
	PrintErrorMessage("Internal Error", errors.New(message))
	InfoColorFG.Println(icePostlude)
}

// displayDiagnostic displays the banner, the stable message and the source
// selection of a diagnostic.
func (r *Reporter) displayDiagnostic(d *Diagnostic) {
	r.displayBanner(d)
	fmt.Println(d.Error())

	if d.Span != nil {
		r.displaySourceText(d.Span, d.Warning)
	}
}

// displayBanner displays the banner on top of all compilation messages.
func (r *Reporter) displayBanner(d *Diagnostic) {
	fmt.Print("\n-- ")

	var kindStr string
	if d.Warning {
		kindStr = d.Category.String() + " Warning"
		WarnStyleBG.Print(kindStr)
	} else {
		kindStr = d.Category.String() + " Error"
		ErrorStyleBG.Print(kindStr)
	}

	fmt.Print(" ")

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(r.fileName) - len(kindStr) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(r.fileName)
}

// displaySourceText displays the lines selected by span with the selected
// text underlined by carets.
func (r *Reporter) displaySourceText(span *TextSpan, warning bool) {
	if span.StartLine > len(r.lines) {
		return
	}

	endLine := span.EndLine
	if endLine > len(r.lines) {
		endLine = len(r.lines)
	}

	var lines []string
	for ln := span.StartLine; ln <= endLine; ln++ {
		lines = append(lines, strings.ReplaceAll(r.lines[ln-1], "\t", "    "))
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	caretColor := ErrorColorFG
	if warning {
		caretColor = WarnColorFG
	}

	maxLineNumLen := len(strconv.Itoa(endLine))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	fmt.Println()
	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining begins at the start column on the first line and at the
		// trimmed indentation on every other line.
		start := minIndent
		if i == 0 {
			start = span.StartCol - 1
		}

		// Underlining runs to the end of every line but the last.
		end := len(line)
		if i == len(lines)-1 && span.EndCol-1 < end {
			end = span.EndCol - 1
		}

		if start < minIndent {
			start = minIndent
		}
		if end <= start {
			end = start + 1
		}

		fmt.Print(strings.Repeat(" ", start-minIndent))
		caretColor.Println(strings.Repeat("^", end-start))
	}
}

// -----------------------------------------------------------------------------

// DisplayCompileHeader displays the compiler version and the target before
// compilation starts.
func DisplayCompileHeader(fileName, target string) {
	fmt.Print("keidec ")
	InfoColorFG.Print("v" + common.KeidecVersion)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
	fmt.Print("compiling ")
	InfoColorFG.Println(fileName)
}

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

// displayBeginPhase displays the beginning of a compilation phase.
func displayBeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	spinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	spinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner, _ = spinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(success bool) {
	if phaseSpinner == nil {
		return
	}

	padding := strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2)
	if success {
		phaseSpinner.Success(currentPhase+padding, fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()))
	} else {
		phaseSpinner.Fail(currentPhase + padding)
	}

	phaseSpinner = nil
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, errorCount, warningCount int, elapsed time.Duration) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" warnings")
	case 1:
		WarnColorFG.Print(1)
		fmt.Print(" warning")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Print(" warnings")
	}

	fmt.Printf(") in %.3fs\n", elapsed.Seconds())
}
