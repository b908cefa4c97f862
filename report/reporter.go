package report

import (
	"strings"
	"time"
)

// Enumeration of the different log levels.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarning
	LogLevelVerbose
)

// LogLevelFromName converts a log level name into its log level.  Unknown
// names default to verbose.
func LogLevelFromName(name string) int {
	switch name {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warning", "warn":
		return LogLevelWarning
	default:
		return LogLevelVerbose
	}
}

// Reporter displays the diagnostics produced while compiling a single source
// file.  All of its display functions fail silently if the log level is too
// low for them.
type Reporter struct {
	LogLevel int

	// fileName is the name shown in diagnostic banners.
	fileName string

	// lines is the source text split into lines for code selections.
	lines []string

	errorCount int

	// warnings are held back until the end of compilation.
	warnings []*Diagnostic

	startTime time.Time
}

// NewReporter creates a new reporter for the source file fileName whose text
// is src.
func NewReporter(fileName, src string, loglevel int) *Reporter {
	return &Reporter{
		LogLevel:  loglevel,
		fileName:  fileName,
		lines:     strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n"),
		startTime: time.Now(),
	}
}

// ErrorCount returns the number of errors reported so far.
func (r *Reporter) ErrorCount() int {
	return r.errorCount
}

// ShouldProceed indicates whether or not there have been any errors that
// should cause compilation to stop at the current phase.
func (r *Reporter) ShouldProceed() bool {
	return r.errorCount == 0
}

// Report reports a single diagnostic.
func (r *Reporter) Report(d *Diagnostic) {
	if d.Warning {
		r.warnings = append(r.warnings, d)
		return
	}

	r.errorCount++
	if r.LogLevel >= LogLevelError {
		r.displayDiagnostic(d)
	}
}

// ReportAll reports every diagnostic in diags.
func (r *Reporter) ReportAll(diags []*Diagnostic) {
	for _, d := range diags {
		r.Report(d)
	}
}

// ReportStdError reports a standard Go error that is not attached to any
// source position: eg. a configuration or I/O error.
func (r *Reporter) ReportStdError(tag string, err error) {
	r.errorCount++
	if r.LogLevel >= LogLevelError {
		PrintErrorMessage(tag, err)
	}
}

// ReportICE reports an internal compiler error.  ICEs are always displayed.
func (r *Reporter) ReportICE(err error) {
	r.errorCount++
	displayICE(err.Error())
}

// -----------------------------------------------------------------------------

// BeginPhase displays the start of a compilation phase.
func (r *Reporter) BeginPhase(phase string) {
	if r.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// EndPhase displays the end of the current compilation phase.
func (r *Reporter) EndPhase(success bool) {
	if r.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// Finish flushes all held back warnings and displays the closing message.
func (r *Reporter) Finish() {
	if r.LogLevel >= LogLevelWarning {
		for _, w := range r.warnings {
			r.displayDiagnostic(w)
		}
	}

	if r.LogLevel == LogLevelVerbose {
		displayCompilationFinished(r.ShouldProceed(), r.errorCount, len(r.warnings), time.Since(r.startTime))
	}
}
