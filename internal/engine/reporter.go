package engine

import (
	"fmt"
	"log/slog"
	"os"
)

// Severity distinguishes engine-reported errors from plain warnings.
type Severity int

// Report severities.
const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns the severity label used in diagnostics.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Action is the classification outcome for a diagnostic report.
type Action int

// Classification outcomes.
const (
	// ActionSuppressed drops the report entirely.
	ActionSuppressed Action = iota
	// ActionLoggedAsMessage logs the report at message (info) level.
	ActionLoggedAsMessage
	// ActionLoggedAsWarning logs the report at warning level.
	ActionLoggedAsWarning
	// ActionAborted terminates the process.
	ActionAborted
)

// String returns the action label.
func (a Action) String() string {
	switch a {
	case ActionSuppressed:
		return "suppressed"
	case ActionLoggedAsMessage:
		return "logged-as-message"
	case ActionLoggedAsWarning:
		return "logged-as-warning"
	case ActionAborted:
		return "aborted"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Diagnostic codes the classifier keys on. The values follow SpiderMonkey's
// message catalog numbering, so filters written against engine logs in
// existing deployments keep matching.
const (
	// CodeOutOfMemory marks a report produced when the runtime exhausts
	// its memory budget. Emitted by the watchdog.
	CodeOutOfMemory = 137
	// CodeLazyResolve marks the high-frequency warning produced when a
	// lazily defined global fails to resolve. Known-benign noise.
	CodeLazyResolve = 162
)

// AbortOnOOMEnv names the environment switch that upgrades out-of-memory
// error reports to a process abort. Its presence enables the behavior; it
// is checked per report, never cached.
const AbortOnOOMEnv = "WICK_ABORT_ON_OOM"

// Report is one diagnostic emitted on the runtime's reporting channel.
// Reports are consumed synchronously and bypass the exception slot
// entirely: a report is never observable from scripts.
type Report struct {
	Severity Severity
	Code     int
	Filename string
	Line     int
	Message  string
}

// Reporter classifies diagnostic reports and routes them to the log, or
// escalates them to a process abort.
type Reporter struct {
	logger *slog.Logger

	// abort terminates the process. Tests swap in a recorder.
	abort func(msg string)
}

// NewReporter creates a Reporter routing to the given logger.
func NewReporter(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	rep := &Reporter{logger: logger}
	rep.abort = func(msg string) {
		rep.logger.Error(msg)
		os.Exit(1)
	}
	return rep
}

// Report classifies r and acts on it. Rules, in order:
//
//  1. Abort switch set, severity error, out-of-memory code: abort the
//     process with a fatal diagnostic naming the source location.
//  2. Warnings with the lazy-resolution code are suppressed.
//  3. Other warnings are logged at message level, tagged WARNING.
//  4. Everything else is an engine-reported error (not a thrown
//     exception), logged at warning level and tagged REPORTED.
//
// Log lines carry filename, line, and message verbatim.
func (rep *Reporter) Report(r Report) Action {
	if _, on := os.LookupEnv(AbortOnOOMEnv); on &&
		r.Severity == SeverityError && r.Code == CodeOutOfMemory {
		rep.abort(fmt.Sprintf("out of memory at %s: %d.", r.Filename, r.Line))
		return ActionAborted
	}

	if r.Severity == SeverityWarning {
		if r.Code == CodeLazyResolve {
			return ActionSuppressed
		}
		rep.logger.Info(formatReportLine("WARNING", r))
		return ActionLoggedAsMessage
	}

	rep.logger.Warn(formatReportLine("REPORTED", r))
	return ActionLoggedAsWarning
}

// formatReportLine renders the classic engine log line:
//
//	JS WARNING: [main.js 42]: something looked off
func formatReportLine(tag string, r Report) string {
	return fmt.Sprintf("JS %s: [%s %d]: %s", tag, r.Filename, r.Line, r.Message)
}
