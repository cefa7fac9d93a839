// Package output renders the per-spec result records and the
// diagnostics of a run.
package output

import (
	"fmt"
	"io"

	"mksls/pkg/parser"
	"mksls/pkg/types"
	"mksls/pkg/ui"
	"mksls/pkg/ui/output/styles"
)

// ConsoleReporter writes one line per record to the given writer,
// styled when the format allows it. It implements runner.Reporter.
type ConsoleReporter struct {
	w      io.Writer
	format ui.Format
}

// NewConsoleReporter creates a reporter writing to w. The format must
// already be resolved (not FormatAuto).
func NewConsoleReporter(w io.Writer, format ui.Format) *ConsoleReporter {
	return &ConsoleReporter{w: w, format: format}
}

// Result renders one record as "(tag) link -> target".
func (r *ConsoleReporter) Result(res types.Result) {
	line := fmt.Sprintf("(%s) %s -> %s", res.Outcome.Tag(), res.Spec.Link, res.Spec.Target)
	fmt.Fprintln(r.w, r.render(styleName(res.Outcome), line))

	if res.Outcome == types.OutcomeBackedUp {
		fmt.Fprintln(r.w, r.render("Muted", fmt.Sprintf("    moved to %s", res.BackupPath)))
	}
	if res.Outcome == types.OutcomeFailed && res.Err != nil {
		fmt.Fprintln(r.w, r.render("Error", fmt.Sprintf("    %v", res.Err)))
	}
}

// ParseIssue renders one malformed-line diagnostic.
func (r *ConsoleReporter) ParseIssue(issue parser.Issue) {
	line := fmt.Sprintf("(!) %s:%d: %v", issue.File, issue.Line, issue.Err)
	fmt.Fprintln(r.w, r.render("Warning", line))
}

// FileError renders an unreadable spec file diagnostic.
func (r *ConsoleReporter) FileError(path string, err error) {
	line := fmt.Sprintf("(!) %s: %v", path, err)
	fmt.Fprintln(r.w, r.render("Error", line))
}

func (r *ConsoleReporter) render(style, s string) string {
	if r.format != ui.FormatTerminal {
		return s
	}
	return styles.GetStyle(style).Render(s)
}

// styleName maps an outcome to its semantic style name.
func styleName(o types.Outcome) string {
	switch o {
	case types.OutcomeAlreadyLinked:
		return "AlreadyLinked"
	case types.OutcomeCreated:
		return "Created"
	case types.OutcomeSkipped:
		return "Skipped"
	case types.OutcomeBackedUp:
		return "BackedUp"
	case types.OutcomeOverwritten:
		return "Overwritten"
	default:
		return "Failed"
	}
}
