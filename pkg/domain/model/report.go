package model

import "fmt"

// Report accumulates diagnostics over one command invocation. In dry-run
// mode precondition failures are recorded here instead of aborting, and
// every mutating operation that would have run is recorded as skipped,
// so the operator can inspect the full plan.
type Report struct {
	Warnings []string
	Errors   []string
	Skipped  []string
}

func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Skipf records a mutating operation suppressed by dry-run mode
func (r *Report) Skipf(format string, args ...any) {
	r.Skipped = append(r.Skipped, fmt.Sprintf(format, args...))
}

// HasWarnings reports whether the command should finish with a
// "completed with warnings" summary
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// HasErrors reports whether any fatal condition was downgraded to a
// recorded error under dry-run
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}
