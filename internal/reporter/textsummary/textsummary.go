// Package textsummary renders the plain-text opcode count report.
package textsummary

import (
	"fmt"
	"io"

	"github.com/IgorBayerl/opcode_counter/internal/analyzer"
)

const overLimitWarning = "WARNING: opcodes is over the limit of a byte"

// TextReportBuilder renders a Summary as the plain-text opcode report.
type TextReportBuilder struct {
	out io.Writer
}

// NewTextReportBuilder creates a builder writing to out (normally stdout).
func NewTextReportBuilder(out io.Writer) *TextReportBuilder {
	return &TextReportBuilder{out: out}
}

// ReportType returns the name this report is selected by.
func (b *TextReportBuilder) ReportType() string {
	return "TextSummary"
}

// CreateReport writes the count line and, when the count is over the limit,
// the warning line.
func (b *TextReportBuilder) CreateReport(summary *analyzer.Summary) error {
	if _, err := fmt.Fprintf(b.out, "There is currently %d VM opcodes.\n", summary.Count); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if summary.OverLimit() {
		if _, err := fmt.Fprintln(b.out, overLimitWarning); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
