package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter formats reports as indented JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// quietReport is the summary-only payload of quiet mode.
type quietReport struct {
	Summary Summary
	Trend   *Trend
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(quietReport{Summary: report.Summary, Trend: report.Trend})
	}

	return encoder.Encode(report)
}
