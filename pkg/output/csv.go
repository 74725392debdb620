package output

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// CSVFormatter writes the series as rows a plotting tool can load directly:
// timestamp, index, fitted value and annotation label.
type CSVFormatter struct {
	opts FormatOptions
}

// NewCSVFormatter creates a new CSV formatter with the given options.
func NewCSVFormatter(opts FormatOptions) *CSVFormatter {
	return &CSVFormatter{opts: opts}
}

// Name returns the format name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format renders the deployment series as CSV with a header row.
// The fit column is empty when no trend was fitted.
func (f *CSVFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{"timestamp", "index", "fit", "annotation"}
	if f.opts.Verbose {
		header = append(header, "source", "line")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, d := range report.Deployments {
		fit := ""
		if report.HasTrend() {
			fit = strconv.FormatFloat(d.Fit, 'f', 4, 64)
		}

		row := []string{
			d.Time.Format(time.RFC3339),
			strconv.Itoa(d.Index),
			fit,
			d.Label,
		}
		if f.opts.Verbose {
			row = append(row, d.Source, strconv.Itoa(d.Line))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
