package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors follow the chart: red for the fitted line, green for annotations.
var (
	colorRed   = lipgloss.Color("#FF5555")
	colorGreen = lipgloss.Color("#50FA7B")
	colorCyan  = lipgloss.Color("#8BE9FD")
	colorGray  = lipgloss.Color("#6272A4")
)

// textStyles are bound to the renderer of one output writer, so color is
// only emitted when that writer is a terminal.
type textStyles struct {
	title lipgloss.Style
	label lipgloss.Style
	trend lipgloss.Style
	note  lipgloss.Style
	dim   lipgloss.Style
}

func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title: r.NewStyle().Bold(true).Foreground(colorCyan),
		label: r.NewStyle().Foreground(colorGray),
		trend: r.NewStyle().Bold(true).Foreground(colorRed),
		note:  r.NewStyle().Foreground(colorGreen),
		dim:   r.NewStyle().Foreground(colorGray),
	}
}

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d deployments, %s\n", report.Summary.Deployments, trendPhrase(report))
	return err
}

func trendPhrase(report *Report) string {
	if !report.HasTrend() {
		return "no trend"
	}
	return fmt.Sprintf("%.2f deploys/day", report.Trend.Slope)
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	st := newTextStyles(w)
	var sb strings.Builder

	sb.WriteString(st.title.Render("=== Deployments Over Time ==="))
	sb.WriteString("\n\n")

	if report.HasTrend() {
		sb.WriteString(st.trend.Render(fmt.Sprintf("Linear Fit: %.2f deploys/day", report.Trend.Slope)))
		sb.WriteString(st.dim.Render(fmt.Sprintf("  (%.1f/week, intercept %.4f)", report.Trend.PerWeek, report.Trend.Intercept)))
	} else {
		sb.WriteString(st.trend.Render("Linear Fit: not available"))
		if report.Metadata.TrendError != "" {
			sb.WriteString(st.dim.Render("  (" + report.Metadata.TrendError + ")"))
		}
	}
	sb.WriteString("\n\n")

	width := len(fmt.Sprint(len(report.Deployments)))
	for _, d := range report.Deployments {
		sb.WriteString(st.label.Render(fmt.Sprintf("  %*d", width, d.Index)))
		sb.WriteString("  ")
		sb.WriteString(d.Time.Format(DisplayLayout))
		if report.HasTrend() {
			sb.WriteString(st.dim.Render(fmt.Sprintf("  fit %7.2f", d.Fit)))
		}
		if d.Label != "" {
			sb.WriteString("  ")
			sb.WriteString(st.note.Render("<- " + d.Label))
		}
		if f.opts.Verbose {
			sb.WriteString(st.dim.Render(fmt.Sprintf("  %s:%d", d.Source, d.Line)))
		}
		sb.WriteString("\n")
	}

	if f.opts.Verbose {
		var skipped []string
		for _, a := range report.Annotations {
			if !a.Found {
				skipped = append(skipped, fmt.Sprintf("%s (%s)", a.Label, a.At.Format(DisplayLayout)))
			}
		}
		if len(skipped) > 0 {
			sb.WriteString("\n")
			sb.WriteString(st.label.Render("Annotations without a deployment: " + strings.Join(skipped, ", ")))
			sb.WriteString("\n")
		}
	}

	s := report.Summary
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "Summary: %d deployments from %d markers (%d without timestamp, %d duplicates)\n",
		s.Deployments, s.Markers, s.MarkersWithoutTimestamp, s.Duplicates)
	if s.Deployments > 0 {
		fmt.Fprintf(&sb, "Range: %s to %s\n", s.First.Format(DisplayLayout), s.Last.Format(DisplayLayout))
	}

	if f.opts.Verbose {
		fmt.Fprintf(&sb, "Invalid timestamps near markers: %d\n", s.ParseFailures)
		fmt.Fprintf(&sb, "Sources: %s\n", strings.Join(report.Metadata.Sources, ", "))
		fmt.Fprintf(&sb, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
