package output

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTextFormatter(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})
	if f == nil {
		t.Fatal("NewTextFormatter() returned nil")
	}
	if f.Name() != "text" {
		t.Errorf("Name() = %q, want %q", f.Name(), "text")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	f := NewTextFormatter(FormatOptions{})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Deployments Over Time",
		"Linear Fit: 1.00 deploys/day",
		"12.11.2025 14:44",
		"<- Kittens",
		"Summary: 3 deployments from 5 markers (1 without timestamp, 1 duplicates)",
		"Range: 12.11.2025 14:44 to 14.11.2025 14:44",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if strings.Contains(output, "Planetary Rings") {
		t.Error("absent annotation should not be shown without verbose")
	}
	if strings.Contains(output, "\x1b[") {
		t.Error("output to a non-terminal writer should not contain escape codes")
	}
}

func TestTextFormatter_Format_Verbose(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Verbose: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"history.txt:3",
		"Annotations without a deployment: Planetary Rings",
		"Sources: history.txt",
		"Duration:",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("verbose output missing %q:\n%s", want, output)
		}
	}
}

func TestTextFormatter_Format_NoTrend(t *testing.T) {
	report := createTestReport(t)
	report.Trend = nil
	report.Metadata.TrendError = "at least two deployments are required for a trend (got 1)"

	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "Linear Fit: not available") {
		t.Errorf("output missing unavailable trend:\n%s", output)
	}
	if strings.Contains(output, "fit ") {
		t.Errorf("output should not show fitted values:\n%s", output)
	}
}

func TestTextFormatter_Format_Quiet(t *testing.T) {
	f := NewTextFormatter(FormatOptions{Quiet: true})

	var buf bytes.Buffer
	if err := f.Format(context.Background(), createTestReport(t), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "3 deployments, 1.00 deploys/day\n"
	if buf.String() != want {
		t.Errorf("quiet output = %q, want %q", buf.String(), want)
	}
}
