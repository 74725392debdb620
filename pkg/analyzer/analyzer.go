package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamus9/KSA-Version-History/pkg/config"
	"github.com/jamus9/KSA-Version-History/pkg/parser"
)

// Analyzer runs the extraction and trend pipeline over history documents.
type Analyzer struct {
	cfg         *config.Config
	scanner     *MarkerScanner
	annotations []Annotation

	// Options
	timeRange *TimeRange
	logger    *slog.Logger
}

// TimeRange limits analysis to deployments in [Start, End]. A zero bound is open.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithTimeRange limits analysis to deployments within the given time range.
func WithTimeRange(start, end time.Time) AnalyzerOption {
	return func(a *Analyzer) {
		if start.IsZero() && end.IsZero() {
			return
		}
		a.timeRange = &TimeRange{Start: start, End: end}
	}
}

// WithLogger sets the logger used for skipped markers and annotations.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates a new analyzer from a validated configuration.
func NewAnalyzer(cfg *config.Config, opts ...AnalyzerOption) (*Analyzer, error) {
	pattern := cfg.TimestampFormat.CompiledPattern()
	if pattern == nil {
		return nil, fmt.Errorf("timestamp pattern is not compiled (config not validated)")
	}

	a := &Analyzer{
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if r := a.timeRange; r != nil && !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		return nil, fmt.Errorf("time range end %s is before start %s",
			r.End.Format(time.RFC3339), r.Start.Format(time.RFC3339))
	}

	extractor := parser.NewTimestampExtractor(pattern, cfg.TimestampFormat.Layout)
	a.scanner = NewMarkerScanner(cfg.Marker.Text, cfg.Marker.Lookahead, extractor).WithLogger(a.logger)

	a.annotations = make([]Annotation, 0, len(cfg.Annotations))
	for i := range cfg.Annotations {
		ann := &cfg.Annotations[i]
		a.annotations = append(a.annotations, Annotation{
			At:     ann.Time(),
			Label:  ann.Label,
			Offset: Offset{X: ann.Offset.X, Y: ann.Offset.Y},
		})
	}

	return a, nil
}

// AnalysisResult contains the complete pipeline output.
type AnalysisResult struct {
	// Series is the canonical deployment list.
	Series Series

	// Trend is the fitted line, nil when the series is too short to fit.
	Trend *Trend

	// TrendError explains why Trend is nil.
	TrendError error

	// Annotations are the requested labels that matched a deployment.
	Annotations []ResolvedAnnotation

	// Skipped are the requested labels whose deployment is absent.
	Skipped []Annotation

	// Stats aggregates the marker scan over all documents.
	Stats ScanStats

	// Duplicates is the number of candidates dropped as repeats.
	Duplicates int

	// Metadata provides context about the analysis.
	Metadata AnalysisMetadata
}

// AnalysisMetadata provides context about the analysis run.
type AnalysisMetadata struct {
	// Sources lists the history files that were analyzed.
	Sources []string

	// Marker is the sentinel text that was searched for.
	Marker string

	// TimeRange is the time filter applied, if any.
	TimeRange *TimeRange

	// StartTime is when analysis began.
	StartTime time.Time

	// EndTime is when analysis completed.
	EndTime time.Time
}

// Analyze scans the documents, builds the deployment series, fits the trend and
// resolves annotations. Each document is scanned on its own, so a marker window
// never crosses into the next file. It returns ErrNoDeployments when no
// deployment survives scanning and filtering.
func (a *Analyzer) Analyze(ctx context.Context, docs []*parser.Document) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Metadata: AnalysisMetadata{
			Marker:    a.cfg.Marker.Text,
			TimeRange: a.timeRange,
			StartTime: time.Now(),
		},
	}

	var candidates []Candidate
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, stats := a.scanner.Scan(doc)
		result.Stats.Add(stats)
		result.Metadata.Sources = append(result.Metadata.Sources, doc.Source)
		candidates = append(candidates, found...)

		a.logger.Debug("scanned history",
			"source", doc.Source,
			"lines", stats.LinesScanned,
			"markers", stats.Markers,
			"candidates", stats.Candidates)
	}

	if a.timeRange != nil {
		candidates = Filter(candidates, a.timeRange.Start, a.timeRange.End)
	}

	series, err := NewSeries(candidates)
	if err != nil {
		return nil, fmt.Errorf("%w for marker %q in %v", err, a.cfg.Marker.Text, result.Metadata.Sources)
	}
	result.Series = series
	result.Duplicates = len(candidates) - len(series)

	trend, err := FitTrend(series)
	switch {
	case err == nil:
		result.Trend = trend
	case errors.Is(err, ErrInsufficientData), errors.Is(err, ErrDegenerateSeries):
		result.TrendError = err
		a.logger.Warn("trend not fitted", "deployments", len(series), "error", err)
	default:
		return nil, fmt.Errorf("fitting trend: %w", err)
	}

	result.Annotations, result.Skipped = ResolveAnnotations(series, a.annotations)
	for _, ann := range result.Skipped {
		a.logger.Debug("annotation target not in series",
			"label", ann.Label,
			"at", ann.At.Format(a.cfg.TimestampFormat.Layout))
	}

	result.Metadata.EndTime = time.Now()

	return result, nil
}
