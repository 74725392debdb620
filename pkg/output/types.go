// Package output renders analysis results for people and plotting tools.
package output

import (
	"time"

	"github.com/jamus9/KSA-Version-History/pkg/analyzer"
)

// DisplayLayout is how deployment times are written in reports.
const DisplayLayout = "02.01.2006 15:04"

// Report is the complete analysis output handed to renderers.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Deployments is the canonical series with fitted values.
	Deployments []Deployment

	// Trend is the fitted line, nil when no fit was possible.
	Trend *Trend

	// Annotations lists every requested label and whether it matched.
	Annotations []Annotation

	// Metadata provides context about the analysis.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// Deployments is the number of unique deployments.
	Deployments int

	// Markers is the number of marker lines found.
	Markers int

	// MarkersWithoutTimestamp is the number of markers that yielded nothing.
	MarkersWithoutTimestamp int

	// Duplicates is the number of repeated timestamps dropped.
	Duplicates int

	// ParseFailures is the number of invalid timestamps seen near markers.
	ParseFailures int

	// First is the earliest deployment.
	First time.Time

	// Last is the latest deployment.
	Last time.Time

	// DeploysPerDay is the fitted slope, zero when no trend was fitted.
	DeploysPerDay float64
}

// Deployment is one point of the series.
type Deployment struct {
	Index  int
	Time   time.Time
	Source string
	Line   int

	// Fit is the trend value at Time, zero when no trend was fitted.
	Fit float64

	// Label is the annotation attached to this deployment, if any.
	Label string
}

// Trend is the least-squares line of index against days since the Unix epoch.
type Trend struct {
	Slope     float64
	Intercept float64
	PerWeek   float64
	Points    int
}

// Annotation is a label request and its resolution.
type Annotation struct {
	Label   string
	At      time.Time
	OffsetX float64
	OffsetY float64

	// Found reports whether At is a deployment; Index is set only when found.
	Found bool
	Index int
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// ConfigFile is the path to the configuration file used, if any.
	ConfigFile string

	// Sources lists the history files that were analyzed.
	Sources []string

	// Marker is the sentinel line text.
	Marker string

	// TimeRange is the time filter that was applied, if any.
	TimeRange *TimeRange

	// TrendError explains a missing trend.
	TrendError string

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time

	// Duration is how long the analysis took.
	Duration time.Duration
}

// TimeRange represents a time window for filtering.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewReport creates a Report from analysis results.
func NewReport(result *analyzer.AnalysisResult, configFile string) *Report {
	series := result.Series

	report := &Report{
		Deployments: make([]Deployment, len(series)),
		Metadata: Metadata{
			ConfigFile: configFile,
			Sources:    result.Metadata.Sources,
			Marker:     result.Metadata.Marker,
			AnalyzedAt: result.Metadata.EndTime,
			Duration:   result.Metadata.EndTime.Sub(result.Metadata.StartTime),
		},
		Summary: Summary{
			Deployments:             len(series),
			Markers:                 result.Stats.Markers,
			MarkersWithoutTimestamp: result.Stats.MarkersWithoutTimestamp,
			Duplicates:              result.Duplicates,
			ParseFailures:           result.Stats.ParseFailures,
		},
	}

	if len(series) > 0 {
		report.Summary.First = series.First().Instant
		report.Summary.Last = series.Last().Instant
	}

	var fitted []float64
	if result.Trend != nil {
		fitted = result.Trend.Fitted(series)
		report.Trend = &Trend{
			Slope:     result.Trend.Slope,
			Intercept: result.Trend.Intercept,
			PerWeek:   result.Trend.PerWeek(),
			Points:    result.Trend.Points,
		}
		report.Summary.DeploysPerDay = result.Trend.Slope
	}
	if result.TrendError != nil {
		report.Metadata.TrendError = result.TrendError.Error()
	}

	labels := make(map[int]string, len(result.Annotations))
	for _, ann := range result.Annotations {
		labels[ann.Event.Index] = ann.Label
		report.Annotations = append(report.Annotations, Annotation{
			Label:   ann.Label,
			At:      ann.At,
			OffsetX: ann.Offset.X,
			OffsetY: ann.Offset.Y,
			Found:   true,
			Index:   ann.Event.Index,
		})
	}
	for _, ann := range result.Skipped {
		report.Annotations = append(report.Annotations, Annotation{
			Label:   ann.Label,
			At:      ann.At,
			OffsetX: ann.Offset.X,
			OffsetY: ann.Offset.Y,
		})
	}

	for i, e := range series {
		d := Deployment{
			Index:  e.Index,
			Time:   e.Instant,
			Source: e.Source,
			Line:   e.LineNum,
			Label:  labels[e.Index],
		}
		if fitted != nil {
			d.Fit = fitted[i]
		}
		report.Deployments[i] = d
	}

	if result.Metadata.TimeRange != nil {
		report.Metadata.TimeRange = &TimeRange{
			Start: result.Metadata.TimeRange.Start,
			End:   result.Metadata.TimeRange.End,
		}
	}

	return report
}

// HasTrend returns true if a trend line was fitted.
func (r *Report) HasTrend() bool {
	return r.Trend != nil
}

// Found returns the annotations that matched a deployment.
func (r *Report) Found() []Annotation {
	var out []Annotation
	for _, a := range r.Annotations {
		if a.Found {
			out = append(out, a)
		}
	}
	return out
}
