// Package analyzer turns history documents into a deployment series and trend.
package analyzer

import (
	"errors"
	"time"
)

var (
	// ErrNoDeployments indicates that no marker yielded a timestamp.
	ErrNoDeployments = errors.New("no deployment timestamps found")

	// ErrInsufficientData indicates fewer than two deployments, too few for a fit.
	ErrInsufficientData = errors.New("at least two deployments are required for a trend")

	// ErrDegenerateSeries indicates that every deployment shares one instant.
	ErrDegenerateSeries = errors.New("deployment times have zero variance")
)

// Candidate is a timestamp found near a marker line.
type Candidate struct {
	// Instant is the parsed deployment time.
	Instant time.Time

	// Source is the history file the candidate came from.
	Source string

	// MarkerLine is the 0-based index of the marker line.
	MarkerLine int

	// TimestampLine is the 0-based index of the line holding the timestamp.
	TimestampLine int
}

// DeployEvent is one unique deployment in the canonical series.
type DeployEvent struct {
	// Index is the 1-based chronological position in the series.
	Index int

	// Instant is the deployment time.
	Instant time.Time

	// Source is the history file of the first-seen candidate.
	Source string

	// LineNum is the 1-based line number of the first-seen timestamp.
	LineNum int
}

// ScanStats counts what the marker scan saw.
type ScanStats struct {
	// LinesScanned is the total number of lines examined.
	LinesScanned int

	// Markers is the number of marker lines found.
	Markers int

	// Candidates is the number of markers that yielded a timestamp.
	Candidates int

	// MarkersWithoutTimestamp is the number of markers skipped for lack of a timestamp.
	MarkersWithoutTimestamp int

	// ParseFailures counts window lines whose timestamp-like text failed to parse.
	ParseFailures int
}

// Add accumulates another document's statistics.
func (s *ScanStats) Add(other ScanStats) {
	s.LinesScanned += other.LinesScanned
	s.Markers += other.Markers
	s.Candidates += other.Candidates
	s.MarkersWithoutTimestamp += other.MarkersWithoutTimestamp
	s.ParseFailures += other.ParseFailures
}

// Offset is a display offset, in points, for an annotation label.
type Offset struct {
	X float64
	Y float64
}

// Annotation requests a label on the deployment at a given instant.
type Annotation struct {
	At     time.Time
	Label  string
	Offset Offset
}

// ResolvedAnnotation is an annotation whose target exists in the series.
type ResolvedAnnotation struct {
	Annotation

	// Event is the deployment the annotation points at.
	Event DeployEvent
}
