package analyzer

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/jamus9/KSA-Version-History/pkg/parser"
)

// MarkerScanner finds marker lines and the timestamp that follows each one.
type MarkerScanner struct {
	marker    string
	lookahead int
	extractor *parser.TimestampExtractor
	logger    *slog.Logger
}

// NewMarkerScanner creates a scanner for the given marker text.
// Lookahead is the number of lines after the marker that are searched;
// the marker line itself is always searched first.
func NewMarkerScanner(marker string, lookahead int, extractor *parser.TimestampExtractor) *MarkerScanner {
	if lookahead < 0 {
		lookahead = 0
	}
	return &MarkerScanner{
		marker:    strings.TrimSpace(marker),
		lookahead: lookahead,
		extractor: extractor,
		logger:    slog.Default(),
	}
}

// WithLogger returns the scanner with a different logger.
func (s *MarkerScanner) WithLogger(logger *slog.Logger) *MarkerScanner {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// IsMarker reports whether a line is a marker line.
func (s *MarkerScanner) IsMarker(content string) bool {
	return strings.TrimSpace(content) == s.marker
}

// Scan returns one candidate per marker that has a timestamp in its window,
// in line order. Windows of nearby markers may overlap; each is searched
// independently.
func (s *MarkerScanner) Scan(doc *parser.Document) ([]Candidate, ScanStats) {
	var (
		candidates []Candidate
		stats      ScanStats
	)

	lines := doc.Lines
	stats.LinesScanned = len(lines)

	for i, line := range lines {
		if !s.IsMarker(line.Content) {
			continue
		}
		stats.Markers++

		end := min(i+s.lookahead, len(lines)-1)
		found := false

		for j := i; j <= end; j++ {
			ts, err := s.extractor.Extract(lines[j].Content)
			if err != nil {
				if errors.Is(err, parser.ErrInvalidTimestamp) {
					stats.ParseFailures++
					s.logger.Debug("invalid timestamp near marker",
						"source", doc.Source,
						"line", j+1,
						"error", err)
				}
				continue
			}

			candidates = append(candidates, Candidate{
				Instant:       ts,
				Source:        doc.Source,
				MarkerLine:    i,
				TimestampLine: j,
			})
			stats.Candidates++
			found = true
			break
		}

		if !found {
			stats.MarkersWithoutTimestamp++
			s.logger.Debug("marker without timestamp",
				"source", doc.Source,
				"line", i+1,
				"window", end-i+1)
		}
	}

	return candidates, stats
}
