package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Default timestamp format of deployment notices, e.g. "09.02.2026 12:23".
const (
	DefaultTimestampPattern = `\b(\d{2}\.\d{2}\.\d{4} \d{2}:\d{2})\b`
	DefaultTimestampLayout  = "02.01.2006 15:04"
)

var (
	// ErrNoTimestamp is returned when a line holds nothing timestamp-shaped.
	ErrNoTimestamp = errors.New("no timestamp found")

	// ErrInvalidTimestamp is returned when timestamp-shaped text is not a valid
	// date and time, e.g. month 13.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// TimestampExtractor extracts and parses timestamps from history lines.
type TimestampExtractor struct {
	pattern *regexp.Regexp
	layout  string

	// Go's \b only knows ASCII word characters; these widen a leading or
	// trailing \b to Unicode letters and digits.
	leadingBoundary  bool
	trailingBoundary bool
}

// NewTimestampExtractor creates a new timestamp extractor.
// The pattern must have at least one capture group holding the timestamp text.
func NewTimestampExtractor(pattern *regexp.Regexp, layout string) *TimestampExtractor {
	expr := pattern.String()
	return &TimestampExtractor{
		pattern:          pattern,
		layout:           layout,
		leadingBoundary:  strings.HasPrefix(expr, `\b`),
		trailingBoundary: strings.HasSuffix(expr, `\b`) && !strings.HasSuffix(expr, `\\b`),
	}
}

// NewDefaultTimestampExtractor returns an extractor for the DD.MM.YYYY HH:MM format.
func NewDefaultTimestampExtractor() *TimestampExtractor {
	return NewTimestampExtractor(regexp.MustCompile(DefaultTimestampPattern), DefaultTimestampLayout)
}

// Parse converts an exact timestamp fragment into a UTC instant.
// The fragment must be exactly what the layout formats, so "9:05" is
// rejected for a "15:04" layout.
func (e *TimestampExtractor) Parse(fragment string) (time.Time, error) {
	ts, err := time.Parse(e.layout, fragment)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", fragment, err)
	}
	if ts.Format(e.layout) != fragment {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: does not match layout %q", fragment, e.layout)
	}
	return ts.UTC(), nil
}

// Extract parses the first timestamp on a line. Only the first match counts:
// if it is not a valid date the line has no timestamp, even when a later
// match would parse.
func (e *TimestampExtractor) Extract(line string) (time.Time, error) {
	for _, loc := range e.pattern.FindAllStringSubmatchIndex(line, -1) {
		if !e.atWordBoundary(line, loc[0], loc[1]) {
			continue
		}
		if len(loc) < 4 || loc[2] < 0 {
			return time.Time{}, ErrNoTimestamp
		}
		ts, err := e.Parse(line[loc[2]:loc[3]])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidTimestamp, err)
		}
		return ts, nil
	}
	return time.Time{}, ErrNoTimestamp
}

func (e *TimestampExtractor) atWordBoundary(line string, start, end int) bool {
	if e.leadingBoundary && start > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:start])
		if isWordRune(r) {
			return false
		}
	}
	if e.trailingBoundary && end < len(line) {
		r, _ := utf8.DecodeRuneInString(line[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
