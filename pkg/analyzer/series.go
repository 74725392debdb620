package analyzer

import (
	"slices"
	"time"
)

// Series is the canonical deployment list: unique instants in chronological
// order, indexed 1..N.
type Series []DeployEvent

// Deduplicate keeps the first candidate seen for each unique instant,
// preserving input order.
func Deduplicate(candidates []Candidate) []Candidate {
	seen := make(map[int64]bool, len(candidates))
	unique := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		key := c.Instant.UnixNano()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}

	return unique
}

// NewSeries deduplicates candidates, sorts them chronologically and assigns
// indices. It returns ErrNoDeployments if nothing is left.
func NewSeries(candidates []Candidate) (Series, error) {
	unique := Deduplicate(candidates)
	if len(unique) == 0 {
		return nil, ErrNoDeployments
	}

	slices.SortStableFunc(unique, func(a, b Candidate) int {
		return a.Instant.Compare(b.Instant)
	})

	series := make(Series, len(unique))
	for i, c := range unique {
		series[i] = DeployEvent{
			Index:   i + 1,
			Instant: c.Instant,
			Source:  c.Source,
			LineNum: c.TimestampLine + 1,
		}
	}

	return series, nil
}

// Len returns the number of deployments.
func (s Series) Len() int {
	return len(s)
}

// Times returns the deployment instants in order.
func (s Series) Times() []time.Time {
	times := make([]time.Time, len(s))
	for i, e := range s {
		times[i] = e.Instant
	}
	return times
}

// Indices returns the 1-based index of every deployment.
func (s Series) Indices() []int {
	indices := make([]int, len(s))
	for i, e := range s {
		indices[i] = e.Index
	}
	return indices
}

// Lookup finds the deployment at exactly t.
func (s Series) Lookup(t time.Time) (DeployEvent, bool) {
	i, found := slices.BinarySearchFunc(s, t, func(e DeployEvent, target time.Time) int {
		return e.Instant.Compare(target)
	})
	if !found {
		return DeployEvent{}, false
	}
	return s[i], true
}

// First returns the earliest deployment. The series must not be empty.
func (s Series) First() DeployEvent {
	return s[0]
}

// Last returns the latest deployment. The series must not be empty.
func (s Series) Last() DeployEvent {
	return s[len(s)-1]
}

// Span returns the time between the first and last deployment.
func (s Series) Span() time.Duration {
	if len(s) == 0 {
		return 0
	}
	return s.Last().Instant.Sub(s.First().Instant)
}

// Candidates converts the series back into candidates, e.g. to re-run NewSeries.
func (s Series) Candidates() []Candidate {
	out := make([]Candidate, len(s))
	for i, e := range s {
		out[i] = Candidate{
			Instant:       e.Instant,
			Source:        e.Source,
			TimestampLine: e.LineNum - 1,
		}
	}
	return out
}

// Filter returns the candidates whose instant lies within [start, end].
// A zero bound is open.
func Filter(candidates []Candidate, start, end time.Time) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !start.IsZero() && c.Instant.Before(start) {
			continue
		}
		if !end.IsZero() && c.Instant.After(end) {
			continue
		}
		out = append(out, c)
	}
	return out
}
