package analyzer

import (
	"fmt"
	"math"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// DaysSinceEpoch maps an instant to fractional days since 1970-01-01 UTC.
func DaysSinceEpoch(t time.Time) float64 {
	return float64(t.Unix())/secondsPerDay + float64(t.Nanosecond())/(secondsPerDay*1e9)
}

// Trend is a least-squares line of deployment index against time.
type Trend struct {
	// Slope is deployments per day.
	Slope float64

	// Intercept is the fitted index at day zero of the epoch.
	Intercept float64

	// Points is the number of deployments the line was fitted to.
	Points int
}

// FitTrend fits index = Slope*days + Intercept by ordinary least squares.
// The sums are computed around the means, which keeps precision when the
// day values are large and close together.
func FitTrend(series Series) (*Trend, error) {
	n := len(series)
	if n < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrInsufficientData, n)
	}

	xs := make([]float64, n)
	var meanX, meanY float64
	for i, e := range series {
		xs[i] = DaysSinceEpoch(e.Instant)
		meanX += xs[i]
		meanY += float64(e.Index)
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxx, sxy float64
	for i, e := range series {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (float64(e.Index) - meanY)
	}

	if sxx == 0 {
		return nil, ErrDegenerateSeries
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(intercept) || math.IsInf(intercept, 0) {
		return nil, ErrDegenerateSeries
	}

	return &Trend{
		Slope:     slope,
		Intercept: intercept,
		Points:    n,
	}, nil
}

// Predict returns the fitted index at t.
func (t *Trend) Predict(at time.Time) float64 {
	return t.Slope*DaysSinceEpoch(at) + t.Intercept
}

// PerWeek returns the fitted deployment rate per week.
func (t *Trend) PerWeek() float64 {
	return t.Slope * 7
}

// Fitted returns the fitted index for every deployment in the series.
func (t *Trend) Fitted(series Series) []float64 {
	out := make([]float64, len(series))
	for i, e := range series {
		out[i] = t.Predict(e.Instant)
	}
	return out
}
