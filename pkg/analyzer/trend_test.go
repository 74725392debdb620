package analyzer

import (
	"errors"
	"math"
	"testing"
	"time"
)

const tolerance = 1e-6

func seriesOf(t *testing.T, times ...time.Time) Series {
	t.Helper()
	var candidates []Candidate
	for i, ts := range times {
		candidates = append(candidates, cand(ts, i))
	}
	series, err := NewSeries(candidates)
	if err != nil {
		t.Fatalf("NewSeries() error = %v", err)
	}
	return series
}

func TestDaysSinceEpoch(t *testing.T) {
	tests := []struct {
		ts   time.Time
		want float64
	}{
		{time.Unix(0, 0).UTC(), 0},
		{time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), 1},
		{time.Date(1970, 1, 1, 12, 0, 0, 0, time.UTC), 0.5},
		{time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC), -1},
	}

	for _, tt := range tests {
		if got := DaysSinceEpoch(tt.ts); math.Abs(got-tt.want) > tolerance {
			t.Errorf("DaysSinceEpoch(%v) = %v, want %v", tt.ts, got, tt.want)
		}
	}
}

func TestFitTrend_OnePerDay(t *testing.T) {
	t1 := at(1, 1, 2026, 9, 30)
	series := seriesOf(t, t1, t1.Add(24*time.Hour), t1.Add(48*time.Hour))

	trend, err := FitTrend(series)
	if err != nil {
		t.Fatalf("FitTrend() error = %v", err)
	}

	if math.Abs(trend.Slope-1.0) > tolerance {
		t.Errorf("Slope = %v, want 1.0", trend.Slope)
	}
	wantIntercept := 1.0 - trend.Slope*DaysSinceEpoch(t1)
	if math.Abs(trend.Intercept-wantIntercept) > 1e-3 {
		t.Errorf("Intercept = %v, want %v", trend.Intercept, wantIntercept)
	}
	if trend.Points != 3 {
		t.Errorf("Points = %d, want 3", trend.Points)
	}
	if math.Abs(trend.Predict(t1)-1.0) > 1e-3 {
		t.Errorf("Predict(t1) = %v, want 1.0", trend.Predict(t1))
	}
	if math.Abs(trend.PerWeek()-7.0) > tolerance {
		t.Errorf("PerWeek() = %v, want 7.0", trend.PerWeek())
	}
}

func TestFitTrend_TwoPerDay(t *testing.T) {
	t1 := at(1, 1, 2026, 0, 0)
	series := seriesOf(t, t1, t1.Add(12*time.Hour), t1.Add(24*time.Hour), t1.Add(36*time.Hour))

	trend, err := FitTrend(series)
	if err != nil {
		t.Fatalf("FitTrend() error = %v", err)
	}
	if math.Abs(trend.Slope-2.0) > tolerance {
		t.Errorf("Slope = %v, want 2.0", trend.Slope)
	}
}

func TestFitTrend_Irregular(t *testing.T) {
	// x = 0, 1, 3 days from t1; y = 1, 2, 3.
	// mean x = 4/3, mean y = 2; sxy = 3, sxx = 14/3; slope = 9/14.
	t1 := at(1, 1, 2026, 0, 0)
	series := seriesOf(t, t1, t1.Add(24*time.Hour), t1.Add(72*time.Hour))

	trend, err := FitTrend(series)
	if err != nil {
		t.Fatalf("FitTrend() error = %v", err)
	}
	if math.Abs(trend.Slope-9.0/14.0) > tolerance {
		t.Errorf("Slope = %v, want %v", trend.Slope, 9.0/14.0)
	}

	// Residuals of an OLS fit sum to zero.
	var sum float64
	for i, fit := range trend.Fitted(series) {
		sum += float64(series[i].Index) - fit
	}
	if math.Abs(sum) > 1e-6 {
		t.Errorf("sum of residuals = %v, want 0", sum)
	}
}

func TestFitTrend_Deterministic(t *testing.T) {
	t1 := at(12, 11, 2025, 14, 44)
	series := seriesOf(t, t1, t1.Add(90*time.Minute), t1.Add(50*time.Hour), t1.Add(51*time.Hour))

	a, err := FitTrend(series)
	if err != nil {
		t.Fatalf("FitTrend() error = %v", err)
	}
	b, err := FitTrend(series)
	if err != nil {
		t.Fatalf("FitTrend() error = %v", err)
	}
	if *a != *b {
		t.Errorf("FitTrend() not deterministic: %+v vs %+v", a, b)
	}
}

func TestFitTrend_InsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		series Series
	}{
		{"empty", nil},
		{"single", Series{{Index: 1, Instant: at(1, 1, 2026, 0, 0)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, err := FitTrend(tt.series)
			if !errors.Is(err, ErrInsufficientData) {
				t.Errorf("FitTrend() error = %v, want ErrInsufficientData", err)
			}
			if trend != nil {
				t.Errorf("FitTrend() = %+v, want nil", trend)
			}
		})
	}
}

func TestFitTrend_Degenerate(t *testing.T) {
	// Not reachable through NewSeries, but guarded all the same.
	ts := at(1, 1, 2026, 0, 0)
	series := Series{{Index: 1, Instant: ts}, {Index: 2, Instant: ts}}

	_, err := FitTrend(series)
	if !errors.Is(err, ErrDegenerateSeries) {
		t.Errorf("FitTrend() error = %v, want ErrDegenerateSeries", err)
	}
}
