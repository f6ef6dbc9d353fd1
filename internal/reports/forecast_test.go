package reports

import (
	"math"
	"testing"
)

func series(periods []string, values []float64) []SeriesPoint {
	points := make([]SeriesPoint, len(values))
	for i := range values {
		points[i] = SeriesPoint{Period: periods[i], Value: values[i]}
	}
	return points
}

func monthsFrom(start string, n int) []string {
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = shiftMonth(start, i)
	}
	return keys
}

func TestFitLinearConstantSeries(t *testing.T) {
	fit, ok := fitLinear([]float64{100, 100, 100, 100})
	if !ok {
		t.Fatalf("expected fit for 4 points")
	}
	if fit.slope != 0 {
		t.Fatalf("expected zero slope, got %v", fit.slope)
	}
	// Zero variance must not produce NaN; a constant series fits perfectly.
	if fit.r2 != 1 {
		t.Fatalf("expected R2=1 for constant series, got %v", fit.r2)
	}
}

func TestFitLinearTooFewPoints(t *testing.T) {
	if _, ok := fitLinear(nil); ok {
		t.Fatalf("expected no fit for empty series")
	}
	if _, ok := fitLinear([]float64{42}); ok {
		t.Fatalf("expected no fit for single point")
	}
}

func TestBuildForecastInsufficientData(t *testing.T) {
	for _, values := range [][]float64{{}, {500}} {
		points, _, ok := buildForecast(series(monthsFrom("2024-01", len(values)), values))
		if ok {
			t.Fatalf("expected unavailable forecast for %d points", len(values))
		}
		if points != nil {
			t.Fatalf("expected no forecast points, got %v", points)
		}
	}
}

func TestBuildForecastAllZeroSeries(t *testing.T) {
	_, _, ok := buildForecast(series(monthsFrom("2024-01", 6), []float64{0, 0, 0, 0, 0, 0}))
	if ok {
		t.Fatalf("expected unavailable forecast for all-zero series")
	}
	insights := buildInsights(series(monthsFrom("2024-01", 6), []float64{0, 0, 0, 0, 0, 0}))
	if insights.Available {
		t.Fatalf("expected unavailable insights for all-zero series")
	}
	if insights.Message != insufficientDataMessage {
		t.Fatalf("unexpected message %q", insights.Message)
	}
}

func TestForecastConfidenceDecaysMonotonically(t *testing.T) {
	values := []float64{100, 210, 290, 410, 490, 610}
	points, fit, ok := buildForecast(series(monthsFrom("2024-01", len(values)), values))
	if !ok {
		t.Fatalf("expected forecast")
	}
	if len(points) != forecastHorizon {
		t.Fatalf("expected %d points, got %d", forecastHorizon, len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Confidence > points[i-1].Confidence {
			t.Fatalf("confidence increased with horizon: %v", points)
		}
	}
	for _, p := range points {
		if p.Confidence < 0 || p.Confidence > 100 {
			t.Fatalf("confidence out of range: %d", p.Confidence)
		}
	}
	if fit.r2 < 0.9 {
		t.Fatalf("expected a strong fit for a near-linear series, got R2=%v", fit.r2)
	}
	// Future periods continue from the last observed month.
	if points[0].Period != "2024-07" || points[2].Period != "2024-09" {
		t.Fatalf("unexpected forecast periods: %v", points)
	}
}

func TestForecastClampsNegativePredictions(t *testing.T) {
	values := []float64{300, 200, 100, 10}
	points, _, ok := buildForecast(series(monthsFrom("2024-01", len(values)), values))
	if !ok {
		t.Fatalf("expected forecast")
	}
	for _, p := range points {
		if p.Value < 0 {
			t.Fatalf("prediction went negative: %v", p)
		}
	}
}

func TestClassifyTrend(t *testing.T) {
	up, _ := fitLinear([]float64{100, 200, 300, 400})
	if got := classifyTrend(up, []float64{100, 200, 300, 400}); got != TrendIncreasing {
		t.Fatalf("expected increasing, got %s", got)
	}
	down, _ := fitLinear([]float64{400, 300, 200, 100})
	if got := classifyTrend(down, []float64{400, 300, 200, 100}); got != TrendDecreasing {
		t.Fatalf("expected decreasing, got %s", got)
	}
	flat, _ := fitLinear([]float64{100, 101, 99, 100})
	if got := classifyTrend(flat, []float64{100, 101, 99, 100}); got != TrendStable {
		t.Fatalf("expected stable, got %s", got)
	}
}

func TestRecommendationMatchesTrend(t *testing.T) {
	for _, trend := range []string{TrendIncreasing, TrendDecreasing, TrendStable} {
		if recommendationFor(trend) == "" {
			t.Fatalf("missing recommendation for %s", trend)
		}
	}
}

func TestDetectAnomaliesKnownSeries(t *testing.T) {
	values := []float64{100, 102, 98, 101, 500, 99}
	anomalies := detectAnomalies(series(monthsFrom("2024-01", len(values)), values))
	if len(anomalies) != 1 {
		t.Fatalf("expected exactly one anomaly, got %v", anomalies)
	}
	if anomalies[0].Value != 500 || anomalies[0].Period != "2024-05" {
		t.Fatalf("unexpected anomaly %v", anomalies[0])
	}

	clean := detectAnomalies(series(monthsFrom("2024-01", 5), []float64{100, 102, 98, 101, 99}))
	if len(clean) != 0 {
		t.Fatalf("expected no anomalies in clean series, got %v", clean)
	}
}

func TestDetectAnomaliesInsufficientSample(t *testing.T) {
	if got := detectAnomalies(series(monthsFrom("2024-01", 2), []float64{10, 900})); got != nil {
		t.Fatalf("expected no anomalies below minimum sample, got %v", got)
	}
}

func TestBuildInsightsNextValue(t *testing.T) {
	values := []float64{100, 200, 300, 400}
	insights := buildInsights(series(monthsFrom("2024-01", len(values)), values))
	if !insights.Available {
		t.Fatalf("expected available insights")
	}
	if insights.Trend != TrendIncreasing {
		t.Fatalf("expected increasing trend, got %s", insights.Trend)
	}
	// Perfectly linear series: next value continues the line exactly.
	if math.Abs(insights.NextMonthRevenue-500) > 0.001 {
		t.Fatalf("expected next month 500, got %v", insights.NextMonthRevenue)
	}
	if insights.R2 != 1 {
		t.Fatalf("expected R2=1 for exact line, got %v", insights.R2)
	}
	if insights.Confidence != 100 {
		t.Fatalf("expected full confidence at horizon 1, got %d", insights.Confidence)
	}
	if insights.SampleCount != 4 {
		t.Fatalf("expected 4 samples, got %d", insights.SampleCount)
	}
}
