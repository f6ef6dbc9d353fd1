package reports

import "math"

const (
	// forecastHorizon is how many future months receive a point forecast.
	forecastHorizon = 3
	// forecastWindow caps how many trailing observations feed the fit.
	forecastWindow = 12

	confidenceDecayPerStep = 10
	confidenceFloor        = 10

	// stableSlopeRatio bounds |slope|/mean below which a trend counts as flat.
	stableSlopeRatio = 0.05

	anomalySigma     = 2.0
	anomalyMinPoints = 3
)

// SeriesPoint is one observed (period, value) pair fed to the forecaster.
type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// ForecastPoint is a predicted value for one future month.
type ForecastPoint struct {
	Period     string  `json:"period"`
	Value      float64 `json:"value"`
	Confidence int     `json:"confidence"`
}

// Anomaly marks an observation deviating beyond the sigma threshold.
type Anomaly struct {
	Period    string  `json:"period"`
	Value     float64 `json:"value"`
	Deviation float64 `json:"deviation"`
}

// Insights summarizes the regression outcome in renderable form. Available
// is false when the series is too short or carries no signal; callers show
// a "not enough historical data" state instead of an error.
type Insights struct {
	Available        bool      `json:"available"`
	Message          string    `json:"message,omitempty"`
	Trend            string    `json:"trend,omitempty"`
	Recommendation   string    `json:"recommendation,omitempty"`
	NextMonthRevenue float64   `json:"nextMonthRevenue"`
	Confidence       int       `json:"confidence"`
	Slope            float64   `json:"slope"`
	Intercept        float64   `json:"intercept"`
	R2               float64   `json:"r2"`
	SampleCount      int       `json:"sampleCount"`
	Anomalies        []Anomaly `json:"anomalies"`
}

const insufficientDataMessage = "not enough historical data"

// Trend classifications for the next-value prediction.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

type regression struct {
	slope     float64
	intercept float64
	r2        float64
	n         int
}

// fitLinear runs an ordinary least-squares fit over index vs. value. It
// reports ok=false for fewer than two points, where slope and intercept are
// undefined. A constant series has zero variance and fits itself perfectly,
// so its R-squared is defined as 1.
func fitLinear(values []float64) (regression, bool) {
	n := len(values)
	if n < 2 {
		return regression{n: n}, false
	}

	var sumX, sumY float64
	for i, v := range values {
		sumX += float64(i)
		sumY += v
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var covXY, varX float64
	for i, v := range values {
		dx := float64(i) - meanX
		covXY += dx * (v - meanY)
		varX += dx * dx
	}

	slope := covXY / varX
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i, v := range values {
		predicted := slope*float64(i) + intercept
		ssRes += (v - predicted) * (v - predicted)
		ssTot += (v - meanY) * (v - meanY)
	}
	r2 := 1.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	if r2 < 0 {
		r2 = 0
	}

	return regression{slope: slope, intercept: intercept, r2: r2, n: n}, true
}

// predictAt evaluates the fitted line at a future index, clamped at zero
// because revenue cannot go negative.
func (r regression) predictAt(x int) float64 {
	predicted := r.slope*float64(x) + r.intercept
	if predicted < 0 {
		return 0
	}
	return round2(predicted)
}

// confidenceAt derives the confidence for a forecast k steps beyond the last
// observation: the R-squared based base decays a fixed amount per extra step
// and never drops below the floor, so confidence is monotone non-increasing
// in the horizon and stays within [0,100].
func (r regression) confidenceAt(k int) int {
	base := int(math.Round(r.r2 * 100))
	if base > 100 {
		base = 100
	}
	if base < 0 {
		base = 0
	}
	decayed := base - (k-1)*confidenceDecayPerStep
	if decayed < confidenceFloor {
		decayed = confidenceFloor
	}
	if decayed > base {
		decayed = base
	}
	return decayed
}

// buildForecast produces the fixed-horizon point forecasts from the trailing
// revenue series. It returns ok=false when the series is too short or all
// zero, in which case no regression is fabricated.
func buildForecast(series []SeriesPoint) ([]ForecastPoint, regression, bool) {
	series = trailingWindow(series, forecastWindow)
	values := make([]float64, len(series))
	signal := false
	for i, p := range series {
		values[i] = p.Value
		if p.Value != 0 {
			signal = true
		}
	}
	if !signal {
		return nil, regression{n: len(values)}, false
	}

	fit, ok := fitLinear(values)
	if !ok {
		return nil, fit, false
	}

	lastPeriod := series[len(series)-1].Period
	points := make([]ForecastPoint, 0, forecastHorizon)
	for k := 1; k <= forecastHorizon; k++ {
		points = append(points, ForecastPoint{
			Period:     shiftMonth(lastPeriod, k),
			Value:      fit.predictAt(fit.n - 1 + k),
			Confidence: fit.confidenceAt(k),
		})
	}
	return points, fit, true
}

// classifyTrend labels the slope direction relative to the series mean; a
// slope smaller than stableSlopeRatio of the mean counts as stable.
func classifyTrend(fit regression, values []float64) string {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean != 0 && math.Abs(fit.slope) < stableSlopeRatio*math.Abs(mean) {
		return TrendStable
	}
	if fit.slope > 0 {
		return TrendIncreasing
	}
	if fit.slope < 0 {
		return TrendDecreasing
	}
	return TrendStable
}

func recommendationFor(trend string) string {
	switch trend {
	case TrendIncreasing:
		return "Revenue is trending up. Consider scaling stock for your best-selling lines to meet growing demand."
	case TrendDecreasing:
		return "Revenue is trending down. Review pricing and expenses, and consider promotions for slow-moving stock."
	default:
		return "Revenue is holding steady. Maintain current stock levels and monitor month-over-month changes."
	}
}

// detectAnomalies flags points deviating more than the sigma threshold from
// the series mean. Fewer than three points cannot support a deviation
// estimate and yield none.
func detectAnomalies(series []SeriesPoint) []Anomaly {
	if len(series) < anomalyMinPoints {
		return nil
	}

	var sum float64
	for _, p := range series {
		sum += p.Value
	}
	mean := sum / float64(len(series))

	var variance float64
	for _, p := range series {
		variance += (p.Value - mean) * (p.Value - mean)
	}
	stddev := math.Sqrt(variance / float64(len(series)))
	if stddev == 0 {
		return nil
	}

	var anomalies []Anomaly
	for _, p := range series {
		deviation := math.Abs(p.Value - mean)
		if deviation > anomalySigma*stddev {
			anomalies = append(anomalies, Anomaly{
				Period:    p.Period,
				Value:     p.Value,
				Deviation: round2(deviation / stddev),
			})
		}
	}
	return anomalies
}

// buildInsights assembles the forecast narrative: the single next-value
// prediction, trend classification, template recommendation, and anomalies.
func buildInsights(series []SeriesPoint) Insights {
	windowed := trailingWindow(series, forecastWindow)
	_, fit, ok := buildForecast(series)
	if !ok {
		return Insights{
			Available:   false,
			Message:     insufficientDataMessage,
			SampleCount: fit.n,
			Anomalies:   detectAnomalies(windowed),
		}
	}

	values := make([]float64, len(windowed))
	for i, p := range windowed {
		values[i] = p.Value
	}
	trend := classifyTrend(fit, values)

	return Insights{
		Available:        true,
		Trend:            trend,
		Recommendation:   recommendationFor(trend),
		NextMonthRevenue: fit.predictAt(fit.n),
		Confidence:       fit.confidenceAt(1),
		Slope:            round2(fit.slope),
		Intercept:        round2(fit.intercept),
		R2:               round2(fit.r2),
		SampleCount:      fit.n,
		Anomalies:        detectAnomalies(windowed),
	}
}

func trailingWindow(series []SeriesPoint, size int) []SeriesPoint {
	if len(series) <= size {
		return series
	}
	return series[len(series)-size:]
}
