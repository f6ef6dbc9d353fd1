package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	jobmetrics "github.com/shopstack-erp/shopstack/internal/jobs"
)

// RevenueAnomalyScanJob inspects per-tenant monthly revenue looking for
// significant deltas in the most recent month.
type RevenueAnomalyScanJob struct {
	Pool    *pgxpool.Pool
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewRevenueAnomalyScanJob initialises the anomaly scan handler.
func NewRevenueAnomalyScanJob(pool *pgxpool.Pool, logger *slog.Logger, metrics *jobmetrics.Metrics) *RevenueAnomalyScanJob {
	return &RevenueAnomalyScanJob{
		Pool:    pool,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the anomaly scan logic.
func (j *RevenueAnomalyScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("anomaly scan: handler not configured")
	}
	var payload AnomalyScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.WindowMonths <= 0 {
		payload.WindowMonths = 12
	}
	if payload.Z <= 0 {
		payload.Z = 2.5
	}

	start := j.now()
	tracker := j.metrics().Track(TaskRevenueAnomalyScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(
		slog.Int("window_months", payload.WindowMonths),
		slog.Float64("z_threshold", payload.Z),
	)
	logger.Info("starting revenue anomaly scan")

	tenants, anomalies, err := j.scan(ctx, payload, start)
	if err != nil {
		resultErr = err
		logger.Error("scan failed", slog.Any("error", err))
		return resultErr
	}

	for _, a := range anomalies {
		logger.Warn("revenue anomaly detected",
			slog.String("owner_id", a.OwnerID),
			slog.String("period", a.Period),
			slog.String("severity", a.Severity),
			slog.Float64("z_score", a.ZScore),
			slog.Float64("delta", a.Delta),
		)
		j.metrics().AddAnomalies(a.Severity, a.OwnerID, 1)
	}

	logger.Info("completed revenue anomaly scan",
		slog.Int("tenants", tenants),
		slog.Int("anomalies", len(anomalies)),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *RevenueAnomalyScanJob) scan(ctx context.Context, payload AnomalyScanPayload, now time.Time) (int, []scanAnomaly, error) {
	if j.Pool == nil {
		return 0, nil, errors.New("anomaly scan: pool not configured")
	}
	from := now.AddDate(0, -payload.WindowMonths+1, 0).Format("2006-01")
	rows, err := j.Pool.Query(ctx, `SELECT owner_id, to_char(created_at, 'YYYY-MM') AS period, SUM(credit_amount::double precision)
		FROM accounting_entries
		WHERE account_type = 'revenue' AND to_char(created_at, 'YYYY-MM') >= $1
		GROUP BY owner_id, period
		ORDER BY owner_id, period`, from)
	if err != nil {
		return 0, nil, err
	}
	defer rows.Close()

	series := make(map[string]*tenantSeries)
	for rows.Next() {
		var ownerID string
		var period string
		var revenue float64
		if err := rows.Scan(&ownerID, &period, &revenue); err != nil {
			return 0, nil, err
		}
		entry, ok := series[ownerID]
		if !ok {
			entry = &tenantSeries{OwnerID: ownerID}
			series[ownerID] = entry
		}
		entry.Periods = append(entry.Periods, period)
		entry.Values = append(entry.Values, revenue)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}

	anomalies := make([]scanAnomaly, 0)
	for _, entry := range series {
		if len(entry.Values) < 3 {
			continue
		}
		mean := average(entry.Values)
		stddev := std(entry.Values, mean)
		if stddev == 0 {
			continue
		}
		last := entry.Values[len(entry.Values)-1]
		zscore := math.Abs((last - mean) / stddev)
		severity := ""
		switch {
		case zscore >= payload.Z:
			severity = "HIGH"
		case zscore >= payload.Z*0.6:
			severity = "MEDIUM"
		default:
			continue
		}
		anomalies = append(anomalies, scanAnomaly{
			OwnerID:  entry.OwnerID,
			Period:   entry.Periods[len(entry.Periods)-1],
			Severity: severity,
			ZScore:   zscore,
			Delta:    last - mean,
		})
	}

	return len(series), anomalies, nil
}

func (j *RevenueAnomalyScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskRevenueAnomalyScan))
	}
	return slog.Default().With(slog.String("job", TaskRevenueAnomalyScan))
}

func (j *RevenueAnomalyScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *RevenueAnomalyScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

type tenantSeries struct {
	OwnerID string
	Periods []string
	Values  []float64
}

type scanAnomaly struct {
	OwnerID  string
	Period   string
	Severity string
	ZScore   float64
	Delta    float64
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func std(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return math.Sqrt(variance / float64(len(values)))
}
