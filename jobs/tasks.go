// Package jobs contains background task definitions and the Asynq worker.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup pre-populates report caches for active tenants.
	TaskReportWarmup = "reports:warmup"
	// TaskRevenueAnomalyScan inspects monthly revenue series for outliers.
	TaskRevenueAnomalyScan = "reports:anomaly_scan"
	// TaskReportCacheBump invalidates the report cache after a mutation.
	TaskReportCacheBump = "reports:bump"
)

// ReportWarmupPayload selects which tenants to warm.
type ReportWarmupPayload struct {
	Scope string `json:"scope"`
}

// NewReportWarmupTask constructs a warmup task.
func NewReportWarmupTask(scope string) (*asynq.Task, error) {
	data, err := json.Marshal(ReportWarmupPayload{Scope: scope})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// AnomalyScanPayload tunes the scan window and sensitivity.
type AnomalyScanPayload struct {
	WindowMonths int     `json:"window_months"`
	Z            float64 `json:"z"`
}

// NewAnomalyScanTask constructs an anomaly scan task.
func NewAnomalyScanTask(windowMonths int, z float64) (*asynq.Task, error) {
	data, err := json.Marshal(AnomalyScanPayload{WindowMonths: windowMonths, Z: z})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRevenueAnomalyScan, data), nil
}

// CacheBumpPayload names the mutation source for logging.
type CacheBumpPayload struct {
	Source string `json:"source"`
}

// NewCacheBumpTask constructs a cache invalidation task. Mutating endpoints
// enqueue it after writes to products, transactions, or accounting entries.
func NewCacheBumpTask(source string) (*asynq.Task, error) {
	data, err := json.Marshal(CacheBumpPayload{Source: source})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportCacheBump, data), nil
}
