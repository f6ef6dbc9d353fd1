package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTrackerEnd(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	require.NoError(t, m.Track("reports:warmup").End(nil))

	boom := errors.New("boom")
	require.ErrorIs(t, m.Track("reports:warmup").End(boom), boom)

	success := m.runs.WithLabelValues("reports:warmup", "success")
	failure := m.runs.WithLabelValues("reports:warmup", "failure")
	require.Equal(t, 1.0, testutil.ToFloat64(success))
	require.Equal(t, 1.0, testutil.ToFloat64(failure))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("reports:warmup")))
}

func TestAddAnomalies(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.AddAnomalies("HIGH", "tenant-1", 2)
	m.AddAnomalies("MEDIUM", "", 1)
	m.AddAnomalies("LOW", "tenant-1", 0)

	require.Equal(t, 2.0, testutil.ToFloat64(m.anomalies.WithLabelValues("HIGH", "tenant-1")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.anomalies.WithLabelValues("MEDIUM", "unknown")))
	require.Equal(t, 0.0, testutil.ToFloat64(m.anomalies.WithLabelValues("LOW", "tenant-1")))
}

func TestNilSafety(t *testing.T) {
	var m *Metrics
	require.NoError(t, m.Track("anything").End(nil))
	m.AddAnomalies("HIGH", "tenant-1", 3)
}
