package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestObservability_Records(t *testing.T) {
	reader := metric.NewManualReader()
	o := NewWithReader("consultation-workers-test", reader)
	defer o.Shutdown()

	ctx := context.Background()
	o.RecordJobProcessed(ctx, "match-services", "completed")
	o.RecordJobProcessed(ctx, "match-services", "completed")
	o.RecordJobDuration(ctx, "match-services", 12*time.Millisecond, "completed")
	o.RecordEvaluation(ctx, "fast-track", true)

	metrics := collect(t, reader)

	processed, ok := metrics["jobs.processed"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, processed.DataPoints, 1)
	assert.Equal(t, int64(2), processed.DataPoints[0].Value)

	duration, ok := metrics["jobs.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	assert.Equal(t, uint64(1), duration.DataPoints[0].Count)

	_, ok = metrics["submissions.evaluated"]
	assert.True(t, ok)
}

func TestObservability_NilSafe(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		o.RecordJobProcessed(context.Background(), "route-lead", "failed")
		o.RecordEvaluation(context.Background(), "continue", false)
		o.Shutdown()
	})
}
