// internal/workers/consultation/evaluate-submission/handler_test.go
package evaluatesubmission

import (
	"context"
	"encoding/json"
	"testing"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/common/logger"
	"consultation-workers/internal/common/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func createTestConfig() *Config {
	return &Config{MaxResults: 5}
}

func createTestStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.NewStore(catalog.Options{Logger: logger.NewTestLogger(t)})
	require.NoError(t, err)
	require.NoError(t, store.Reload(context.Background()))
	return store
}

func createTestInput(answers string) *Input {
	return &Input{SubmissionID: "sub-1", Answers: json.RawMessage(answers)}
}

func TestHandler_Execute(t *testing.T) {
	store := createTestStore(t)
	reader := metric.NewManualReader()
	obs := observability.NewWithReader("test", reader)
	t.Cleanup(obs.Shutdown)

	h := NewHandler(createTestConfig(), store, obs, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), createTestInput(strongLead))
	require.NoError(t, err)

	assert.Equal(t, "sub-1", output.SubmissionID)
	assert.Equal(t, "fast-track", output.Recommendation)
	assert.True(t, output.ReportGenerated)
	require.NotNil(t, output.Report)
	assert.Equal(t, store.Version(), output.CatalogVersion)
	assert.NotEmpty(t, output.MatchingResult.PrimaryMatches)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "submissions.evaluated" {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestHandler_Execute_NoReportForWeakLead(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestStore(t), nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), createTestInput(weakLead))
	require.NoError(t, err)
	assert.Equal(t, "redirect-to-resources", output.Recommendation)
	assert.False(t, output.ReportGenerated)
	assert.Nil(t, output.Report)
}

func TestHandler_Execute_InvalidAnswers(t *testing.T) {
	h := NewHandler(createTestConfig(), createTestStore(t), nil, nil, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), createTestInput(`"not an object"`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidArgument, errors.CodeOf(err))
}

func TestHandler_Execute_NoCatalog(t *testing.T) {
	h := NewHandler(createTestConfig(), nil, nil, nil, logger.NewTestLogger(t))

	output, err := h.Execute(context.Background(), createTestInput(strongLead))
	require.NoError(t, err)
	assert.Equal(t, 0, output.MatchingResult.TotalServicesEvaluated)
	assert.False(t, output.ReportGenerated)
}
