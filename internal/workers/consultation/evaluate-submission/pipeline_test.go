// internal/workers/consultation/evaluate-submission/pipeline_test.go
package evaluatesubmission

import (
	"context"
	"sync"
	"testing"

	"consultation-workers/internal/catalog"
	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func parseAnswers(t *testing.T, raw string) models.QuestionnaireAnswers {
	t.Helper()
	answers, err := models.ParseAnswers([]byte(raw))
	require.NoError(t, err)
	return answers
}

const strongLead = `{
	"company_name": "Acme Labs",
	"business_type": "technology",
	"company_size": "enterprise",
	"industry": "technology",
	"budget_range": "100k+",
	"annual_revenue": "5m+",
	"timeline": "1-3 months",
	"primary_goals": ["digital transformation", "automation", "revenue growth"],
	"complexity_level": "complex"
}`

const weakLead = `{"company_size": "solo", "budget_range": "bootstrap"}`

// ==========================
// Evaluate
// ==========================

func TestPipeline_Evaluate_StrongLeadGetsReport(t *testing.T) {
	eval, err := NewPipeline().Evaluate(context.Background(), parseAnswers(t, strongLead), catalog.DefaultPackages(), 5)
	require.NoError(t, err)

	assert.Equal(t, 100, eval.Analysis.Readiness.Completeness)
	assert.GreaterOrEqual(t, eval.Analysis.Qualification.Score, 80)
	assert.Equal(t, models.RoutingFastTrack, eval.Routing.Recommendation)
	assert.Equal(t, 95, eval.Routing.Score)

	top, ok := eval.Matching.TopMatch()
	require.True(t, ok)
	assert.Equal(t, "enterprise-digital-transformation", top.Service.ID)
	assert.Equal(t, 9, eval.Matching.TotalServicesEvaluated)

	require.NotNil(t, eval.Report)
	assert.Equal(t, "Consultation Report for Acme Labs", eval.Report.Title)
	assert.Equal(t, top.Service.ID, eval.Report.Recommendations.Primary.ID)
	assert.Equal(t, "6 months+", eval.Report.Roadmap.Timeline)
}

func TestPipeline_Evaluate_WeakLeadIsRedirected(t *testing.T) {
	eval, err := NewPipeline().Evaluate(context.Background(), parseAnswers(t, weakLead), catalog.DefaultPackages(), 5)
	require.NoError(t, err)

	assert.Equal(t, 18, eval.Analysis.Qualification.Score)
	assert.Equal(t, models.RoutingRedirectToResources, eval.Routing.Recommendation)
	assert.Nil(t, eval.Report)
}

func TestPipeline_Evaluate_EmptyInputs(t *testing.T) {
	eval, err := NewPipeline().Evaluate(context.Background(), models.QuestionnaireAnswers{}, nil, 5)
	require.NoError(t, err)

	assert.Equal(t, 0, eval.Analysis.Readiness.Completeness)
	assert.Equal(t, 0, eval.Matching.TotalServicesEvaluated)
	assert.Equal(t, 0.0, eval.Matching.MatchingConfidence)
	assert.Equal(t, models.RoutingRedirectToResources, eval.Routing.Recommendation)
	assert.Nil(t, eval.Report)
}

func TestPipeline_Evaluate_QualifiedLeadWithoutPrimaryHasNoReport(t *testing.T) {
	eval, err := NewPipeline().Evaluate(context.Background(), parseAnswers(t, strongLead), nil, 5)
	require.NoError(t, err)

	assert.Equal(t, models.RoutingFastTrack, eval.Routing.Recommendation)
	assert.Empty(t, eval.Matching.PrimaryMatches)
	assert.Nil(t, eval.Report)
}

func TestPipeline_Evaluate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline().Evaluate(ctx, parseAnswers(t, strongLead), catalog.DefaultPackages(), 5)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEvaluationTimeout, errors.CodeOf(err))
}

func TestPipeline_Evaluate_ConcurrentUse(t *testing.T) {
	p := NewPipeline()
	answers := parseAnswers(t, strongLead)
	packages := catalog.DefaultPackages()

	var wg sync.WaitGroup
	results := make([]models.RoutingRecommendation, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			eval, err := p.Evaluate(context.Background(), answers, packages, 5)
			if err == nil {
				results[i] = eval.Routing.Recommendation
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, models.RoutingFastTrack, r)
	}
}
