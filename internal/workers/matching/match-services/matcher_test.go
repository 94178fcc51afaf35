// internal/workers/matching/match-services/matcher_test.go
package matchservices

import (
	"fmt"
	"testing"

	"consultation-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func enterprisePackage(id string) models.ServicePackage {
	return models.ServicePackage{
		ID:           id,
		Title:        "Enterprise Transformation " + id,
		Description:  "Enterprise digital transformation with automation at scale",
		Tier:         models.TierEnterprise,
		PriceRange:   "$100K+",
		Timeline:     "6 months+",
		Features:     []string{"Automation roadmap", "Change management"},
		IndustryTags: []string{"technology", "saas"},
	}
}

func growthPackage(id string) models.ServicePackage {
	return models.ServicePackage{
		ID:           id,
		Title:        "Growth Program " + id,
		Description:  "Growth program for scale",
		Tier:         models.TierGrowth,
		PriceRange:   "$10K-$25K",
		Timeline:     "3-4 months",
		Features:     []string{"Automation"},
		IndustryTags: []string{"universal"},
	}
}

func retailPackage(id string) models.ServicePackage {
	return models.ServicePackage{
		ID:           id,
		Title:        "Retail Basics " + id,
		Description:  "Retail basics",
		Tier:         models.TierFoundation,
		PriceRange:   "Under $5K",
		Timeline:     "2-3 weeks",
		Features:     []string{"Store audit"},
		IndustryTags: []string{"retail"},
	}
}

func enterpriseAnswers() models.QuestionnaireAnswers {
	return models.QuestionnaireAnswers{
		models.KeyBusinessType:    models.Text("Technology"),
		models.KeyCompanySize:     models.Text("enterprise"),
		models.KeyIndustry:        models.Text("saas"),
		models.KeyBudgetRange:     models.Text("100k+"),
		models.KeyTimeline:        models.Text("6+ months"),
		models.KeyPrimaryGoals:    models.List("automation", "digital transformation"),
		models.KeyComplexityLevel: models.Text("complex"),
	}
}

// ==========================
// Match
// ==========================

func TestMatcher_Match_RanksAndBuckets(t *testing.T) {
	m := NewMatcher()

	result := m.Match(enterpriseAnswers(), []models.ServicePackage{
		retailPackage("r"), growthPackage("g"), enterprisePackage("e"),
	}, 5)

	require.Len(t, result.AllMatches, 3)
	assert.Equal(t, 3, result.TotalServicesEvaluated)
	assert.Equal(t, "e", result.AllMatches[0].Service.ID)
	assert.Equal(t, "g", result.AllMatches[1].Service.ID)
	assert.Equal(t, "r", result.AllMatches[2].Service.ID)

	top := result.AllMatches[0]
	assert.Equal(t, 1.0, top.MatchScore)
	assert.Equal(t, models.ConfidenceHigh, top.ConfidenceLevel)
	assert.Equal(t, models.RecommendationPrimary, top.RecommendationType)
	assert.Len(t, top.MatchReasons, 8)

	growth := result.AllMatches[1]
	assert.InDelta(t, 0.65, growth.MatchScore, 0.001)
	assert.Equal(t, models.ConfidenceMedium, growth.ConfidenceLevel)
	assert.Equal(t, models.RecommendationAlternative, growth.RecommendationType)

	retail := result.AllMatches[2]
	assert.Less(t, retail.MatchScore, 0.5)
	assert.Equal(t, models.ConfidenceLow, retail.ConfidenceLevel)
	assert.Equal(t, models.RecommendationConsider, retail.RecommendationType)

	require.Len(t, result.PrimaryMatches, 1)
	assert.Equal(t, "e", result.PrimaryMatches[0].Service.ID)
	require.Len(t, result.AlternativeMatches, 1)
	assert.Equal(t, "g", result.AlternativeMatches[0].Service.ID)
	assert.InDelta(t, 0.83, result.MatchingConfidence, 0.011)
}

func TestMatcher_Match_EmptyCatalog(t *testing.T) {
	result := NewMatcher().Match(enterpriseAnswers(), nil, 5)

	assert.Equal(t, 0, result.TotalServicesEvaluated)
	assert.Empty(t, result.AllMatches)
	assert.NotNil(t, result.PrimaryMatches)
	assert.Empty(t, result.PrimaryMatches)
	assert.NotNil(t, result.AlternativeMatches)
	assert.Empty(t, result.AlternativeMatches)
	assert.Equal(t, 0.0, result.MatchingConfidence)
}

func TestMatcher_Match_EmptyAnswersAreNeutral(t *testing.T) {
	result := NewMatcher().Match(models.QuestionnaireAnswers{}, []models.ServicePackage{
		enterprisePackage("e"), retailPackage("r"),
	}, 5)

	for _, match := range result.AllMatches {
		assert.Equal(t, 0.5, match.MatchScore)
		assert.Empty(t, match.MatchReasons)
		assert.Equal(t, models.ConfidenceMedium, match.ConfidenceLevel)
		assert.Equal(t, models.RecommendationAlternative, match.RecommendationType)
		for name, score := range match.CriteriaScores {
			assert.Equal(t, 0.5, score, name)
		}
	}
	assert.Empty(t, result.PrimaryMatches)
	assert.Len(t, result.AlternativeMatches, 2)
	assert.Equal(t, 0.6, result.MatchingConfidence)
}

func TestMatcher_Match_Caps(t *testing.T) {
	var pkgs []models.ServicePackage
	for i := 0; i < 4; i++ {
		pkgs = append(pkgs, enterprisePackage(fmt.Sprintf("e%d", i)))
	}
	for i := 0; i < 6; i++ {
		pkgs = append(pkgs, growthPackage(fmt.Sprintf("g%d", i)))
	}

	tests := []struct {
		name         string
		maxResults   int
		primary      int
		alternatives int
	}{
		{"default budget", 0, 3, 2},
		{"explicit five", 5, 3, 2},
		{"small budget", 2, 2, 0},
		{"large budget", 20, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewMatcher().Match(enterpriseAnswers(), pkgs, tt.maxResults)
			assert.Len(t, result.PrimaryMatches, tt.primary)
			assert.Len(t, result.AlternativeMatches, tt.alternatives)
			assert.Len(t, result.AllMatches, len(pkgs))
		})
	}
}

func TestMatcher_Match_Invariants(t *testing.T) {
	answerSets := []models.QuestionnaireAnswers{
		{},
		enterpriseAnswers(),
		{models.KeyBusinessType: models.Text("retail"), models.KeyTimeline: models.Text("immediate")},
		{models.KeyCompanySize: models.Text("startup"), models.KeyBudgetRange: models.Text("bootstrap")},
	}
	pkgs := []models.ServicePackage{enterprisePackage("e"), growthPackage("g"), retailPackage("r")}

	for _, answers := range answerSets {
		result := NewMatcher().Match(answers, pkgs, 5)

		ids := map[string]bool{}
		for i, match := range result.AllMatches {
			ids[match.Service.ID] = true
			assert.GreaterOrEqual(t, match.MatchScore, 0.0)
			assert.LessOrEqual(t, match.MatchScore, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, result.AllMatches[i-1].MatchScore, match.MatchScore)
			}
		}

		assert.LessOrEqual(t, len(result.PrimaryMatches), 3)
		for i, match := range result.PrimaryMatches {
			assert.True(t, ids[match.Service.ID])
			assert.GreaterOrEqual(t, match.MatchScore, 0.7)
			assert.Equal(t, models.ConfidenceHigh, match.ConfidenceLevel)
			if i > 0 {
				assert.GreaterOrEqual(t, result.PrimaryMatches[i-1].MatchScore, match.MatchScore)
			}
		}
		assert.LessOrEqual(t, result.MatchingConfidence, 1.0)
	}
}

// ==========================
// Criteria
// ==========================

func TestMatcher_Score_Criteria(t *testing.T) {
	tests := []struct {
		name      string
		criterion string
		answers   models.QuestionnaireAnswers
		pkg       models.ServicePackage
		expected  float64
	}{
		{"business type exact", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("saas")}, enterprisePackage("e"), 1.0},
		{"business type related", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("technology")},
			models.ServicePackage{IndustryTags: []string{"software"}}, 0.7},
		{"business type universal", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("healthcare")}, growthPackage("g"), 0.6},
		{"business type miss", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("healthcare")}, retailPackage("r"), 0.3},
		{"business type containing all on all-tagged package", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("small business retail")},
			models.ServicePackage{IndustryTags: []string{"all"}}, 0.6},
		{"business type phrase contains tag", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("Professional Services")},
			models.ServicePackage{IndustryTags: []string{"professional_services"}}, 1.0},
		{"business type partial word is not a tag hit", models.CriterionBusinessType,
			models.QuestionnaireAnswers{models.KeyBusinessType: models.Text("retailer")}, retailPackage("r"), 0.3},
		{"size exact tier", models.CriterionCompanySize,
			models.QuestionnaireAnswers{models.KeyCompanySize: models.Text("startup")}, retailPackage("r"), 1.0},
		{"size growth fallback", models.CriterionCompanySize,
			models.QuestionnaireAnswers{models.KeyCompanySize: models.Text("startup")}, growthPackage("g"), 0.7},
		{"size miss", models.CriterionCompanySize,
			models.QuestionnaireAnswers{models.KeyCompanySize: models.Text("startup")}, enterprisePackage("e"), 0.4},
		{"industry tag", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("retail")}, retailPackage("r"), 1.0},
		{"industry mentioned", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("enterprise")}, enterprisePackage("e"), 0.8},
		{"industry universal", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("mining")}, growthPackage("g"), 0.6},
		{"industry containing all on all-tagged package", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("installation services")},
			models.ServicePackage{IndustryTags: []string{"all"}}, 0.6},
		{"industry on universal package", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("universal studios")}, growthPackage("g"), 0.6},
		{"industry miss", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("mining")}, retailPackage("r"), 0.3},
		{"budget band", models.CriterionBudgetRange,
			models.QuestionnaireAnswers{models.KeyBudgetRange: models.Text("10k-25k")},
			models.ServicePackage{PriceRange: "$5K - $10K"}, 1.0},
		{"budget five to ten", models.CriterionBudgetRange,
			models.QuestionnaireAnswers{models.KeyBudgetRange: models.Text("$5K-$10K")},
			models.ServicePackage{PriceRange: "$5K - $10K"}, 1.0},
		{"budget miss", models.CriterionBudgetRange,
			models.QuestionnaireAnswers{models.KeyBudgetRange: models.Text("bootstrap")}, enterprisePackage("e"), 0.4},
		{"urgent fast service", models.CriterionTimeline,
			models.QuestionnaireAnswers{models.KeyTimeline: models.Text("immediate")},
			models.ServicePackage{Timeline: "10 days"}, 1.0},
		{"urgent slow service", models.CriterionTimeline,
			models.QuestionnaireAnswers{models.KeyTimeline: models.Text("urgent")},
			models.ServicePackage{Timeline: "3-4 months"}, 0.3},
		{"asap fast service", models.CriterionTimeline,
			models.QuestionnaireAnswers{models.KeyTimeline: models.Text("ASAP")},
			models.ServicePackage{Timeline: "2 weeks"}, 1.0},
		{"months fits", models.CriterionTimeline,
			models.QuestionnaireAnswers{models.KeyTimeline: models.Text("1-3 months")},
			models.ServicePackage{Timeline: "12 months"}, 1.0},
		{"months open ended", models.CriterionTimeline,
			models.QuestionnaireAnswers{models.KeyTimeline: models.Text("1-3 months")},
			models.ServicePackage{Timeline: "ongoing"}, 0.7},
		{"exploring", models.CriterionTimeline,
			models.QuestionnaireAnswers{models.KeyTimeline: models.Text("exploring")}, retailPackage("r"), 0.6},
		{"goals partial", models.CriterionPrimaryGoals,
			models.QuestionnaireAnswers{models.KeyPrimaryGoals: models.List("automation", "digital transformation", "hiring")},
			enterprisePackage("e"), 0.8},
		{"goals none", models.CriterionPrimaryGoals,
			models.QuestionnaireAnswers{models.KeyPrimaryGoals: models.List("hiring")}, enterprisePackage("e"), 0.4},
		{"complexity tier", models.CriterionComplexityLevel,
			models.QuestionnaireAnswers{models.KeyComplexityLevel: models.Text("simple")}, retailPackage("r"), 1.0},
		{"complexity miss", models.CriterionComplexityLevel,
			models.QuestionnaireAnswers{models.KeyComplexityLevel: models.Text("simple")}, enterprisePackage("e"), 0.5},
		{"absent answer", models.CriterionIndustry,
			models.QuestionnaireAnswers{models.KeyIndustry: models.Text("  ")}, retailPackage("r"), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := NewMatcher().Score(tt.answers, tt.pkg)
			assert.InDelta(t, tt.expected, match.CriteriaScores[tt.criterion], 0.0001)
		})
	}
}

func TestClassification(t *testing.T) {
	confidence := []struct {
		score, coverage float64
		expected        models.ConfidenceLevel
	}{
		{0.7, 0.6, models.ConfidenceHigh},
		{0.9, 0.5, models.ConfidenceMedium},
		{0.5, 0.4, models.ConfidenceMedium},
		{0.6, 0.3, models.ConfidenceLow},
		{0.49, 1.0, models.ConfidenceLow},
	}
	for _, tt := range confidence {
		assert.Equal(t, tt.expected, classifyConfidence(tt.score, tt.coverage), "%v/%v", tt.score, tt.coverage)
	}

	recommendation := []struct {
		score      float64
		confidence models.ConfidenceLevel
		expected   models.RecommendationType
	}{
		{0.8, models.ConfidenceHigh, models.RecommendationPrimary},
		{0.8, models.ConfidenceMedium, models.RecommendationAlternative},
		{0.5, models.ConfidenceMedium, models.RecommendationAlternative},
		{0.4, models.ConfidenceLow, models.RecommendationConsider},
	}
	for _, tt := range recommendation {
		assert.Equal(t, tt.expected, classifyRecommendation(tt.score, tt.confidence))
	}
}
