// internal/models/matching.go
package models

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

type RecommendationType string

const (
	RecommendationPrimary     RecommendationType = "primary"
	RecommendationAlternative RecommendationType = "alternative"
	RecommendationConsider    RecommendationType = "consider"
)

// Matching criteria, in evaluation order.
const (
	CriterionBusinessType    = "business_type"
	CriterionCompanySize     = "company_size"
	CriterionIndustry        = "industry"
	CriterionBudgetRange     = "budget_range"
	CriterionTimeline        = "timeline"
	CriterionPrimaryGoals    = "primary_goals"
	CriterionComplexityLevel = "complexity_level"
)

type ServiceMatch struct {
	Service            ServicePackage     `json:"service"`
	MatchScore         float64            `json:"matchScore"`
	MatchReasons       []string           `json:"matchReasons"`
	ConfidenceLevel    ConfidenceLevel    `json:"confidenceLevel"`
	RecommendationType RecommendationType `json:"recommendationType"`
	CriteriaScores     map[string]float64 `json:"criteriaScores"`
}

type MatchingResult struct {
	PrimaryMatches         []ServiceMatch `json:"primaryMatches"`
	AlternativeMatches     []ServiceMatch `json:"alternativeMatches"`
	AllMatches             []ServiceMatch `json:"allMatches"`
	TotalServicesEvaluated int            `json:"totalServicesEvaluated"`
	MatchingConfidence     float64        `json:"matchingConfidence"`
}

// TopMatch returns the highest ranked primary match, if any.
func (r *MatchingResult) TopMatch() (ServiceMatch, bool) {
	if r == nil || len(r.PrimaryMatches) == 0 {
		return ServiceMatch{}, false
	}
	return r.PrimaryMatches[0], true
}
