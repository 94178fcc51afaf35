// internal/models/routing.go
package models

type RoutingRecommendation string

const (
	RoutingContinue            RoutingRecommendation = "continue"
	RoutingFastTrack           RoutingRecommendation = "fast-track"
	RoutingQualifyFurther      RoutingRecommendation = "qualify-further"
	RoutingRedirectToResources RoutingRecommendation = "redirect-to-resources"
)

// Plan identifiers used in routing plan recommendations.
const (
	PlanFoundation = "foundation"
	PlanGrowth     = "growth"
	PlanEnterprise = "enterprise"
	PlanStrategic  = "strategic"
)

type QuestionRoutingResult struct {
	Recommendation      RoutingRecommendation `json:"recommendation"`
	Score               int                   `json:"score"`
	Reasoning           []string              `json:"reasoning"`
	NextSteps           []string              `json:"nextSteps"`
	PlanRecommendations []string              `json:"planRecommendations"`
}

// GeneratesConsultation reports whether the outcome proceeds straight to a personalized
// consultation.
func (r QuestionRoutingResult) GeneratesConsultation() bool {
	return r.Recommendation == RoutingFastTrack || r.Recommendation == RoutingContinue
}
