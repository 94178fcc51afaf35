// internal/workers/routing/route-lead/engine.go
package routelead

import "consultation-workers/internal/models"

// Routing thresholds and fixed outcome scores.
const (
	fastTrackQualification = 80
	fastTrackCompleteness  = 70
	continueQualification  = 60
	continueCompleteness   = 50
	redirectQualification  = 40
	redirectCompleteness   = 30

	fastTrackScore      = 95
	continueScore       = 75
	redirectScore       = 30
	qualifyFurtherScore = 55
)

type outcome struct {
	recommendation models.RoutingRecommendation
	score          int
	reasoning      []string
	nextSteps      []string
	plans          []string
}

var (
	fastTrack = outcome{
		recommendation: models.RoutingFastTrack,
		score:          fastTrackScore,
		reasoning: []string{
			"High qualification score indicates strong business potential",
			"Comprehensive responses provide enough detail for personalized recommendations",
		},
		nextSteps: []string{
			"Generate a personalized consultation immediately",
			"Schedule a priority strategy call with a senior consultant",
		},
		plans: []string{models.PlanEnterprise, models.PlanGrowth},
	}

	proceed = outcome{
		recommendation: models.RoutingContinue,
		score:          continueScore,
		reasoning: []string{
			"Good qualification score shows a viable engagement",
			"Responses are complete enough to generate meaningful recommendations",
		},
		nextSteps: []string{
			"Generate the personalized consultation report",
			"Share recommended service packages for review",
		},
		plans: []string{models.PlanGrowth, models.PlanFoundation, models.PlanStrategic},
	}

	redirect = outcome{
		recommendation: models.RoutingRedirectToResources,
		score:          redirectScore,
		reasoning: []string{
			"Qualification or response completeness is below the consultation threshold",
			"Self-serve resources are a better fit at this stage",
		},
		nextSteps: []string{
			"Share guides and templates for early-stage businesses",
			"Invite the lead to revisit the questionnaire when ready",
		},
		plans: []string{models.PlanFoundation},
	}

	qualifyFurther = outcome{
		recommendation: models.RoutingQualifyFurther,
		score:          qualifyFurtherScore,
		reasoning: []string{
			"Moderate qualification score needs more detail before recommending services",
			"Additional questions will clarify budget, timeline and goals",
		},
		nextSteps: []string{
			"Send follow-up qualification questions",
			"Offer a short discovery call",
		},
		plans: []string{models.PlanFoundation, models.PlanStrategic},
	}
)

// Engine maps qualification and completeness to a routing outcome. It holds no state.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Decide is total over all inputs: the redirect branch is only reached when neither the
// fast-track nor the continue thresholds hold.
func (e *Engine) Decide(qualification, completeness int) models.QuestionRoutingResult {
	var o outcome
	switch {
	case qualification >= fastTrackQualification && completeness >= fastTrackCompleteness:
		o = fastTrack
	case qualification >= continueQualification && completeness >= continueCompleteness:
		o = proceed
	case qualification < redirectQualification || completeness < redirectCompleteness:
		o = redirect
	default:
		o = qualifyFurther
	}

	return models.QuestionRoutingResult{
		Recommendation:      o.recommendation,
		Score:               o.score,
		Reasoning:           append([]string(nil), o.reasoning...),
		NextSteps:           append([]string(nil), o.nextSteps...),
		PlanRecommendations: append([]string(nil), o.plans...),
	}
}
