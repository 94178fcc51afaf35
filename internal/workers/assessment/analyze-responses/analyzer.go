// internal/workers/assessment/analyze-responses/analyzer.go
package analyzeresponses

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"consultation-workers/internal/models"
)

// Qualification points per rank of the matching models scale.
var (
	budgetPoints   = []int{5, 10, 18, 24, 28, 30}
	revenuePoints  = []int{0, 5, 10, 15, 20, 25}
	timelinePoints = []int{20, 18, 15, 10, 5, 2}
	sizePoints     = []int{3, 5, 8, 11, 13, 15}
)

const (
	maxBudgetPoints   = 30
	maxRevenuePoints  = 25
	maxTimelinePoints = 20
	maxSizePoints     = 15
	maxGoalPoints     = 10
	pointsPerGoal     = 2

	baseConsistency = 80
)

var highValueGoals = map[string]bool{
	"revenue_growth":         true,
	"digital_transformation": true,
	"scale_operations":       true,
	"market_expansion":       true,
	"operational_efficiency": true,
	"automation":             true,
	"customer_acquisition":   true,
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Analyzer derives answer-quality signals and the qualification score. It holds no state.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analysis bundles the readiness and qualification results for one submission.
type Analysis struct {
	Readiness     models.AIReadinessResult  `json:"readiness"`
	Qualification models.QualificationResult `json:"qualification"`
}

func (a *Analyzer) Analyze(answers models.QuestionnaireAnswers) Analysis {
	return Analysis{
		Readiness:     a.Readiness(answers),
		Qualification: a.Qualification(answers),
	}
}

// Completeness is the share of keys that carry an answer, 0-100.
func (a *Analyzer) Completeness(answers models.QuestionnaireAnswers) int {
	answered := 0
	for _, v := range answers {
		if v.IsAnswered() {
			answered++
		}
	}
	return percent(answered, len(answers))
}

// Depth rewards richer answers with up to 10 points per answered question, 0-100.
func (a *Analyzer) Depth(answers models.QuestionnaireAnswers) int {
	earned, answered := 0, 0
	for _, v := range answers {
		if !v.IsAnswered() {
			continue
		}
		answered++
		earned += depthPoints(v)
	}
	return percent(earned, 10*answered)
}

func depthPoints(v models.AnswerValue) int {
	switch v.Kind {
	case models.AnswerList:
		switch n := len(v.Items); {
		case n >= 3:
			return 10
		case n >= 2:
			return 7
		default:
			return 5
		}
	case models.AnswerText:
		switch n := utf8.RuneCountInString(strings.TrimSpace(v.Text)); {
		case n >= 200:
			return 10
		case n >= 100:
			return 8
		case n >= 50:
			return 6
		case n >= 20:
			return 4
		default:
			return 2
		}
	default:
		return 5
	}
}

// Consistency starts at 80 and loses points for contradictions between ordinal answers.
func (a *Analyzer) Consistency(answers models.QuestionnaireAnswers) int {
	score := baseConsistency

	budget := models.BudgetScale.Rank(answers.Text(models.KeyBudgetRange))
	revenue := models.RevenueScale.Rank(answers.Text(models.KeyAnnualRevenue))
	size := models.SizeScale.Rank(answers.Text(models.KeyCompanySize))
	timeline := models.TimelineScale.Rank(answers.Text(models.KeyTimeline))

	if budget >= 0 && revenue >= 0 {
		switch d := abs(budget - revenue); {
		case d >= 3:
			score -= 20
		case d == 2:
			score -= 10
		}
	}

	if size >= 0 && revenue >= 0 {
		switch d := abs(size - revenue); {
		case d >= 3:
			score -= 15
		case d == 2:
			score -= 8
		}
	}

	// urgent work with no budget
	if timeline == 0 && budget == 0 {
		score -= 10
	}

	// large budget with no urgency
	if timeline >= 4 && budget >= 4 {
		score -= 5
	}

	return clamp(score, 0, 100)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Readiness blends completeness, depth and consistency 40/40/20.
func (a *Analyzer) Readiness(answers models.QuestionnaireAnswers) models.AIReadinessResult {
	c := a.Completeness(answers)
	d := a.Depth(answers)
	k := a.Consistency(answers)

	score := int(math.Round(float64(c)*0.4 + float64(d)*0.4 + float64(k)*0.2))

	return models.AIReadinessResult{
		Score:           score,
		Quality:         qualityBand(score),
		Completeness:    c,
		Depth:           d,
		Consistency:     k,
		Recommendations: readinessRecommendations(c, d, k),
	}
}

func qualityBand(score int) models.QualityBand {
	switch {
	case score >= 85:
		return models.QualityExcellent
	case score >= 70:
		return models.QualityGood
	case score >= 50:
		return models.QualityFair
	default:
		return models.QualityPoor
	}
}

const componentTarget = 70

type component struct {
	name     string
	value    int
	template string
}

// readinessRecommendations lists advice for every component under target, weakest first.
func readinessRecommendations(c, d, k int) []string {
	components := []component{
		{"completeness", c, "Answer the remaining questions to improve recommendation accuracy (currently %d%% complete)"},
		{"depth", d, "Add more detail to free-text answers so recommendations can be tailored (depth score %d)"},
		{"consistency", k, "Review budget, revenue and company size answers for contradictions (consistency score %d)"},
	}
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].value < components[j].value
	})

	var recs []string
	for _, comp := range components {
		if comp.value < componentTarget {
			recs = append(recs, fmt.Sprintf(comp.template, comp.value))
		}
	}
	if len(recs) == 0 {
		recs = append(recs, "Responses are complete and consistent enough for personalized recommendations")
	}
	return recs
}

// Qualification scores lead value from budget, revenue, timeline, size and goals. Absent
// fields drop out of the possible total; unknown values earn nothing but still count.
func (a *Analyzer) Qualification(answers models.QuestionnaireAnswers) models.QualificationResult {
	result := models.QualificationResult{Breakdown: []models.FieldScore{}}

	add := func(field string, value string, points, max int) {
		result.Earned += points
		result.Possible += max
		result.Breakdown = append(result.Breakdown, models.FieldScore{
			Field:  field,
			Value:  value,
			Points: points,
			Max:    max,
		})
	}

	ordinalFields := []struct {
		key    string
		scale  models.Scale
		points []int
		max    int
	}{
		{models.KeyBudgetRange, models.BudgetScale, budgetPoints, maxBudgetPoints},
		{models.KeyAnnualRevenue, models.RevenueScale, revenuePoints, maxRevenuePoints},
		{models.KeyTimeline, models.TimelineScale, timelinePoints, maxTimelinePoints},
		{models.KeyCompanySize, models.SizeScale, sizePoints, maxSizePoints},
	}

	for _, f := range ordinalFields {
		if !answers.Has(f.key) {
			continue
		}
		value := answers.Text(f.key)
		points := 0
		if idx := f.scale.Rank(value); idx >= 0 {
			points = f.points[idx]
		}
		add(f.key, value, points, f.max)
	}

	if answers.Has(models.KeyPrimaryGoals) {
		goals := answers.Values(models.KeyPrimaryGoals)
		points := 0
		for _, g := range goals {
			if highValueGoals[models.OrdinalKey(g)] {
				points += pointsPerGoal
			}
		}
		if points > maxGoalPoints {
			points = maxGoalPoints
		}
		add(models.KeyPrimaryGoals, strings.Join(goals, ","), points, maxGoalPoints)
	}

	result.Score = percent(result.Earned, result.Possible)
	return result
}
