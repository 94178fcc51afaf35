// internal/workers/matching/match-services/matcher.go
package matchservices

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"consultation-workers/internal/models"
)

const (
	DefaultMaxResults = 5

	maxPrimaryMatches     = 3
	maxAlternativeMatches = 5

	neutralScore     = 0.5
	coveredThreshold = 0.1
)

type criterion struct {
	name     string
	answer   string
	weight   float64
	evaluate func(e *evaluation) (float64, []string)
}

// criteria in evaluation order; weights sum to 1.0
var criteria = []criterion{
	{models.CriterionBusinessType, models.KeyBusinessType, 0.25, evaluateBusinessType},
	{models.CriterionCompanySize, models.KeyCompanySize, 0.20, evaluateCompanySize},
	{models.CriterionIndustry, models.KeyIndustry, 0.15, evaluateIndustry},
	{models.CriterionBudgetRange, models.KeyBudgetRange, 0.15, evaluateBudget},
	{models.CriterionTimeline, models.KeyTimeline, 0.10, evaluateTimeline},
	{models.CriterionPrimaryGoals, models.KeyPrimaryGoals, 0.10, evaluateGoals},
	{models.CriterionComplexityLevel, models.KeyComplexityLevel, 0.05, evaluateComplexity},
}

var relatedIndustries = map[string][]string{
	"technology":            {"software", "saas", "tech", "digital"},
	"software":              {"technology", "saas", "tech", "digital"},
	"saas":                  {"software", "technology", "tech", "digital"},
	"retail":                {"ecommerce", "e-commerce", "consumer", "shopping"},
	"ecommerce":             {"retail", "e-commerce", "consumer", "digital"},
	"healthcare":            {"medical", "health", "wellness", "pharma"},
	"finance":               {"fintech", "banking", "financial", "insurance"},
	"manufacturing":         {"industrial", "production", "logistics", "supply chain"},
	"logistics":             {"supply chain", "transportation", "manufacturing", "distribution"},
	"professional services": {"consulting", "agency", "legal", "accounting"},
	"hospitality":           {"restaurant", "travel", "food", "tourism"},
	"education":             {"edtech", "training", "learning", "e-learning"},
	"real estate":           {"property", "construction", "housing"},
}

var sizeTiers = map[string][]models.ServiceTier{
	"solo":       {models.TierFoundation},
	"startup":    {models.TierFoundation},
	"small":      {models.TierFoundation, models.TierGrowth},
	"medium":     {models.TierGrowth},
	"large":      {models.TierGrowth, models.TierEnterprise},
	"enterprise": {models.TierEnterprise},
}

var complexityTiers = map[string][]models.ServiceTier{
	"simple":       {models.TierFoundation},
	"basic":        {models.TierFoundation},
	"low":          {models.TierFoundation},
	"moderate":     {models.TierGrowth},
	"medium":       {models.TierGrowth},
	"complex":      {models.TierGrowth, models.TierEnterprise},
	"high":         {models.TierGrowth, models.TierEnterprise},
	"very_complex": {models.TierEnterprise},
	"enterprise":   {models.TierEnterprise},
}

var spaceRemover = strings.NewReplacer(" ", "")

// Matcher ranks service packages against questionnaire answers. It holds no state.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// evaluation is the per-package view the criterion evaluators work on.
type evaluation struct {
	answers models.QuestionnaireAnswers
	pkg     models.ServicePackage
	tags    []string
	text    string
}

func newEvaluation(answers models.QuestionnaireAnswers, pkg models.ServicePackage) *evaluation {
	tags := make([]string, 0, len(pkg.IndustryTags))
	for _, tag := range pkg.IndustryTags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}
	return &evaluation{
		answers: answers,
		pkg:     pkg,
		tags:    tags,
		text:    strings.ToLower(pkg.Title + " " + pkg.Description),
	}
}

func isUniversalTag(tag string) bool {
	return tag == "universal" || tag == "all"
}

func (e *evaluation) universal() bool {
	for _, tag := range e.tags {
		if isUniversalTag(tag) {
			return true
		}
	}
	return false
}

var phraseSeparators = strings.NewReplacer("_", " ", "-", " ")

func phraseWords(s string) []string {
	return strings.Fields(phraseSeparators.Replace(strings.ToLower(s)))
}

// containsPhrase reports whether needle appears as consecutive whole words in haystack.
func containsPhrase(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, w := range needle {
			if haystack[i+j] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// tagMatches compares an answer with the package's specific tags word by word. Universal
// tags never match here; they only earn the universal fallback.
func (e *evaluation) tagMatches(term string) bool {
	termWords := phraseWords(term)
	if len(termWords) == 0 {
		return false
	}
	for _, tag := range e.tags {
		if tag == "" || isUniversalTag(tag) {
			continue
		}
		tagWords := phraseWords(tag)
		if containsPhrase(tagWords, termWords) || containsPhrase(termWords, tagWords) {
			return true
		}
	}
	return false
}

func (e *evaluation) tierIn(tiers []models.ServiceTier) bool {
	for _, t := range tiers {
		if e.pkg.Tier == t {
			return true
		}
	}
	return false
}

func evaluateBusinessType(e *evaluation) (float64, []string) {
	bt := e.answers.Text(models.KeyBusinessType)
	if e.tagMatches(bt) {
		return 1.0, []string{fmt.Sprintf("Specializes in %s businesses", bt)}
	}
	for _, related := range relatedIndustries[bt] {
		if e.tagMatches(related) {
			return 0.7, []string{fmt.Sprintf("Experience with industries related to %s", bt)}
		}
	}
	if e.universal() {
		return 0.6, []string{"Applicable across business types"}
	}
	return 0.3, nil
}

func evaluateCompanySize(e *evaluation) (float64, []string) {
	size := e.answers.Text(models.KeyCompanySize)
	if e.tierIn(sizeTiers[models.OrdinalKey(size)]) {
		return 1.0, []string{fmt.Sprintf("Designed for %s companies", size)}
	}
	if e.pkg.Tier == models.TierGrowth {
		return 0.7, []string{"Growth tier scales to most company sizes"}
	}
	return 0.4, nil
}

func evaluateIndustry(e *evaluation) (float64, []string) {
	industry := e.answers.Text(models.KeyIndustry)
	if e.tagMatches(industry) {
		return 1.0, []string{fmt.Sprintf("Industry expertise in %s", industry)}
	}
	if industry != "" && strings.Contains(e.text, industry) {
		return 0.8, []string{fmt.Sprintf("Addresses %s industry needs", industry)}
	}
	if e.universal() {
		return 0.6, []string{"Proven across industries"}
	}
	return 0.3, nil
}

func evaluateBudget(e *evaluation) (float64, []string) {
	budget := e.answers.Text(models.KeyBudgetRange)
	price := strings.ToLower(spaceRemover.Replace(e.pkg.PriceRange))
	for _, band := range models.BudgetBands[models.OrdinalKey(budget)] {
		if strings.Contains(price, band) {
			return 1.0, []string{fmt.Sprintf("Fits a %s budget (%s)", budget, e.pkg.PriceRange)}
		}
	}
	return 0.4, nil
}

func evaluateTimeline(e *evaluation) (float64, []string) {
	timeline := e.answers.Text(models.KeyTimeline)
	service := strings.ToLower(e.pkg.Timeline)

	switch {
	case models.IsUrgentTimeline(timeline):
		if strings.Contains(service, "day") || strings.Contains(service, "week") {
			return 1.0, []string{fmt.Sprintf("Fast delivery (%s)", e.pkg.Timeline)}
		}
		return 0.3, nil
	case strings.Contains(timeline, "month"):
		if strings.Contains(service, "month") || strings.Contains(service, "week") {
			return 1.0, []string{fmt.Sprintf("Delivery fits a %s timeline", timeline)}
		}
		return 0.7, nil
	default:
		return 0.6, nil
	}
}

func evaluateGoals(e *evaluation) (float64, []string) {
	goals := e.answers.Values(models.KeyPrimaryGoals)
	if len(goals) == 0 {
		return neutralScore, nil
	}

	features := strings.ToLower(strings.Join(e.pkg.Features, "\n"))
	description := strings.ToLower(e.pkg.Description)

	var reasons []string
	for _, goal := range goals {
		term := strings.ReplaceAll(goal, "_", " ")
		if strings.Contains(description, term) || strings.Contains(features, term) {
			reasons = append(reasons, fmt.Sprintf("Supports your goal: %s", term))
		}
	}
	if len(reasons) == 0 {
		return 0.4, nil
	}
	return math.Min(float64(len(reasons))/float64(len(goals))*1.2, 1.0), reasons
}

func evaluateComplexity(e *evaluation) (float64, []string) {
	level := e.answers.Text(models.KeyComplexityLevel)
	if e.tierIn(complexityTiers[models.OrdinalKey(level)]) {
		return 1.0, []string{fmt.Sprintf("Suited to %s projects", level)}
	}
	return 0.5, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Score evaluates one package. Absent answers score a neutral 0.5 with no reason.
func (m *Matcher) Score(answers models.QuestionnaireAnswers, pkg models.ServicePackage) models.ServiceMatch {
	e := newEvaluation(answers, pkg)

	total := 0.0
	covered := 0
	scores := make(map[string]float64, len(criteria))
	reasons := []string{}

	for _, c := range criteria {
		score := neutralScore
		if answers.Has(c.answer) {
			var why []string
			score, why = c.evaluate(e)
			reasons = append(reasons, why...)
		}
		scores[c.name] = score
		total += score * c.weight
		if score > coveredThreshold {
			covered++
		}
	}

	matchScore := round2(math.Min(math.Max(total, 0), 1))
	confidence := classifyConfidence(matchScore, float64(covered)/float64(len(criteria)))

	return models.ServiceMatch{
		Service:            pkg,
		MatchScore:         matchScore,
		MatchReasons:       reasons,
		ConfidenceLevel:    confidence,
		RecommendationType: classifyRecommendation(matchScore, confidence),
		CriteriaScores:     scores,
	}
}

func classifyConfidence(score, coverage float64) models.ConfidenceLevel {
	switch {
	case score >= 0.7 && coverage >= 0.6:
		return models.ConfidenceHigh
	case score >= 0.5 && coverage >= 0.4:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func classifyRecommendation(score float64, confidence models.ConfidenceLevel) models.RecommendationType {
	switch {
	case score >= 0.7 && confidence == models.ConfidenceHigh:
		return models.RecommendationPrimary
	case score >= 0.5:
		return models.RecommendationAlternative
	default:
		return models.RecommendationConsider
	}
}

// Match scores every package and buckets the ranked results. maxResults <= 0 means
// DefaultMaxResults. An empty catalog yields an empty result with confidence 0.
func (m *Matcher) Match(answers models.QuestionnaireAnswers, packages []models.ServicePackage, maxResults int) models.MatchingResult {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	result := models.MatchingResult{
		PrimaryMatches:         []models.ServiceMatch{},
		AlternativeMatches:     []models.ServiceMatch{},
		AllMatches:             make([]models.ServiceMatch, 0, len(packages)),
		TotalServicesEvaluated: len(packages),
	}
	if len(packages) == 0 {
		return result
	}

	sum := 0.0
	for _, pkg := range packages {
		match := m.Score(answers, pkg)
		sum += match.MatchScore
		result.AllMatches = append(result.AllMatches, match)
	}
	sort.SliceStable(result.AllMatches, func(i, j int) bool {
		return result.AllMatches[i].MatchScore > result.AllMatches[j].MatchScore
	})

	primaryCap := min(maxPrimaryMatches, maxResults)
	for _, match := range result.AllMatches {
		if len(result.PrimaryMatches) == primaryCap {
			break
		}
		if match.RecommendationType == models.RecommendationPrimary {
			result.PrimaryMatches = append(result.PrimaryMatches, match)
		}
	}

	alternativeCap := min(maxAlternativeMatches, maxResults-len(result.PrimaryMatches))
	for _, match := range result.AllMatches {
		if len(result.AlternativeMatches) >= alternativeCap {
			break
		}
		if match.MatchScore >= 0.5 && match.MatchScore < 0.7 {
			result.AlternativeMatches = append(result.AlternativeMatches, match)
		}
	}

	result.MatchingConfidence = round2(math.Min(sum/float64(len(packages))*1.2, 1.0))
	return result
}
