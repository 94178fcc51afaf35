// internal/workers/reporting/assemble-report/assembler.go
package assemblereport

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"time"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"

	"github.com/google/uuid"
)

const (
	GeneratorID     = "consultation-report-assembler"
	TemplateVersion = "1.0"

	defaultTimeline = "8-12 weeks"
	wordsPerMinute  = 200
)

// ErrMissingPrimaryMatch is wrapped by the MISSING_PRIMARY_MATCH error returned when a
// report is requested without a primary match.
var ErrMissingPrimaryMatch = stderrors.New("report requires a primary service match")

const executiveSummaryTemplate = "Based on your assessment, {{service}} is the strongest fit for {{company}}, " +
	"with {{confidence}}% match confidence. As a {{businessType}} business focused on {{goals}}, " +
	"this {{tier}}-tier engagement addresses your most important priorities first."

type sectionTemplate struct {
	id    string
	title string
	body  string
}

var quickSections = []sectionTemplate{
	{"assessment-summary", "Assessment Summary",
		"We evaluated {{evaluated}} service packages against your questionnaire responses. " +
			"Overall matching confidence is {{matchingConfidence}}%."},
	{"matching-analysis", "Matching Analysis",
		"{{service}} scored {{confidence}}% with {{confidenceLevel}} confidence. Key factors: {{reasons}}."},
	{"primary-recommendation", "Primary Recommendation",
		"{{service}} ({{priceRange}}, {{timeline}}). {{description}} What you get: {{whatYouGet}}"},
	{"alternatives", "Alternative Options", "{{alternativesSummary}}"},
}

var richSections = []sectionTemplate{
	{"business-analysis", "Business Analysis", "{{businessAnalysis}}"},
	{"key-insights", "Key Insights", "{{insights}}"},
	{"recommendations", "Recommendations",
		"We recommend {{service}} as your primary engagement. {{whyThisFits}} {{alternativesSummary}}"},
	{"implementation-approach", "Implementation Approach",
		"Delivery runs in three phases over {{timeline}}: discovery and planning, implementation, " +
			"then optimization and growth. {{actionItems}}"},
	{"expected-outcomes", "Expected Outcomes",
		"{{company}} can expect {{outcomes}}, with progress reviewed at every phase milestone."},
}

var roadmapPhases = []models.RoadmapPhase{
	{Phase: 1, Title: "Discovery & Planning", Duration: "2-3 weeks", Milestones: []string{
		"Stakeholder interviews completed",
		"Current-state assessment delivered",
		"Implementation plan approved",
	}},
	{Phase: 2, Title: "Implementation", Duration: "Core engagement", Milestones: []string{
		"Priority initiatives launched",
		"Progress reviewed every two weeks",
		"Mid-point results presented",
	}},
	{Phase: 3, Title: "Optimization & Growth", Duration: "Ongoing", Milestones: []string{
		"Results measured against baseline",
		"Processes refined from early results",
		"Long-term growth plan handed over",
	}},
}

var defaultNextSteps = []string{
	"Schedule a consultation call to review this report",
	"Confirm scope and timeline for the recommended service",
	"Share any additional context with your consultant",
}

// Assembler builds consultation reports from a matching result or a pre-generated
// consultation. It holds no per-report state.
type Assembler struct {
	now   func() time.Time
	newID func() string
}

func NewAssembler() *Assembler {
	return &Assembler{now: time.Now, newID: uuid.NewString}
}

func missingPrimary(details string) error {
	return errors.NewMissingPrimaryMatchError(details, ErrMissingPrimaryMatch)
}

// FromMatching builds the quick-path report. The matching result must carry a primary match.
func (a *Assembler) FromMatching(client models.ClientInfo, result models.MatchingResult) (*models.ConsultationReport, error) {
	primary, ok := result.TopMatch()
	if !ok {
		return nil, missingPrimary("matching result has no primary matches")
	}

	alternatives := make([]models.ServicePackage, 0, len(result.AlternativeMatches))
	for _, m := range result.AlternativeMatches {
		alternatives = append(alternatives, m.Service)
	}

	data := baseData(client, primary)
	data["evaluated"] = fmt.Sprint(result.TotalServicesEvaluated)
	data["matchingConfidence"] = fmt.Sprint(percent(result.MatchingConfidence))
	data["confidenceLevel"] = string(primary.ConfidenceLevel)
	data["reasons"] = orDefault(joinList(primary.MatchReasons), "overall fit across your answers")
	data["priceRange"] = primary.Service.PriceRange
	data["description"] = primary.Service.Description
	data["whatYouGet"] = orDefault(primary.Service.Content.WhatYouGet, strings.Join(primary.Service.Features, ", "))
	data["alternativesSummary"] = alternativesSummary(alternatives)

	nextSteps := primary.Service.Content.NextSteps
	if len(nextSteps) == 0 {
		nextSteps = defaultNextSteps
	}

	return a.build(client, primary, alternatives, quickSections, data, nextSteps, percent(primary.MatchScore)), nil
}

// FromConsultation builds the rich-path report from a pre-generated consultation.
func (a *Assembler) FromConsultation(consultation models.ConsultationData) (*models.ConsultationReport, error) {
	if consultation.PrimaryService == nil {
		return nil, missingPrimary("consultation has no primary service")
	}
	primary := *consultation.PrimaryService
	client := consultation.ClientInfo

	alternatives := make([]models.ServicePackage, 0, len(consultation.AlternativeServices))
	for _, m := range consultation.AlternativeServices {
		alternatives = append(alternatives, m.Service)
	}

	data := baseData(client, primary)
	data["businessAnalysis"] = orDefault(consultation.BusinessAnalysis, renderTemplate(
		"{{company}} is a {{businessType}} business whose answers point to {{goals}} as the main priority.", data))
	data["insights"] = orDefault(strings.Join(consultation.KeyInsights, ". "), joinList(primary.MatchReasons))
	data["whyThisFits"] = orDefault(primary.Service.Content.WhyThisFits, primary.Service.Description)
	data["alternativesSummary"] = alternativesSummary(alternatives)
	data["actionItems"] = strings.Join(consultation.ActionItems, ". ")
	data["outcomes"] = orDefault(strings.ToLower(joinList(primary.Service.Features)), "measurable progress on your goals")

	nextSteps := consultation.ActionItems
	if len(nextSteps) == 0 {
		nextSteps = defaultNextSteps
	}

	score := consultation.ConsultationScore
	if score == 0 {
		score = percent(primary.MatchScore)
	}

	return a.build(client, primary, alternatives, richSections, data, nextSteps, score), nil
}

func baseData(client models.ClientInfo, primary models.ServiceMatch) map[string]string {
	return map[string]string{
		"service":      primary.Service.Title,
		"company":      orDefault(client.CompanyName, "your business"),
		"confidence":   fmt.Sprint(percent(primary.MatchScore)),
		"businessType": orDefault(client.BusinessType, "growing"),
		"goals":        orDefault(joinList(client.Goals), "sustainable growth"),
		"tier":         string(primary.Service.Tier),
		"timeline":     orDefault(primary.Service.Timeline, defaultTimeline),
	}
}

func alternativesSummary(alternatives []models.ServicePackage) string {
	if len(alternatives) == 0 {
		return "No alternative packages met the recommendation threshold, so the primary recommendation is the clear fit."
	}
	titles := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		titles = append(titles, alt.Title)
	}
	return fmt.Sprintf("Other packages worth considering: %s.", joinList(titles))
}

func (a *Assembler) build(
	client models.ClientInfo,
	primary models.ServiceMatch,
	alternatives []models.ServicePackage,
	templates []sectionTemplate,
	data map[string]string,
	nextSteps []string,
	score int,
) *models.ConsultationReport {
	sections := make([]models.ReportSection, 0, len(templates))
	for _, tpl := range templates {
		sections = append(sections, models.ReportSection{
			ID:    tpl.id,
			Title: tpl.title,
			Body:  strings.TrimSpace(renderTemplate(tpl.body, data)),
		})
	}

	return &models.ConsultationReport{
		ID:               a.newID(),
		Title:            "Consultation Report for " + data["company"],
		ClientInfo:       client,
		ExecutiveSummary: renderTemplate(executiveSummaryTemplate, data),
		Sections:         sections,
		Recommendations: models.ReportRecommendations{
			Primary:      primary.Service,
			Alternatives: alternatives,
			Reasoning:    append([]string{}, primary.MatchReasons...),
		},
		Roadmap:   buildRoadmap(primary.Service.Timeline),
		NextSteps: append([]string(nil), nextSteps...),
		Metadata: models.ReportMetadata{
			GeneratedBy:       GeneratorID,
			TemplateVersion:   TemplateVersion,
			ConsultationScore: score,
			EstimatedReadTime: EstimateReadTime(sections),
			GeneratedAt:       a.now().UTC().Format(time.RFC3339),
		},
	}
}

func buildRoadmap(timeline string) models.Roadmap {
	phases := make([]models.RoadmapPhase, len(roadmapPhases))
	for i, p := range roadmapPhases {
		phases[i] = p
		phases[i].Milestones = append([]string(nil), p.Milestones...)
	}
	return models.Roadmap{
		Timeline: orDefault(timeline, defaultTimeline),
		Phases:   phases,
	}
}

// EstimateReadTime is ceil(words in section titles and bodies / 200) minutes.
func EstimateReadTime(sections []models.ReportSection) int {
	words := 0
	for _, s := range sections {
		words += wordCount(s.Title) + wordCount(s.Body)
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

func percent(score float64) int {
	return int(math.Round(score * 100))
}
