// internal/workers/consultation/evaluate-submission/pipeline.go
package evaluatesubmission

import (
	"context"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/models"
	analyzeresponses "consultation-workers/internal/workers/assessment/analyze-responses"
	matchservices "consultation-workers/internal/workers/matching/match-services"
	assemblereport "consultation-workers/internal/workers/reporting/assemble-report"
	routelead "consultation-workers/internal/workers/routing/route-lead"

	"golang.org/x/sync/errgroup"
)

// Evaluation carries every intermediate result of one submission. Report is nil unless the
// lead routes to a consultation and has a primary match.
type Evaluation struct {
	Analysis analyzeresponses.Analysis    `json:"analysis"`
	Matching models.MatchingResult        `json:"matching"`
	Routing  models.QuestionRoutingResult `json:"routing"`
	Report   *models.ConsultationReport   `json:"report"`
}

// Pipeline chains analysis, matching, routing and report assembly.
type Pipeline struct {
	analyzer  *analyzeresponses.Analyzer
	matcher   *matchservices.Matcher
	engine    *routelead.Engine
	assembler *assemblereport.Assembler
}

func NewPipeline() *Pipeline {
	return &Pipeline{
		analyzer:  analyzeresponses.NewAnalyzer(),
		matcher:   matchservices.NewMatcher(),
		engine:    routelead.NewEngine(),
		assembler: assemblereport.NewAssembler(),
	}
}

// Evaluate runs the analyzer and matcher concurrently over the same answers and package
// snapshot, then routes the lead and assembles the quick-path report when it qualifies.
func (p *Pipeline) Evaluate(
	ctx context.Context,
	answers models.QuestionnaireAnswers,
	packages []models.ServicePackage,
	maxResults int,
) (*Evaluation, error) {
	var eval Evaluation

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		eval.Analysis = p.analyzer.Analyze(answers)
		return gctx.Err()
	})
	g.Go(func() error {
		eval.Matching = p.matcher.Match(answers, packages, maxResults)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, errors.NewEvaluationTimeoutError(err)
	}

	eval.Routing = p.engine.Decide(eval.Analysis.Qualification.Score, eval.Analysis.Readiness.Completeness)

	if eval.Routing.GeneratesConsultation() && len(eval.Matching.PrimaryMatches) > 0 {
		report, err := p.assembler.FromMatching(models.ClientInfoFromAnswers(answers), eval.Matching)
		if err != nil {
			return nil, err
		}
		eval.Report = report
	}

	return &eval, nil
}
