// internal/workers/consultation/evaluate-submission/handler.go
package evaluatesubmission

import (
	"context"
	"encoding/json"
	"strings"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/common/logger"
	"consultation-workers/internal/common/metrics"
	"consultation-workers/internal/common/observability"
	"consultation-workers/internal/common/validation"
	"consultation-workers/internal/models"
	matchservices "consultation-workers/internal/workers/matching/match-services"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-submission"
)

type Handler struct {
	config       *Config
	pipeline     *Pipeline
	catalog      matchservices.Catalog
	obs          *observability.Observability
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. obs and validator may be nil.
func NewHandler(
	config *Config,
	catalog matchservices.Catalog,
	obs *observability.Observability,
	validator *validation.Validator,
	log logger.Logger,
) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		pipeline:     NewPipeline(),
		catalog:      catalog,
		obs:          obs,
		validator:    validator,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	if h.validator != nil {
		result, err := h.validator.ValidateInput(TaskType, []byte(job.Variables))
		if err != nil {
			return nil, errors.NewParseError(err)
		}
		if !result.Valid {
			return nil, errors.NewInvalidArgumentError(strings.Join(result.GetErrorMessages(), "; "), nil)
		}
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	answers, err := models.ParseAnswers(input.Answers)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(err.Error(), err)
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = h.config.MaxResults
	}

	var (
		packages []models.ServicePackage
		version  uint64
	)
	if h.catalog != nil {
		packages, version = h.catalog.SnapshotWithVersion()
	}

	eval, err := h.pipeline.Evaluate(ctx, answers, packages, maxResults)
	if err != nil {
		return nil, err
	}

	metrics.RoutingOutcomes.WithLabelValues(string(eval.Routing.Recommendation)).Inc()
	h.obs.RecordEvaluation(ctx, string(eval.Routing.Recommendation), eval.Report != nil)

	h.logger.Info("submission evaluated", map[string]interface{}{
		"submissionId":       input.SubmissionID,
		"readiness":          eval.Analysis.Readiness.Score,
		"qualificationScore": eval.Analysis.Qualification.Score,
		"primaryMatches":     len(eval.Matching.PrimaryMatches),
		"recommendation":     eval.Routing.Recommendation,
		"reportGenerated":    eval.Report != nil,
		"catalogVersion":     version,
	})

	return &Output{
		SubmissionID:    input.SubmissionID,
		Readiness:       eval.Analysis.Readiness,
		Qualification:   eval.Analysis.Qualification,
		MatchingResult:  eval.Matching,
		Routing:         eval.Routing,
		Recommendation:  string(eval.Routing.Recommendation),
		Report:          eval.Report,
		ReportGenerated: eval.Report != nil,
		CatalogVersion:  version,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(client, job, errors.NewWorkflowEngineError("complete job", false, err))
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
