// internal/workers/assessment/analyze-responses/handler.go
package analyzeresponses

import (
	"context"
	"encoding/json"
	"strings"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/common/logger"
	"consultation-workers/internal/common/metrics"
	"consultation-workers/internal/common/validation"
	"consultation-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "analyze-responses"
)

type Handler struct {
	config       *Config
	analyzer     *Analyzer
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. validator may be nil, in which case job variables are only
// checked for shape while decoding.
func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		analyzer:     NewAnalyzer(),
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
	if err := ctx.Err(); err != nil {
		return nil, errors.NewEvaluationTimeoutError(err)
	}

	analysis := h.analyzer.Analyze(answers)

	h.logger.Info("responses analyzed", map[string]interface{}{
		"submissionId":       input.SubmissionID,
		"answerCount":        len(answers),
		"readiness":          analysis.Readiness.Score,
		"quality":            analysis.Readiness.Quality,
		"qualificationScore": analysis.Qualification.Score,
	})

	return &Output{
		SubmissionID:       input.SubmissionID,
		Readiness:          analysis.Readiness,
		Qualification:      analysis.Qualification,
		QualificationScore: analysis.Qualification.Score,
		Completeness:       analysis.Readiness.Completeness,
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

// failJob runs on a fresh context so a timed-out job can still be reported.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.CodeOf(err))).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
