// internal/workers/reporting/assemble-report/handler.go
package assemblereport

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
	TaskType = "assemble-report"
)

type Handler struct {
	config       *Config
	assembler    *Assembler
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		assembler:    NewAssembler(),
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
	if err := ctx.Err(); err != nil {
		return nil, errors.NewEvaluationTimeoutError(err)
	}

	var (
		report *models.ConsultationReport
		err    error
		path   string
	)
	switch {
	case input.Consultation != nil:
		path = "consultation"
		report, err = h.assembler.FromConsultation(*input.Consultation)
	case input.MatchingResult != nil:
		path = "matching"
		var client models.ClientInfo
		client, err = h.clientInfo(input)
		if err == nil {
			report, err = h.assembler.FromMatching(client, *input.MatchingResult)
		}
	default:
		return nil, errors.NewInvalidArgumentError("either matchingResult or consultation is required", nil)
	}
	if err != nil {
		return nil, err
	}

	h.logger.Info("report assembled", map[string]interface{}{
		"submissionId": input.SubmissionID,
		"reportId":     report.ID,
		"path":         path,
		"sections":     len(report.Sections),
		"readTime":     report.Metadata.EstimatedReadTime,
	})

	return &Output{
		SubmissionID: input.SubmissionID,
		Report:       report,
		ReportID:     report.ID,
	}, nil
}

func (h *Handler) clientInfo(input *Input) (models.ClientInfo, error) {
	if input.ClientData != nil {
		return *input.ClientData, nil
	}
	if len(input.Answers) == 0 {
		return models.ClientInfo{}, nil
	}
	answers, err := models.ParseAnswers(input.Answers)
	if err != nil {
		return models.ClientInfo{}, errors.NewInvalidArgumentError(err.Error(), err)
	}
	return models.ClientInfoFromAnswers(answers), nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.failJob(client, job, errors.NewReportBuildFailedError(err))
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
