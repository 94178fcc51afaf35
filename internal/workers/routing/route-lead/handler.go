// internal/workers/routing/route-lead/handler.go
package routelead

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"consultation-workers/internal/common/errors"
	"consultation-workers/internal/common/logger"
	"consultation-workers/internal/common/metrics"
	"consultation-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "route-lead"

	notificationSubject = "Lead routing decision"
)

// Publisher sends routing outcomes to the lead-handling workflow. *aws.SNSClient
// satisfies it.
type Publisher interface {
	PublishJSON(ctx context.Context, topicARN, subject string, payload interface{}, attributes map[string]string) (string, error)
}

type Handler struct {
	config       *Config
	engine       *Engine
	publisher    Publisher
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. publisher is only used when config.TopicARN is set.
func NewHandler(config *Config, publisher Publisher, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		engine:       NewEngine(),
		publisher:    publisher,
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
	routing := h.engine.Decide(input.QualificationScore, input.Completeness)
	metrics.RoutingOutcomes.WithLabelValues(string(routing.Recommendation)).Inc()

	output := &Output{
		SubmissionID:         input.SubmissionID,
		Routing:              routing,
		Recommendation:       string(routing.Recommendation),
		GenerateConsultation: routing.GeneratesConsultation(),
	}

	if h.config.TopicARN != "" && h.publisher != nil {
		output.NotificationID = h.publish(ctx, input, output)
	}

	h.logger.Info("lead routed", map[string]interface{}{
		"submissionId":       input.SubmissionID,
		"qualificationScore": input.QualificationScore,
		"completeness":       input.Completeness,
		"recommendation":     routing.Recommendation,
		"score":              routing.Score,
	})

	return output, nil
}

// publish sends the routing event and returns the message id. Failures are logged and
// leave the routing decision intact.
func (h *Handler) publish(ctx context.Context, input *Input, output *Output) string {
	event := routingEvent{
		SubmissionID:       input.SubmissionID,
		QualificationScore: input.QualificationScore,
		Completeness:       input.Completeness,
		Routing:            output.Routing,
		DecidedAt:          time.Now().UTC().Format(time.RFC3339),
	}
	attrs := map[string]string{"recommendation": output.Recommendation}

	id, err := h.publisher.PublishJSON(ctx, h.config.TopicARN, notificationSubject, event, attrs)
	if err != nil {
		pubErr := errors.NewRoutingPublishFailedError(h.config.TopicARN, err)
		h.logger.Warn("routing notification failed", map[string]interface{}{
			"errorCode": string(pubErr.Code),
			"error":     pubErr.Error(),
		})
		return ""
	}
	return id
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
