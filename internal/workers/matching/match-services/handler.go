// internal/workers/matching/match-services/handler.go
package matchservices

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
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "match-services"
)

// Catalog is the read side of the catalog store.
type Catalog interface {
	SnapshotWithVersion() ([]models.ServicePackage, uint64)
}

type Handler struct {
	config       *Config
	matcher      *Matcher
	catalog      Catalog
	cache        *resultCache
	validator    *validation.Validator
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

// NewHandler builds the handler. rdb is only used when config.CacheEnabled is set; validator
// may be nil.
func NewHandler(config *Config, catalog Catalog, rdb *redis.Client, validator *validation.Validator, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	h := &Handler{
		config:       config,
		matcher:      NewMatcher(),
		catalog:      catalog,
		validator:    validator,
		errorHandler: errors.NewErrorHandler(l),
		logger:       l,
	}
	if config.CacheEnabled {
		h.cache = newResultCache(rdb, config.CacheTTL)
	}
	return h
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

	packages, version, fromCatalog := h.packages(input)

	var key string
	if fromCatalog && h.cache != nil {
		key, err = CacheKey(version, answers, maxResults)
		if err != nil {
			h.logger.Warn("match cache key failed", map[string]interface{}{"error": err})
		} else if cached := h.lookup(ctx, key); cached != nil {
			return h.output(input, *cached, version, true), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewEvaluationTimeoutError(err)
	}

	result := h.matcher.Match(answers, packages, maxResults)

	if len(result.AllMatches) > 0 {
		top := result.AllMatches[0]
		metrics.MatchScores.WithLabelValues(string(top.ConfidenceLevel)).Observe(top.MatchScore)
	}

	if key != "" {
		if err := h.cache.set(ctx, key, &result); err != nil {
			h.logger.Warn("match cache write failed", map[string]interface{}{
				"errorCode": string(errors.CodeOf(err)),
				"error":     err.Error(),
			})
		}
	}

	h.logger.Info("services matched", map[string]interface{}{
		"submissionId":       input.SubmissionID,
		"evaluated":          result.TotalServicesEvaluated,
		"primary":            len(result.PrimaryMatches),
		"alternatives":       len(result.AlternativeMatches),
		"matchingConfidence": result.MatchingConfidence,
		"catalogVersion":     version,
	})

	return h.output(input, result, version, false), nil
}

// packages returns the job-supplied packages or a catalog snapshot, and whether the
// snapshot was used.
func (h *Handler) packages(input *Input) ([]models.ServicePackage, uint64, bool) {
	if input.Packages != nil {
		return input.Packages, 0, false
	}
	if h.catalog == nil {
		return nil, 0, true
	}
	pkgs, version := h.catalog.SnapshotWithVersion()
	return pkgs, version, true
}

func (h *Handler) lookup(ctx context.Context, key string) *models.MatchingResult {
	cached, ok, err := h.cache.get(ctx, key)
	switch {
	case err != nil:
		metrics.MatchCacheLookups.WithLabelValues("error").Inc()
		h.logger.Warn("match cache read failed", map[string]interface{}{
			"errorCode": string(errors.CodeOf(err)),
			"error":     err.Error(),
		})
		return nil
	case !ok:
		metrics.MatchCacheLookups.WithLabelValues("miss").Inc()
		return nil
	default:
		metrics.MatchCacheLookups.WithLabelValues("hit").Inc()
		return cached
	}
}

func (h *Handler) output(input *Input, result models.MatchingResult, version uint64, cached bool) *Output {
	return &Output{
		SubmissionID:    input.SubmissionID,
		MatchingResult:  result,
		HasPrimaryMatch: len(result.PrimaryMatches) > 0,
		CatalogVersion:  version,
		Cached:          cached,
	}
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
