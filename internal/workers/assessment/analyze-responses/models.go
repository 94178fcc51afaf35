// internal/workers/assessment/analyze-responses/models.go
package analyzeresponses

import (
	"encoding/json"

	"consultation-workers/internal/models"
)

type Input struct {
	SubmissionID string          `json:"submissionId,omitempty"`
	Answers      json.RawMessage `json:"answers"`
}

// Output flattens the scores the BPMN gateways branch on next to the full results.
type Output struct {
	SubmissionID       string                     `json:"submissionId,omitempty"`
	Readiness          models.AIReadinessResult   `json:"readiness"`
	Qualification      models.QualificationResult `json:"qualification"`
	QualificationScore int                        `json:"qualificationScore"`
	Completeness       int                        `json:"completeness"`
}
