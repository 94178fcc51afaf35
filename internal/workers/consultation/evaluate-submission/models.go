// internal/workers/consultation/evaluate-submission/models.go
package evaluatesubmission

import (
	"encoding/json"

	"consultation-workers/internal/models"
)

type Input struct {
	SubmissionID string          `json:"submissionId,omitempty"`
	Answers      json.RawMessage `json:"answers"`
	MaxResults   int             `json:"maxResults,omitempty"`
}

type Output struct {
	SubmissionID    string                       `json:"submissionId,omitempty"`
	Readiness       models.AIReadinessResult     `json:"readiness"`
	Qualification   models.QualificationResult   `json:"qualification"`
	MatchingResult  models.MatchingResult        `json:"matchingResult"`
	Routing         models.QuestionRoutingResult `json:"routing"`
	Recommendation  string                       `json:"recommendation"`
	Report          *models.ConsultationReport   `json:"report"`
	ReportGenerated bool                         `json:"reportGenerated"`
	CatalogVersion  uint64                       `json:"catalogVersion"`
}
