// internal/workers/reporting/assemble-report/models.go
package assemblereport

import (
	"encoding/json"

	"consultation-workers/internal/models"
)

// Input selects the rich path when Consultation is set, otherwise the quick path from
// MatchingResult. Client details come from ClientData or, failing that, from Answers.
type Input struct {
	SubmissionID   string                   `json:"submissionId,omitempty"`
	ClientData     *models.ClientInfo       `json:"clientData,omitempty"`
	Answers        json.RawMessage          `json:"answers,omitempty"`
	MatchingResult *models.MatchingResult   `json:"matchingResult,omitempty"`
	Consultation   *models.ConsultationData `json:"consultation,omitempty"`
}

type Output struct {
	SubmissionID string                     `json:"submissionId,omitempty"`
	Report       *models.ConsultationReport `json:"report"`
	ReportID     string                     `json:"reportId"`
}
