// internal/workers/matching/match-services/models.go
package matchservices

import (
	"encoding/json"

	"consultation-workers/internal/models"
)

// Input carries the answers to match. Packages, when present (even empty), replaces the
// catalog snapshot for this job.
type Input struct {
	SubmissionID string                  `json:"submissionId,omitempty"`
	Answers      json.RawMessage         `json:"answers"`
	Packages     []models.ServicePackage `json:"packages,omitempty"`
	MaxResults   int                     `json:"maxResults,omitempty"`
}

type Output struct {
	SubmissionID    string                `json:"submissionId,omitempty"`
	MatchingResult  models.MatchingResult `json:"matchingResult"`
	HasPrimaryMatch bool                  `json:"hasPrimaryMatch"`
	CatalogVersion  uint64                `json:"catalogVersion"`
	Cached          bool                  `json:"cached"`
}
