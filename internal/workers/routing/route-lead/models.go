// internal/workers/routing/route-lead/models.go
package routelead

import "consultation-workers/internal/models"

type Input struct {
	SubmissionID       string `json:"submissionId,omitempty"`
	QualificationScore int    `json:"qualificationScore"`
	Completeness       int    `json:"completeness"`
}

type Output struct {
	SubmissionID         string                       `json:"submissionId,omitempty"`
	Routing              models.QuestionRoutingResult `json:"routing"`
	Recommendation       string                       `json:"recommendation"`
	GenerateConsultation bool                         `json:"generateConsultation"`
	NotificationID       string                       `json:"notificationId,omitempty"`
}

// routingEvent is the message published for the lead-handling workflow.
type routingEvent struct {
	SubmissionID       string                       `json:"submissionId,omitempty"`
	QualificationScore int                          `json:"qualificationScore"`
	Completeness       int                          `json:"completeness"`
	Routing            models.QuestionRoutingResult `json:"routing"`
	DecidedAt          string                       `json:"decidedAt"`
}
