// internal/models/assessment.go
package models

type QualityBand string

const (
	QualityExcellent QualityBand = "excellent"
	QualityGood      QualityBand = "good"
	QualityFair      QualityBand = "fair"
	QualityPoor      QualityBand = "poor"
)

// AIReadinessResult measures how complete, detailed and consistent a set of answers is.
type AIReadinessResult struct {
	Score           int         `json:"score"`
	Quality         QualityBand `json:"quality"`
	Completeness    int         `json:"completeness"`
	Depth           int         `json:"depth"`
	Consistency     int         `json:"consistency"`
	Recommendations []string    `json:"recommendations"`
}

// QualificationResult is the business-value score of a lead, independent of service fit.
type QualificationResult struct {
	Score     int          `json:"score"`
	Earned    int          `json:"earned"`
	Possible  int          `json:"possible"`
	Breakdown []FieldScore `json:"breakdown"`
}

type FieldScore struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Points int    `json:"points"`
	Max    int    `json:"max"`
}
