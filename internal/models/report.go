// internal/models/report.go
package models

type ClientInfo struct {
	CompanyName  string   `json:"companyName"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactEmail string   `json:"contactEmail,omitempty"`
	BusinessType string   `json:"businessType,omitempty"`
	Industry     string   `json:"industry,omitempty"`
	CompanySize  string   `json:"companySize,omitempty"`
	Goals        []string `json:"goals,omitempty"`
}

// ClientInfoFromAnswers pulls the client details the report needs out of the answers.
func ClientInfoFromAnswers(answers QuestionnaireAnswers) ClientInfo {
	info := ClientInfo{
		BusinessType: answers.Text(KeyBusinessType),
		Industry:     answers.Text(KeyIndustry),
		CompanySize:  answers.Text(KeyCompanySize),
		Goals:        answers.Values(KeyPrimaryGoals),
	}
	if v, ok := answers[KeyCompanyName]; ok && v.Kind == AnswerText {
		info.CompanyName = v.Text
	}
	if v, ok := answers[KeyContactName]; ok && v.Kind == AnswerText {
		info.ContactName = v.Text
	}
	if v, ok := answers[KeyContactEmail]; ok && v.Kind == AnswerText {
		info.ContactEmail = v.Text
	}
	return info
}

// ConsultationData is a pre-generated consultation with richer narrative than a bare
// matching result.
type ConsultationData struct {
	ClientInfo          ClientInfo     `json:"clientInfo"`
	PrimaryService      *ServiceMatch  `json:"primaryService"`
	AlternativeServices []ServiceMatch `json:"alternativeServices"`
	BusinessAnalysis    string         `json:"businessAnalysis"`
	KeyInsights         []string       `json:"keyInsights"`
	ActionItems         []string       `json:"actionItems"`
	ConsultationScore   int            `json:"consultationScore"`
}

type ConsultationReport struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	ClientInfo       ClientInfo            `json:"clientInfo"`
	ExecutiveSummary string                `json:"executiveSummary"`
	Sections         []ReportSection       `json:"sections"`
	Recommendations  ReportRecommendations `json:"recommendations"`
	Roadmap          Roadmap               `json:"roadmap"`
	NextSteps        []string              `json:"nextSteps"`
	Metadata         ReportMetadata        `json:"metadata"`
}

type ReportSection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ReportRecommendations struct {
	Primary      ServicePackage   `json:"primary"`
	Alternatives []ServicePackage `json:"alternatives"`
	Reasoning    []string         `json:"reasoning"`
}

type Roadmap struct {
	Timeline string         `json:"timeline"`
	Phases   []RoadmapPhase `json:"phases"`
}

type RoadmapPhase struct {
	Phase      int      `json:"phase"`
	Title      string   `json:"title"`
	Duration   string   `json:"duration"`
	Milestones []string `json:"milestones"`
}

type ReportMetadata struct {
	GeneratedBy       string `json:"generatedBy"`
	TemplateVersion   string `json:"templateVersion"`
	ConsultationScore int    `json:"consultationScore"`
	EstimatedReadTime int    `json:"estimatedReadTime"`
	GeneratedAt       string `json:"generatedAt"`
}
