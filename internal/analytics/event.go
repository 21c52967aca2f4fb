package analytics

import "time"

// Topics for the survey analytics pipeline.
const (
	TopicSurveyCreated     = "survey.created"
	TopicResponseSubmitted = "survey.response.submitted"
	TopicLinkResolved      = "shortlink.resolved"
)

// SurveyCreatedEvent is emitted when a creator publishes a new survey.
type SurveyCreatedEvent struct {
	SurveyID      string    `json:"surveyId"`
	CreatorID     string    `json:"creatorId"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	IsPublic      bool      `json:"isPublic"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ResponseSubmittedEvent is emitted for every accepted response.
type ResponseSubmittedEvent struct {
	SurveyID    string    `json:"surveyId"`
	AnswerCount int       `json:"answerCount"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// LinkResolvedEvent is emitted when a short code is expanded.
type LinkResolvedEvent struct {
	Code       string    `json:"code"`
	SurveyID   string    `json:"surveyId"`
	TargetPath string    `json:"targetPath"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer,omitempty"`
	ResolvedAt time.Time `json:"resolvedAt"`
}
