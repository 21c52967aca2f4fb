package survey

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no survey matches the given identifier,
	// or when an ownership-scoped operation matches nothing.
	ErrNotFound = errors.New("survey not found")

	// ErrForbidden is returned when a private survey is fetched by anyone
	// other than its creator.
	ErrForbidden = errors.New("survey is private")

	// ErrDuplicateSubmission is returned when a submitter key already has a
	// response recorded on the survey.
	ErrDuplicateSubmission = errors.New("duplicate submission")

	// ErrValidation is returned for malformed create, update, or submit payloads.
	ErrValidation = errors.New("validation failed")
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionRating         QuestionType = "rating"
)

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionMultipleChoice, QuestionCheckbox, QuestionRating:
		return true
	}

	return false
}

// Question is a single survey question. Questions are embedded in their
// survey and ordered; the order determines display and answer correlation.
type Question struct {
	ID       string       `doc:"Question identifier, unique within the survey" json:"id,omitempty"`
	Text     string       `doc:"Question text"                                 json:"text"`
	Type     QuestionType `doc:"Question type"                                 enum:"text,multiple-choice,checkbox,rating" json:"type"`
	Options  []string     `doc:"Choices for choice-like question types"        json:"options,omitempty"`
	Required bool         `doc:"Whether an answer is mandatory"                json:"required"`
}

// Answer pairs a question with its submitted value.
type Answer struct {
	QuestionID string      `doc:"Identifier of the answered question" json:"questionId"`
	Value      AnswerValue `doc:"Submitted answer"                    json:"answer"`
}

// Response is one respondent's submission. Responses are append-only: the
// system exposes no update or delete operation for them.
type Response struct {
	SubmitterKey string    `doc:"Deduplication key for the respondent" json:"submitterKey"`
	Answers      []Answer  `doc:"Submitted answers"                    json:"answers"`
	SubmittedAt  time.Time `doc:"Insertion timestamp"                  json:"submittedAt"`
}

// Survey is the aggregate document: definition plus embedded responses.
type Survey struct {
	ID            string     `doc:"Survey identifier"                          json:"id"`
	Title         string     `doc:"Survey title"                               json:"title"`
	Description   string     `doc:"Survey description"                         json:"description,omitempty"`
	CreatorID     string     `doc:"Owning creator identity, immutable"         json:"creatorId"`
	Questions     []Question `doc:"Ordered questions"                          json:"questions"`
	IsPublic      bool       `doc:"Whether the survey is publicly listed"      json:"isPublic"`
	ShareableLink string     `doc:"Alternate lookup token, generated once"     json:"shareableLink,omitempty"`
	StartDate     time.Time  `doc:"When the survey opens"                      json:"startDate"`
	EndDate       *time.Time `doc:"When the survey closes"                     json:"endDate,omitempty"`
	Responses     []Response `doc:"Collected responses"                        json:"responses,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Repository defines the persistence operations for surveys and their
// embedded responses.
type Repository interface {
	Insert(ctx context.Context, s *Survey) error

	// GetByIDOrLink looks a survey up by its ID or its shareable link token.
	// Returns ErrNotFound when neither matches.
	GetByIDOrLink(ctx context.Context, identifier string) (*Survey, error)

	// ListPublic returns public surveys with the responses field stripped.
	ListPublic(ctx context.Context) ([]*Survey, error)

	// ListByCreator returns the full documents owned by the given creator.
	ListByCreator(ctx context.Context, creatorID string) ([]*Survey, error)

	// Update persists the survey definition. The shareable link and creator
	// are never modified. Returns ErrNotFound if the survey is gone.
	Update(ctx context.Context, s *Survey) error

	// Delete removes the survey and its responses. Returns ErrNotFound if
	// the survey does not exist.
	Delete(ctx context.Context, id string) error

	// AppendResponse inserts a response if and only if no response with the
	// same submitter key exists on the survey. The check-and-insert is a
	// single atomic store operation; it returns ErrDuplicateSubmission when
	// the key is taken and ErrNotFound when the survey is gone.
	AppendResponse(ctx context.Context, surveyID string, r *Response) error
}
