package handlers

import (
	"context"
	"time"

	"github.com/surveyhub/surveyhub/internal/survey"
)

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata. The client IP is the submitter
// key for response deduplication; the rest feeds analytics.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

// SurveyBody is the creator-supplied survey definition, shared by create
// and update.
type SurveyBody struct {
	Title       string            `doc:"Survey title"                      json:"title"                 minLength:"1"`
	Description string            `doc:"Survey description"                json:"description,omitempty"`
	Questions   []survey.Question `doc:"Ordered questions"                 json:"questions"`
	IsPublic    *bool             `doc:"Public visibility, defaults true"  json:"isPublic,omitempty"`
	EndDate     *time.Time        `doc:"When the survey closes"            json:"endDate,omitempty"`
}

// CreateSurveyRequest is the request for creating a survey.
type CreateSurveyRequest struct {
	Body SurveyBody
}

// UpdateSurveyRequest is the request for replacing a survey definition.
type UpdateSurveyRequest struct {
	SurveyID string `doc:"Survey identifier" path:"surveyId"`
	Body     SurveyBody
}

// GetSurveyRequest fetches a survey by ID or by its shareable link token.
type GetSurveyRequest struct {
	Identifier string `doc:"Survey identifier or shareable link token" path:"surveyId"`
}

// DeleteSurveyRequest is the request for deleting a survey.
type DeleteSurveyRequest struct {
	SurveyID string `doc:"Survey identifier" path:"surveyId"`
}

// SurveyResponse wraps a single survey document.
type SurveyResponse struct {
	Body survey.Survey
}

// SurveyListResponse wraps a list of survey documents.
type SurveyListResponse struct {
	Body []*survey.Survey
}

// SubmitResponseRequest is a respondent's submission.
type SubmitResponseRequest struct {
	SurveyID string `doc:"Survey identifier" path:"surveyId"`
	Body     struct {
		Answers []survey.Answer `doc:"Submitted answers" json:"answers"`
	}
}

// MessageResponse is a bare confirmation message.
type MessageResponse struct {
	Body struct {
		Message string `doc:"Confirmation message" json:"message"`
	}
}

// NewMessageResponse builds a confirmation response.
func NewMessageResponse(msg string) *MessageResponse {
	resp := &MessageResponse{}
	resp.Body.Message = msg

	return resp
}

// CreateShortLinkRequest asks for a short link for a survey.
type CreateShortLinkRequest struct {
	Body struct {
		SurveyID string `doc:"Survey to link to" json:"surveyId" minLength:"1"`
	}
}

// CreateShortLinkResponse carries the minted (or pre-existing) short link.
type CreateShortLinkResponse struct {
	Body struct {
		ShortURL  string `doc:"Fully qualified short URL" json:"shortUrl"`
		ShortCode string `doc:"The short code"            json:"shortCode"`
	}
}

// ResolveShortLinkRequest resolves a short code.
type ResolveShortLinkRequest struct {
	Code string `doc:"The short code" path:"code"`
}

// ResolveShortLinkResponse carries the redirect target for a short code.
type ResolveShortLinkResponse struct {
	Body struct {
		RedirectURL string `doc:"Relative path to redirect to" json:"redirectUrl"`
	}
}
