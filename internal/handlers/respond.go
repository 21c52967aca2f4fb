package handlers

import (
	"context"
	"time"

	"github.com/surveyhub/surveyhub/internal/analytics"
	"go.uber.org/zap"
)

// SubmitResponse records a respondent's answers. The submitter key is the
// client network address taken from the request metadata, so one response is
// accepted per address per survey.
func (h *SurveyHandler) SubmitResponse(ctx context.Context, req *SubmitResponseRequest) (*MessageResponse, error) {
	meta := RequestMetaFromContext(ctx)

	err := h.service.SubmitResponse(ctx, req.SurveyID, meta.ClientIP, req.Body.Answers)
	if err != nil {
		return nil, h.mapError(err, "Error submitting response")
	}

	event := &analytics.ResponseSubmittedEvent{
		SurveyID:    req.SurveyID,
		AnswerCount: len(req.Body.Answers),
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		SubmittedAt: time.Now().UTC(),
	}
	if err := h.publishResponseSubmitted(event); err != nil {
		h.logger.Error("failed to publish response submitted event",
			zap.String("surveyId", req.SurveyID),
			zap.Error(err),
		)
	}

	return NewMessageResponse("Response submitted successfully"), nil
}
