package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/surveyhub/surveyhub/internal/analytics"
	"github.com/surveyhub/surveyhub/internal/auth"
	"github.com/surveyhub/surveyhub/internal/messaging"
	"github.com/surveyhub/surveyhub/internal/survey"
	"go.uber.org/zap"
)

// SurveyHandler handles survey administration and response collection.
type SurveyHandler struct {
	service                  *survey.Service
	publishSurveyCreated     messaging.Publish[analytics.SurveyCreatedEvent]
	publishResponseSubmitted messaging.Publish[analytics.ResponseSubmittedEvent]
	logger                   *zap.Logger
}

// NewSurveyHandler creates a new survey handler.
func NewSurveyHandler(
	service *survey.Service,
	publishSurveyCreated messaging.Publish[analytics.SurveyCreatedEvent],
	publishResponseSubmitted messaging.Publish[analytics.ResponseSubmittedEvent],
	logger *zap.Logger,
) *SurveyHandler {
	return &SurveyHandler{
		service:                  service,
		publishSurveyCreated:     publishSurveyCreated,
		publishResponseSubmitted: publishResponseSubmitted,
		logger:                   logger,
	}
}

func (h *SurveyHandler) CreateSurvey(ctx context.Context, req *CreateSurveyRequest) (*SurveyResponse, error) {
	creatorID := auth.CreatorFromContext(ctx)

	sv, err := h.service.Create(ctx, creatorID, survey.CreateInput{
		Title:       req.Body.Title,
		Description: req.Body.Description,
		Questions:   req.Body.Questions,
		IsPublic:    req.Body.IsPublic,
		EndDate:     req.Body.EndDate,
	})
	if err != nil {
		return nil, h.mapError(err, "Error creating survey")
	}

	event := &analytics.SurveyCreatedEvent{
		SurveyID:      sv.ID,
		CreatorID:     sv.CreatorID,
		Title:         sv.Title,
		QuestionCount: len(sv.Questions),
		IsPublic:      sv.IsPublic,
		CreatedAt:     sv.CreatedAt,
	}
	if err := h.publishSurveyCreated(event); err != nil {
		h.logger.Error("failed to publish survey created event",
			zap.String("surveyId", sv.ID),
			zap.Error(err),
		)
	}

	return &SurveyResponse{Body: *sv}, nil
}

func (h *SurveyHandler) ListPublicSurveys(ctx context.Context, _ *struct{}) (*SurveyListResponse, error) {
	surveys, err := h.service.ListPublic(ctx)
	if err != nil {
		return nil, h.mapError(err, "Error fetching surveys")
	}

	return &SurveyListResponse{Body: surveys}, nil
}

func (h *SurveyHandler) ListMySurveys(ctx context.Context, _ *struct{}) (*SurveyListResponse, error) {
	surveys, err := h.service.ListByCreator(ctx, auth.CreatorFromContext(ctx))
	if err != nil {
		return nil, h.mapError(err, "Error fetching surveys")
	}

	return &SurveyListResponse{Body: surveys}, nil
}

func (h *SurveyHandler) GetSurvey(ctx context.Context, req *GetSurveyRequest) (*SurveyResponse, error) {
	sv, err := h.service.Get(ctx, req.Identifier, auth.CreatorFromContext(ctx))
	if err != nil {
		return nil, h.mapError(err, "Error fetching survey")
	}

	return &SurveyResponse{Body: *sv}, nil
}

func (h *SurveyHandler) UpdateSurvey(ctx context.Context, req *UpdateSurveyRequest) (*SurveyResponse, error) {
	sv, err := h.service.Update(ctx, req.SurveyID, auth.CreatorFromContext(ctx), survey.UpdateInput{
		Title:       req.Body.Title,
		Description: req.Body.Description,
		Questions:   req.Body.Questions,
		IsPublic:    req.Body.IsPublic,
		EndDate:     req.Body.EndDate,
	})
	if err != nil {
		if errors.Is(err, survey.ErrNotFound) {
			return nil, huma.Error404NotFound("Survey not found or unauthorized")
		}

		return nil, h.mapError(err, "Error updating survey")
	}

	return &SurveyResponse{Body: *sv}, nil
}

func (h *SurveyHandler) DeleteSurvey(ctx context.Context, req *DeleteSurveyRequest) (*MessageResponse, error) {
	err := h.service.Delete(ctx, req.SurveyID, auth.CreatorFromContext(ctx))
	if err != nil {
		if errors.Is(err, survey.ErrNotFound) {
			return nil, huma.Error404NotFound("Survey not found or unauthorized")
		}

		return nil, h.mapError(err, "Error deleting survey")
	}

	return NewMessageResponse("Survey deleted successfully"), nil
}

// mapError translates domain errors to HTTP responses. Internal failures
// are logged with their cause and answered with a generic message.
func (h *SurveyHandler) mapError(err error, internalMsg string) error {
	switch {
	case errors.Is(err, survey.ErrNotFound):
		return huma.Error404NotFound("Survey not found")
	case errors.Is(err, survey.ErrForbidden):
		return huma.Error403Forbidden("This survey is private")
	case errors.Is(err, survey.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, survey.ErrDuplicateSubmission):
		return huma.Error400BadRequest("You have already submitted a response to this survey")
	default:
		h.logger.Error(internalMsg, zap.Error(err))

		return huma.Error500InternalServerError(internalMsg)
	}
}
