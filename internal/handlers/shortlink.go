package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/surveyhub/surveyhub/internal/analytics"
	"github.com/surveyhub/surveyhub/internal/auth"
	"github.com/surveyhub/surveyhub/internal/messaging"
	"github.com/surveyhub/surveyhub/internal/shortlink"
	"github.com/surveyhub/surveyhub/internal/survey"
	"go.uber.org/zap"
)

// ShortLinkHandler handles short-link creation and resolution.
type ShortLinkHandler struct {
	service             *shortlink.Service
	baseURL             string
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent]
	logger              *zap.Logger
}

// NewShortLinkHandler creates a new short-link handler. baseURL is the
// public origin used when formatting full short URLs.
func NewShortLinkHandler(
	service *shortlink.Service,
	baseURL string,
	publishLinkResolved messaging.Publish[analytics.LinkResolvedEvent],
	logger *zap.Logger,
) *ShortLinkHandler {
	return &ShortLinkHandler{
		service:             service,
		baseURL:             baseURL,
		publishLinkResolved: publishLinkResolved,
		logger:              logger,
	}
}

func (h *ShortLinkHandler) CreateShortLink(ctx context.Context, req *CreateShortLinkRequest) (*CreateShortLinkResponse, error) {
	link, err := h.service.GetOrCreate(ctx, req.Body.SurveyID, auth.CreatorFromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, survey.ErrNotFound):
			return nil, huma.Error404NotFound("Survey not found")
		case errors.Is(err, shortlink.ErrForbidden):
			return nil, huma.Error403Forbidden("Only the survey owner can create a short URL")
		default:
			h.logger.Error("Error creating short URL", zap.Error(err))

			return nil, huma.Error500InternalServerError("Error creating short URL")
		}
	}

	resp := &CreateShortLinkResponse{}
	resp.Body.ShortURL = fmt.Sprintf("%s/s/%s", h.baseURL, link.Code)
	resp.Body.ShortCode = link.Code

	return resp, nil
}

func (h *ShortLinkHandler) ResolveShortLink(ctx context.Context, req *ResolveShortLinkRequest) (*ResolveShortLinkResponse, error) {
	link, err := h.service.Resolve(ctx, req.Code)
	if err != nil {
		if shortlink.IsNotFound(err) {
			return nil, huma.Error404NotFound("Short URL not found")
		}

		h.logger.Error("Error resolving short URL", zap.Error(err))

		return nil, huma.Error500InternalServerError("Server error")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkResolvedEvent{
		Code:       link.Code,
		SurveyID:   link.SurveyID,
		TargetPath: link.TargetPath,
		ClientIP:   meta.ClientIP,
		UserAgent:  meta.UserAgent,
		Referrer:   meta.Referrer,
		ResolvedAt: time.Now().UTC(),
	}
	if err := h.publishLinkResolved(event); err != nil {
		h.logger.Error("failed to publish link resolved event",
			zap.String("code", link.Code),
			zap.Error(err),
		)
	}

	resp := &ResolveShortLinkResponse{}
	resp.Body.RedirectURL = link.TargetPath

	return resp, nil
}
