package shortlink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/surveyhub/surveyhub/internal/survey"
)

// SurveyGetter is the slice of the survey repository the resolver needs.
type SurveyGetter interface {
	GetByIDOrLink(ctx context.Context, identifier string) (*survey.Survey, error)
}

// Service mints and resolves short links for surveys.
type Service struct {
	store        Repository
	surveys      SurveyGetter
	generateCode CodeGenerator
}

// NewService creates a short-link service.
func NewService(store Repository, surveys SurveyGetter, generator CodeGenerator) *Service {
	return &Service{
		store:        store,
		surveys:      surveys,
		generateCode: generator,
	}
}

// GetOrCreate returns the survey's short link, creating it on first request.
// Idempotent per survey: later calls return the same code. Only the survey's
// creator may mint a link; returns survey.ErrNotFound when the survey is
// gone and ErrForbidden for anyone else's survey.
func (s *Service) GetOrCreate(ctx context.Context, surveyID, requester string) (*ShortLink, error) {
	sv, err := s.surveys.GetByIDOrLink(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	if sv.CreatorID != requester {
		return nil, ErrForbidden
	}

	existing, err := s.store.GetBySurvey(ctx, sv.ID)
	if err == nil {
		return existing, nil
	}

	if !IsNotFound(err) {
		return nil, err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, err
	}

	link := &ShortLink{
		Code:       code,
		TargetPath: fmt.Sprintf("/surveys/%s/respond", sv.ID),
		SurveyID:   sv.ID,
		CreatedAt:  time.Now().UTC(),
	}

	// Create resolves the first-request race: if another request persisted a
	// link in the meantime, the winner comes back.
	return s.store.Create(ctx, link)
}

// Resolve returns the stored link for a code. No check is made that the
// referenced survey still exists; the target path is returned as stored.
func (s *Service) Resolve(ctx context.Context, code string) (*ShortLink, error) {
	return s.store.GetByCode(ctx, code)
}

// IsNotFound reports whether err means the code or link is missing/expired.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
