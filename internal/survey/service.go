package survey

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LinkSuffixGenerator produces the random suffix appended to a survey ID to
// form its shareable link token.
type LinkSuffixGenerator func() string

// Service implements survey administration and response collection on top of
// a Repository.
type Service struct {
	repo       Repository
	linkSuffix LinkSuffixGenerator
}

// NewService creates a survey service.
func NewService(repo Repository, linkSuffix LinkSuffixGenerator) *Service {
	return &Service{
		repo:       repo,
		linkSuffix: linkSuffix,
	}
}

// CreateInput carries the creator-supplied survey definition.
type CreateInput struct {
	Title       string
	Description string
	Questions   []Question
	IsPublic    *bool
	EndDate     *time.Time
}

// Create persists a new survey owned by creatorID. The shareable link is
// generated here, exactly once; it never changes afterwards.
func (s *Service) Create(ctx context.Context, creatorID string, in CreateInput) (*Survey, error) {
	questions, err := normalizeQuestions(in.Questions)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	now := time.Now().UTC()
	sv := &Survey{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		CreatorID:   creatorID,
		Questions:   questions,
		IsPublic:    isPublic,
		StartDate:   now,
		EndDate:     in.EndDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	sv.ShareableLink = fmt.Sprintf("%s-%s", sv.ID, s.linkSuffix())

	if err := s.repo.Insert(ctx, sv); err != nil {
		return nil, err
	}

	return sv, nil
}

// ListPublic returns public surveys with responses stripped.
func (s *Service) ListPublic(ctx context.Context) ([]*Survey, error) {
	return s.repo.ListPublic(ctx)
}

// ListByCreator returns the full survey documents owned by creatorID.
func (s *Service) ListByCreator(ctx context.Context, creatorID string) ([]*Survey, error) {
	return s.repo.ListByCreator(ctx, creatorID)
}

// Get fetches a survey by ID or shareable link token. Private surveys are
// visible only to their creator; anyone else gets ErrForbidden.
func (s *Service) Get(ctx context.Context, identifier, requester string) (*Survey, error) {
	sv, err := s.repo.GetByIDOrLink(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !sv.IsPublic && requester != sv.CreatorID {
		return nil, ErrForbidden
	}

	return sv, nil
}

// UpdateInput carries the replacement definition for an update. Title,
// description, and questions are replaced wholesale; isPublic and endDate are
// patched only when present.
type UpdateInput struct {
	Title       string
	Description string
	Questions   []Question
	IsPublic    *bool
	EndDate     *time.Time
}

// Update replaces the survey definition. Ownership is enforced: a survey
// owned by someone else is indistinguishable from a missing one.
func (s *Service) Update(ctx context.Context, surveyID, creatorID string, in UpdateInput) (*Survey, error) {
	sv, err := s.owned(ctx, surveyID, creatorID)
	if err != nil {
		return nil, err
	}

	questions, err := normalizeQuestions(in.Questions)
	if err != nil {
		return nil, err
	}

	sv.Title = in.Title
	sv.Description = in.Description
	sv.Questions = questions

	if in.IsPublic != nil {
		sv.IsPublic = *in.IsPublic
	}

	if in.EndDate != nil {
		sv.EndDate = in.EndDate
	}

	sv.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, sv); err != nil {
		return nil, err
	}

	return sv, nil
}

// Delete removes a survey. Same ownership gate as Update; the delete is hard
// and irreversible.
func (s *Service) Delete(ctx context.Context, surveyID, creatorID string) error {
	if _, err := s.owned(ctx, surveyID, creatorID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, surveyID)
}

// SubmitResponse records one response, at most once per submitter key.
// Uniqueness is enforced by the store's atomic conditional insert, not by a
// read-then-write check, so concurrent duplicates cannot slip through.
//
// Answers must reference known questions, and every required question must
// be answered.
func (s *Service) SubmitResponse(ctx context.Context, surveyID, submitterKey string, answers []Answer) error {
	sv, err := s.repo.GetByIDOrLink(ctx, surveyID)
	if err != nil {
		return err
	}

	if submitterKey == "" {
		return fmt.Errorf("%w: missing submitter key", ErrValidation)
	}

	if err := validateAnswers(sv.Questions, answers); err != nil {
		return err
	}

	return s.repo.AppendResponse(ctx, sv.ID, &Response{
		SubmitterKey: submitterKey,
		Answers:      answers,
		SubmittedAt:  time.Now().UTC(),
	})
}

func (s *Service) owned(ctx context.Context, surveyID, creatorID string) (*Survey, error) {
	sv, err := s.repo.GetByIDOrLink(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	// Hide the survey's existence from non-owners.
	if sv.CreatorID != creatorID {
		return nil, ErrNotFound
	}

	return sv, nil
}

// normalizeQuestions validates the question list and assigns IDs to
// questions that lack one.
func normalizeQuestions(questions []Question) ([]Question, error) {
	out := make([]Question, len(questions))

	for i, q := range questions {
		if q.Text == "" {
			return nil, fmt.Errorf("%w: question %d has no text", ErrValidation, i)
		}

		if !q.Type.Valid() {
			return nil, fmt.Errorf("%w: question %d has unknown type %q", ErrValidation, i, q.Type)
		}

		if (q.Type == QuestionMultipleChoice || q.Type == QuestionCheckbox) && len(q.Options) == 0 {
			return nil, fmt.Errorf("%w: question %d of type %s needs options", ErrValidation, i, q.Type)
		}

		if q.ID == "" {
			q.ID = uuid.NewString()
		}

		out[i] = q
	}

	return out, nil
}

func validateAnswers(questions []Question, answers []Answer) error {
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	answered := make(map[string]bool, len(answers))

	for _, a := range answers {
		if !known[a.QuestionID] {
			return fmt.Errorf("%w: unknown question %q", ErrValidation, a.QuestionID)
		}

		if !a.Value.Empty() {
			answered[a.QuestionID] = true
		}
	}

	for _, q := range questions {
		if q.Required && !answered[q.ID] {
			return fmt.Errorf("%w: required question %q was not answered", ErrValidation, q.ID)
		}
	}

	return nil
}
