package store

import (
	"context"
	"sort"
	"sync"

	"github.com/surveyhub/surveyhub/internal/survey"
)

// SurveyMemory is an in-memory implementation of survey.Repository, used by
// unit tests. The mutex gives AppendResponse the same atomic
// check-and-insert semantics the unique index gives the Postgres store.
type SurveyMemory struct {
	mu      sync.RWMutex
	surveys map[string]*survey.Survey // id -> survey
	byLink  map[string]string         // shareable link -> id
}

// NewSurveyMemory creates an in-memory survey store.
func NewSurveyMemory() *SurveyMemory {
	return &SurveyMemory{
		surveys: make(map[string]*survey.Survey),
		byLink:  make(map[string]string),
	}
}

func (m *SurveyMemory) Insert(_ context.Context, s *survey.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.surveys[s.ID] = cloneSurvey(s)
	m.byLink[s.ShareableLink] = s.ID

	return nil
}

func (m *SurveyMemory) GetByIDOrLink(_ context.Context, identifier string) (*survey.Survey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.surveys[identifier]
	if !ok {
		if id, found := m.byLink[identifier]; found {
			s, ok = m.surveys[id]
		}
	}

	if !ok {
		return nil, survey.ErrNotFound
	}

	return cloneSurvey(s), nil
}

func (m *SurveyMemory) ListPublic(_ context.Context) ([]*survey.Survey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*survey.Survey{}

	for _, s := range m.surveys {
		if !s.IsPublic {
			continue
		}

		c := cloneSurvey(s)
		c.Responses = nil
		out = append(out, c)
	}

	sortByCreation(out)

	return out, nil
}

func (m *SurveyMemory) ListByCreator(_ context.Context, creatorID string) ([]*survey.Survey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*survey.Survey{}

	for _, s := range m.surveys {
		if s.CreatorID == creatorID {
			out = append(out, cloneSurvey(s))
		}
	}

	sortByCreation(out)

	return out, nil
}

func (m *SurveyMemory) Update(_ context.Context, s *survey.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.surveys[s.ID]
	if !ok {
		return survey.ErrNotFound
	}

	c := cloneSurvey(s)
	// Responses and the shareable link are owned by the store, not the caller.
	c.Responses = stored.Responses
	c.ShareableLink = stored.ShareableLink
	m.surveys[s.ID] = c

	return nil
}

func (m *SurveyMemory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surveys[id]
	if !ok {
		return survey.ErrNotFound
	}

	delete(m.byLink, s.ShareableLink)
	delete(m.surveys, id)

	return nil
}

func (m *SurveyMemory) AppendResponse(_ context.Context, surveyID string, r *survey.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.surveys[surveyID]
	if !ok {
		return survey.ErrNotFound
	}

	for _, existing := range s.Responses {
		if existing.SubmitterKey == r.SubmitterKey {
			return survey.ErrDuplicateSubmission
		}
	}

	s.Responses = append(s.Responses, *r)

	return nil
}

func cloneSurvey(s *survey.Survey) *survey.Survey {
	c := *s
	c.Questions = append([]survey.Question(nil), s.Questions...)
	c.Responses = append([]survey.Response(nil), s.Responses...)

	return &c
}

func sortByCreation(surveys []*survey.Survey) {
	sort.Slice(surveys, func(i, j int) bool {
		if surveys[i].CreatedAt.Equal(surveys[j].CreatedAt) {
			return surveys[i].ID < surveys[j].ID
		}

		return surveys[i].CreatedAt.After(surveys[j].CreatedAt)
	})
}
