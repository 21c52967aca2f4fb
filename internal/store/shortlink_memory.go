package store

import (
	"context"
	"sync"
	"time"

	"github.com/surveyhub/surveyhub/internal/shortlink"
)

// ShortLinkMemory is an in-memory implementation of shortlink.Repository.
// Expired records are treated as absent on read, simulating store eviction.
type ShortLinkMemory struct {
	mu       sync.Mutex
	byCode   map[string]*shortlink.ShortLink
	bySurvey map[string]string // surveyID -> code
	ttl      time.Duration
	now      func() time.Time
}

// NewShortLinkMemory creates an in-memory short-link store with the given
// retention window.
func NewShortLinkMemory(ttl time.Duration) *ShortLinkMemory {
	return &ShortLinkMemory{
		byCode:   make(map[string]*shortlink.ShortLink),
		bySurvey: make(map[string]string),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock overrides the time source. Test hook for expiry behavior.
func (m *ShortLinkMemory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.now = now
}

func (m *ShortLinkMemory) GetByCode(_ context.Context, code string) (*shortlink.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.getByCodeLocked(code)
}

func (m *ShortLinkMemory) GetBySurvey(_ context.Context, surveyID string) (*shortlink.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	code, ok := m.bySurvey[surveyID]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	return m.getByCodeLocked(code)
}

func (m *ShortLinkMemory) Create(_ context.Context, link *shortlink.ShortLink) (*shortlink.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if code, ok := m.bySurvey[link.SurveyID]; ok {
		if winner, err := m.getByCodeLocked(code); err == nil {
			return winner, nil
		}
	}

	c := *link
	m.byCode[link.Code] = &c
	m.bySurvey[link.SurveyID] = link.Code

	return link, nil
}

func (m *ShortLinkMemory) getByCodeLocked(code string) (*shortlink.ShortLink, error) {
	link, ok := m.byCode[code]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	if m.now().Sub(link.CreatedAt) >= m.ttl {
		delete(m.byCode, code)
		delete(m.bySurvey, link.SurveyID)

		return nil, shortlink.ErrNotFound
	}

	c := *link

	return &c, nil
}
