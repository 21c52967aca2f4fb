package shortlink

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// TTL is the retention window for short links. A code stops resolving this
// long after its creation; eviction is the store's responsibility.
const TTL = 5 * 24 * time.Hour

var (
	// ErrNotFound is returned when a code does not exist or has expired.
	ErrNotFound = errors.New("short url not found")

	// ErrForbidden is returned when the requester does not own the target survey.
	ErrForbidden = errors.New("not the survey owner")
)

// ShortLink maps an unguessable code to a survey's respond path.
type ShortLink struct {
	Code       string    `json:"shortCode"`
	TargetPath string    `json:"targetPath"`
	SurveyID   string    `json:"surveyId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Repository defines short-link persistence. Implementations evict records
// once TTL has elapsed since creation.
type Repository interface {
	// GetByCode returns the link for a code, or ErrNotFound if absent/expired.
	GetByCode(ctx context.Context, code string) (*ShortLink, error)

	// GetBySurvey returns the existing link for a survey, or ErrNotFound.
	GetBySurvey(ctx context.Context, surveyID string) (*ShortLink, error)

	// Create persists the link unless the survey already has one. The
	// set-if-absent is atomic: when a concurrent creation wins, the winner's
	// link is returned instead of the argument.
	Create(ctx context.Context, link *ShortLink) (*ShortLink, error)
}

// CodeGenerator produces short codes.
type CodeGenerator func() (string, error)

// NewHexCodeGenerator returns a generator producing 2n lowercase hex
// characters from n cryptographically random bytes.
func NewHexCodeGenerator(n int) CodeGenerator {
	return func() (string, error) {
		buf := make([]byte, n)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}

		return hex.EncodeToString(buf), nil
	}
}
