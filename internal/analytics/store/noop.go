package store

import (
	"context"

	"github.com/surveyhub/surveyhub/internal/analytics"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of analytics.Store that only logs events.
// Used when no analytics database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveSurveyCreated(_ context.Context, event *analytics.SurveyCreatedEvent) error {
	n.logger.Info("survey created event received",
		zap.String("surveyId", event.SurveyID),
		zap.String("creatorId", event.CreatorID),
		zap.Int("questionCount", event.QuestionCount),
	)

	return nil
}

func (n *Noop) SaveResponseSubmitted(_ context.Context, event *analytics.ResponseSubmittedEvent) error {
	n.logger.Info("response submitted event received",
		zap.String("surveyId", event.SurveyID),
		zap.Int("answerCount", event.AnswerCount),
		zap.Time("submittedAt", event.SubmittedAt),
	)

	return nil
}

func (n *Noop) SaveLinkResolved(_ context.Context, event *analytics.LinkResolvedEvent) error {
	n.logger.Info("short link resolved event received",
		zap.String("code", event.Code),
		zap.String("surveyId", event.SurveyID),
		zap.Time("resolvedAt", event.ResolvedAt),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
