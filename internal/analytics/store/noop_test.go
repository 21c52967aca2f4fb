package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/surveyhub/surveyhub/internal/analytics"
	"github.com/surveyhub/surveyhub/internal/analytics/store"
	"go.uber.org/zap"
)

func TestNoopStore(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, noop.SaveSurveyCreated(ctx, &analytics.SurveyCreatedEvent{
		SurveyID:  "sv-1",
		CreatorID: "creator-a",
		CreatedAt: time.Now().UTC(),
	}))

	assert.NoError(t, noop.SaveResponseSubmitted(ctx, &analytics.ResponseSubmittedEvent{
		SurveyID:    "sv-1",
		AnswerCount: 1,
		SubmittedAt: time.Now().UTC(),
	}))

	assert.NoError(t, noop.SaveLinkResolved(ctx, &analytics.LinkResolvedEvent{
		Code:       "a1b2c3d4",
		SurveyID:   "sv-1",
		ResolvedAt: time.Now().UTC(),
	}))
}
