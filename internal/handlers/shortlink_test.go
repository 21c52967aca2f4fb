package handlers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyhub/surveyhub/internal/handlers"
)

func createLinkRequest(surveyID string) *handlers.CreateShortLinkRequest {
	req := &handlers.CreateShortLinkRequest{}
	req.Body.SurveyID = surveyID

	return req
}

func TestCreateShortLinkHandler(t *testing.T) {
	t.Run("mints a short URL for the owner", func(t *testing.T) {
		env := newTestEnv()

		created, err := env.surveys.CreateSurvey(asCreator("creator-a"), createSurveyRequest("Lunch poll"))
		require.NoError(t, err)

		resp, err := env.links.CreateShortLink(asCreator("creator-a"), createLinkRequest(created.Body.ID))

		require.NoError(t, err)
		assert.Len(t, resp.Body.ShortCode, 8)
		assert.Equal(t, "http://localhost:8888/s/"+resp.Body.ShortCode, resp.Body.ShortURL)
	})

	t.Run("repeated requests return the same code", func(t *testing.T) {
		env := newTestEnv()

		created, err := env.surveys.CreateSurvey(asCreator("creator-a"), createSurveyRequest("Lunch poll"))
		require.NoError(t, err)

		first, err := env.links.CreateShortLink(asCreator("creator-a"), createLinkRequest(created.Body.ID))
		require.NoError(t, err)

		second, err := env.links.CreateShortLink(asCreator("creator-a"), createLinkRequest(created.Body.ID))
		require.NoError(t, err)

		assert.Equal(t, first.Body.ShortCode, second.Body.ShortCode)
	})

	t.Run("unknown survey is a 404", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.links.CreateShortLink(asCreator("creator-a"), createLinkRequest("missing"))

		model := requireStatus(t, err, 404)
		assert.Equal(t, "Survey not found", model.Detail)
	})

	t.Run("non-owner is a 403", func(t *testing.T) {
		env := newTestEnv()

		created, err := env.surveys.CreateSurvey(asCreator("creator-a"), createSurveyRequest("Lunch poll"))
		require.NoError(t, err)

		_, err = env.links.CreateShortLink(asCreator("creator-b"), createLinkRequest(created.Body.ID))

		model := requireStatus(t, err, 403)
		assert.Equal(t, "Only the survey owner can create a short URL", model.Detail)
	})
}

func TestResolveShortLinkHandler(t *testing.T) {
	t.Run("resolves to the respond path and publishes an event", func(t *testing.T) {
		env := newTestEnv()

		created, err := env.surveys.CreateSurvey(asCreator("creator-a"), createSurveyRequest("Lunch poll"))
		require.NoError(t, err)

		link, err := env.links.CreateShortLink(asCreator("creator-a"), createLinkRequest(created.Body.ID))
		require.NoError(t, err)

		ctx := fromAddress(context.Background(), "203.0.113.5")
		resolved, err := env.links.ResolveShortLink(ctx, &handlers.ResolveShortLinkRequest{Code: link.Body.ShortCode})

		require.NoError(t, err)
		assert.Equal(t, "/surveys/"+created.Body.ID+"/respond", resolved.Body.RedirectURL)

		require.Len(t, env.events.linkResolved, 1)
		assert.Equal(t, link.Body.ShortCode, env.events.linkResolved[0].Code)
		assert.Equal(t, created.Body.ID, env.events.linkResolved[0].SurveyID)
	})

	t.Run("unknown code is a 404", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.links.ResolveShortLink(context.Background(), &handlers.ResolveShortLinkRequest{Code: "deadbeef"})

		model := requireStatus(t, err, 404)
		assert.Equal(t, "Short URL not found", model.Detail)
	})
}
