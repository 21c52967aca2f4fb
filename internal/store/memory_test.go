package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyhub/surveyhub/internal/store"
	"github.com/surveyhub/surveyhub/internal/survey"
)

func seedSurvey(id, creator string, public bool, createdAt time.Time) *survey.Survey {
	return &survey.Survey{
		ID:            id,
		Title:         "Survey " + id,
		CreatorID:     creator,
		IsPublic:      public,
		ShareableLink: id + "-linktoken",
		Questions: []survey.Question{
			{ID: "q1", Text: "How was it?", Type: survey.QuestionText},
		},
		StartDate: createdAt,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestSurveyMemoryLookup(t *testing.T) {
	repo := store.NewSurveyMemory()
	sv := seedSurvey("sv-1", "creator-a", true, time.Now().UTC())
	require.NoError(t, repo.Insert(context.Background(), sv))

	t.Run("by id", func(t *testing.T) {
		got, err := repo.GetByIDOrLink(context.Background(), "sv-1")

		require.NoError(t, err)
		assert.Equal(t, "sv-1", got.ID)
	})

	t.Run("by shareable link", func(t *testing.T) {
		got, err := repo.GetByIDOrLink(context.Background(), "sv-1-linktoken")

		require.NoError(t, err)
		assert.Equal(t, "sv-1", got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := repo.GetByIDOrLink(context.Background(), "sv-2")

		assert.ErrorIs(t, err, survey.ErrNotFound)
	})

	t.Run("returned survey is a copy", func(t *testing.T) {
		got, err := repo.GetByIDOrLink(context.Background(), "sv-1")
		require.NoError(t, err)

		got.Title = "mutated"
		got.Questions[0].Text = "mutated"

		again, err := repo.GetByIDOrLink(context.Background(), "sv-1")
		require.NoError(t, err)
		assert.Equal(t, "Survey sv-1", again.Title)
		assert.Equal(t, "How was it?", again.Questions[0].Text)
	})
}

func TestSurveyMemoryListing(t *testing.T) {
	repo := store.NewSurveyMemory()
	base := time.Now().UTC()

	require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-old", "creator-a", true, base.Add(-time.Hour))))
	require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-new", "creator-a", true, base)))
	require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-priv", "creator-a", false, base)))
	require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-other", "creator-b", true, base)))

	require.NoError(t, repo.AppendResponse(context.Background(), "sv-new", &survey.Response{
		SubmitterKey: "203.0.113.5",
		SubmittedAt:  base,
	}))

	t.Run("public list is newest first and carries no responses", func(t *testing.T) {
		surveys, err := repo.ListPublic(context.Background())

		require.NoError(t, err)
		require.Len(t, surveys, 3)
		assert.Equal(t, "sv-old", surveys[2].ID)

		for _, s := range surveys {
			assert.True(t, s.IsPublic)
			assert.Nil(t, s.Responses)
		}
	})

	t.Run("creator list includes private surveys and responses", func(t *testing.T) {
		surveys, err := repo.ListByCreator(context.Background(), "creator-a")

		require.NoError(t, err)
		require.Len(t, surveys, 3)

		for _, s := range surveys {
			assert.Equal(t, "creator-a", s.CreatorID)

			if s.ID == "sv-new" {
				assert.Len(t, s.Responses, 1)
			}
		}
	})

	t.Run("unknown creator gets an empty list", func(t *testing.T) {
		surveys, err := repo.ListByCreator(context.Background(), "creator-z")

		require.NoError(t, err)
		assert.Empty(t, surveys)
	})
}

func TestSurveyMemoryUpdate(t *testing.T) {
	t.Run("preserves responses and shareable link", func(t *testing.T) {
		repo := store.NewSurveyMemory()
		sv := seedSurvey("sv-1", "creator-a", true, time.Now().UTC())
		require.NoError(t, repo.Insert(context.Background(), sv))
		require.NoError(t, repo.AppendResponse(context.Background(), "sv-1", &survey.Response{
			SubmitterKey: "203.0.113.5",
		}))

		patch := *sv
		patch.Title = "Renamed"
		patch.ShareableLink = "sv-1-forged"
		patch.Responses = nil
		require.NoError(t, repo.Update(context.Background(), &patch))

		got, err := repo.GetByIDOrLink(context.Background(), "sv-1")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "sv-1-linktoken", got.ShareableLink)
		assert.Len(t, got.Responses, 1)
	})

	t.Run("missing survey", func(t *testing.T) {
		repo := store.NewSurveyMemory()

		err := repo.Update(context.Background(), seedSurvey("sv-1", "creator-a", true, time.Now().UTC()))

		assert.ErrorIs(t, err, survey.ErrNotFound)
	})
}

func TestSurveyMemoryDelete(t *testing.T) {
	repo := store.NewSurveyMemory()
	sv := seedSurvey("sv-1", "creator-a", true, time.Now().UTC())
	require.NoError(t, repo.Insert(context.Background(), sv))

	require.NoError(t, repo.Delete(context.Background(), "sv-1"))

	_, err := repo.GetByIDOrLink(context.Background(), "sv-1")
	assert.ErrorIs(t, err, survey.ErrNotFound)

	_, err = repo.GetByIDOrLink(context.Background(), "sv-1-linktoken")
	assert.ErrorIs(t, err, survey.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), "sv-1"), survey.ErrNotFound)
}

func TestSurveyMemoryAppendResponse(t *testing.T) {
	t.Run("rejects duplicate submitter keys", func(t *testing.T) {
		repo := store.NewSurveyMemory()
		require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-1", "creator-a", true, time.Now().UTC())))

		require.NoError(t, repo.AppendResponse(context.Background(), "sv-1", &survey.Response{SubmitterKey: "203.0.113.5"}))

		err := repo.AppendResponse(context.Background(), "sv-1", &survey.Response{SubmitterKey: "203.0.113.5"})
		assert.ErrorIs(t, err, survey.ErrDuplicateSubmission)

		got, err := repo.GetByIDOrLink(context.Background(), "sv-1")
		require.NoError(t, err)
		assert.Len(t, got.Responses, 1)
	})

	t.Run("same submitter across surveys is fine", func(t *testing.T) {
		repo := store.NewSurveyMemory()
		require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-1", "creator-a", true, time.Now().UTC())))
		require.NoError(t, repo.Insert(context.Background(), seedSurvey("sv-2", "creator-a", true, time.Now().UTC())))

		require.NoError(t, repo.AppendResponse(context.Background(), "sv-1", &survey.Response{SubmitterKey: "203.0.113.5"}))
		require.NoError(t, repo.AppendResponse(context.Background(), "sv-2", &survey.Response{SubmitterKey: "203.0.113.5"}))
	})

	t.Run("missing survey", func(t *testing.T) {
		repo := store.NewSurveyMemory()

		err := repo.AppendResponse(context.Background(), "sv-1", &survey.Response{SubmitterKey: "203.0.113.5"})

		assert.ErrorIs(t, err, survey.ErrNotFound)
	})
}
