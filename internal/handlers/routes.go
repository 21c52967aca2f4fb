package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/surveyhub/surveyhub/internal/auth"
	"github.com/surveyhub/surveyhub/internal/ratelimit"
)

// RegisterRoutes registers the survey and short-link routes with their
// per-endpoint auth and rate limit configuration.
func RegisterRoutes(api huma.API, surveys *SurveyHandler, links *ShortLinkHandler) {
	authRequired := map[string]any{
		auth.MetadataKey: auth.EndpointConfig{Required: true},
	}

	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/surveys",
		Summary:       "Create survey",
		Tags:          []string{"Surveys"},
		DefaultStatus: http.StatusCreated,
		Metadata:      authRequired,
	}, surveys.CreateSurvey)

	huma.Register(api, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/surveys/public",
		Summary: "List public surveys",
		Tags:    []string{"Surveys"},
	}, surveys.ListPublicSurveys)

	huma.Register(api, huma.Operation{
		Method:   http.MethodGet,
		Path:     "/surveys/my-surveys",
		Summary:  "List own surveys",
		Tags:     []string{"Surveys"},
		Metadata: authRequired,
	}, surveys.ListMySurveys)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/surveys/{surveyId}",
		Summary:     "Get survey",
		Description: "Fetches a survey by its ID or by its shareable link token.",
		Tags:        []string{"Surveys"},
	}, surveys.GetSurvey)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPut,
		Path:     "/surveys/{surveyId}",
		Summary:  "Update survey",
		Tags:     []string{"Surveys"},
		Metadata: authRequired,
	}, surveys.UpdateSurvey)

	huma.Register(api, huma.Operation{
		Method:   http.MethodDelete,
		Path:     "/surveys/{surveyId}",
		Summary:  "Delete survey",
		Tags:     []string{"Surveys"},
		Metadata: authRequired,
	}, surveys.DeleteSurvey)

	// Public write endpoint, so stricter limits than the default.
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/surveys/{surveyId}/respond",
		Summary:       "Submit response",
		Description:   "Records one response per submitter per survey.",
		Tags:          []string{"Responses"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 20},
					{Window: time.Hour, Max: 200},
				},
			},
		},
	}, surveys.SubmitResponse)

	huma.Register(api, huma.Operation{
		Method:   http.MethodPost,
		Path:     "/shorturl/create",
		Summary:  "Create short URL",
		Tags:     []string{"Short URLs"},
		Metadata: authRequired,
	}, links.CreateShortLink)

	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/shorturl/{code}",
		Summary:     "Resolve short URL",
		Description: "Returns the redirect target for a short code. Codes expire 5 days after creation.",
		Tags:        []string{"Short URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 300},
				},
			},
		},
	}, links.ResolveShortLink)
}
