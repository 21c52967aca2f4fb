package analytics

import "context"

// Store defines the interface for persisting analytics events.
type Store interface {
	SaveSurveyCreated(ctx context.Context, event *SurveyCreatedEvent) error
	SaveResponseSubmitted(ctx context.Context, event *ResponseSubmittedEvent) error
	SaveLinkResolved(ctx context.Context, event *LinkResolvedEvent) error
}
