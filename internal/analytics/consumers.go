package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/surveyhub/surveyhub/internal/messaging"
	"go.uber.org/zap"
)

// NewConsumerGroup wires one typed consumer per analytics topic into a
// single group persisting events to the store.
func NewConsumerGroup(subscriber message.Subscriber, store Store, logger *zap.Logger) *messaging.ConsumerGroup {
	group := messaging.NewConsumerGroup(subscriber, logger)

	group.Add(messaging.NewConsumer(subscriber, TopicSurveyCreated,
		store.SaveSurveyCreated, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicResponseSubmitted,
		store.SaveResponseSubmitted, logger))
	group.Add(messaging.NewConsumer(subscriber, TopicLinkResolved,
		store.SaveLinkResolved, logger))

	return group
}
