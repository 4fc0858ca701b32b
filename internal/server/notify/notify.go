// Package notify announces recorded events to external subscribers.
package notify

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"
	"github.com/dmitrijs2005/stashboard/internal/logging"
	"github.com/dmitrijs2005/stashboard/internal/server/models"
)

// Notifier is told about every event after it has been stored. It never
// fails the write: delivery problems are the notifier's own business.
type Notifier interface {
	EventRecorded(ctx context.Context, event *models.Event, status *models.Status)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) EventRecorded(context.Context, *models.Event, *models.Status) {}

// Message attribute keys.
const (
	AttrService = "service"
	AttrStatus  = "status"
)

// PubSubNotifier publishes the JSON event projection to a Pub/Sub topic.
type PubSubNotifier struct {
	topic   *pubsub.Topic
	baseURL string
	logger  logging.Logger
}

// NewPubSubNotifier publishes to topicID on client. baseURL is used to build
// the links inside the payload.
func NewPubSubNotifier(client *pubsub.Client, topicID, baseURL string, logger logging.Logger) *PubSubNotifier {
	return &PubSubNotifier{
		topic:   client.Topic(topicID),
		baseURL: baseURL,
		logger:  logger.With("module", "notify"),
	}
}

func (n *PubSubNotifier) EventRecorded(ctx context.Context, event *models.Event, status *models.Status) {
	data, err := json.Marshal(event.Rest(n.baseURL, status))
	if err != nil {
		n.logger.Error(ctx, "marshal event", "sid", event.ID, "error", err)
		return
	}

	res := n.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			AttrService: event.ServiceSlug,
			AttrStatus:  event.StatusSlug,
		},
	})
	id, err := res.Get(ctx)
	if err != nil {
		n.logger.Error(ctx, "publish event", "sid", event.ID, "topic", n.topic.ID(), "error", err)
		return
	}
	n.logger.Debug(ctx, "event published", "sid", event.ID, "message_id", id)
}

// Stop flushes pending messages.
func (n *PubSubNotifier) Stop() {
	n.topic.Stop()
}
