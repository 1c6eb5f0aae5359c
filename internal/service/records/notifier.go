package records

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"crudkit/internal/config"
	"crudkit/internal/model"
	"crudkit/internal/queue"
	"crudkit/internal/sse"
	"crudkit/internal/telemetry"
)

// Notifier fans committed mutations out to the local hub, the broker and the
// mutation counter. None of its failures reach the caller.
type Notifier struct {
	hub       *sse.Hub
	publisher queue.Publisher
	metrics   *telemetry.Metrics
	log       *zap.Logger
	origin    string
	prefix    string
	now       func() time.Time
}

func NewNotifier(cfg *config.Config, hub *sse.Hub, publisher queue.Publisher, metrics *telemetry.Metrics, logger *zap.Logger) *Notifier {
	if publisher == nil {
		publisher = queue.NoopPublisher{}
	}
	return &Notifier{
		hub:       hub,
		publisher: publisher,
		metrics:   metrics,
		log:       logger,
		origin:    cfg.InstanceID,
		prefix:    cfg.RabbitPublishPrefix,
		now:       time.Now,
	}
}

func (n *Notifier) Notify(ctx context.Context, resource, action, id string, record any) {
	n.metrics.RecordMutation(resource, action)

	event := model.Event{
		Resource: resource,
		Action:   action,
		ID:       id,
		Origin:   n.origin,
		At:       n.now().UTC(),
	}
	if record != nil {
		raw, err := json.Marshal(record)
		if err != nil {
			n.log.Error("encode event record failed", zap.String("resource", resource), zap.String("id", id), zap.Error(err))
		} else {
			event.Record = raw
		}
	}

	if n.hub != nil && !n.hub.Broadcast(event) {
		n.log.Warn("hub full, event dropped",
			zap.String("resource", resource),
			zap.String("action", action),
			zap.String("id", id),
		)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.log.Error("encode event failed", zap.String("resource", resource), zap.String("id", id), zap.Error(err))
		return
	}
	if err := n.publisher.Publish(ctx, payload, n.RoutingKey(resource, action)); err != nil {
		n.log.Error("publish event failed",
			zap.String("resource", resource),
			zap.String("action", action),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

// RoutingKey is <prefix>.<resource>.<action>.
func (n *Notifier) RoutingKey(resource, action string) string {
	if n.prefix == "" {
		return resource + "." + action
	}
	return n.prefix + "." + resource + "." + action
}
