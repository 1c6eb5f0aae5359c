package queue

import "context"

// Consumer runs until ctx is cancelled or the broker connection fails.
type Consumer interface {
	Start(ctx context.Context) error
}

type Publisher interface {
	Publish(ctx context.Context, payload []byte, routingKey string) error
}

// NoopPublisher drops every payload. It stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, []byte, string) error {
	return nil
}
