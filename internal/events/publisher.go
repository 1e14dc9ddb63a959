package events

import "context"

// Publisher delivers envelopes after the originating transaction commits.
// Delivery is best effort and never reports failure to the caller.
type Publisher interface {
	Publish(ctx context.Context, env Envelope)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Envelope) {}
