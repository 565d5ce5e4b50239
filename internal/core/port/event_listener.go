package port

import "context"

// EventListenerPort is a long-running broker consumer. Start blocks
// until the context is cancelled or the listener fails.
type EventListenerPort interface {
	Start(ctx context.Context) error
	Close() error
}
