package notify

import (
	"context"
	"sync"

	"waste-ops-service/internal/ports"
)

// CaptureNotifier records published events for test assertions.
type CaptureNotifier struct {
	mu     sync.Mutex
	events []ports.Event

	// Err, when set, is returned by Publish.
	Err error
}

func NewCaptureNotifier() *CaptureNotifier { return &CaptureNotifier{} }

func (n *CaptureNotifier) Publish(ctx context.Context, event ports.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.events = append(n.events, event)
	return nil
}

func (n *CaptureNotifier) Events() []ports.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]ports.Event, len(n.events))
	copy(out, n.events)
	return out
}

var _ ports.Notifier = (*CaptureNotifier)(nil)
