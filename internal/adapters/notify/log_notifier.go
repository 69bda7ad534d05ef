// Package notify provides Notifier adapters. Real-time delivery is an
// external concern; the log notifier stands in for a broadcast
// transport in local runs.
package notify

import (
	"context"
	"encoding/json"
	"log"

	"waste-ops-service/internal/ports"
)

type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Publish(ctx context.Context, event ports.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	log.Printf("event type=%s topic=%s payload=%s", event.Type, event.Topic, payload)
	return nil
}

var _ ports.Notifier = (*LogNotifier)(nil)
