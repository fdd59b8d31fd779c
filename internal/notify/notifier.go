package notify

import (
	"context"

	"immunotrack/internal/models"
)

// Notifier delivers an alert through an external channel. Delivery is
// attempted exactly once per alert; failures are surfaced as errors for the
// caller to log, never retried here.
type Notifier interface {
	Dispatch(ctx context.Context, a models.Alert) error
}

// Nop discards every alert. Used when no channel is configured and in tests.
type Nop struct{}

func (Nop) Dispatch(ctx context.Context, a models.Alert) error { return nil }
