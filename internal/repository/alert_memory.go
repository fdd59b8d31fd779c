package repository

import (
	"context"
	"sync"

	"immunotrack/internal/models"
)

// AlertMemory is a mutex-guarded, append-only in-memory alert log.
// Clear resets it to empty; nothing else mutates existing entries.
type AlertMemory struct {
	mu     sync.RWMutex
	alerts []models.Alert
}

func NewAlertMemory() *AlertMemory {
	return &AlertMemory{alerts: make([]models.Alert, 0, 16)}
}

func (r *AlertMemory) Append(ctx context.Context, a models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

// Latest returns the last appended alert, or ErrNotFound when the log is empty.
func (r *AlertMemory) Latest(ctx context.Context) (models.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.alerts) == 0 {
		return models.Alert{}, ErrNotFound
	}
	return r.alerts[len(r.alerts)-1], nil
}

func (r *AlertMemory) List(ctx context.Context) ([]models.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Alert, len(r.alerts))
	copy(out, r.alerts)
	return out, nil
}

func (r *AlertMemory) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alerts), nil
}

func (r *AlertMemory) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = r.alerts[:0]
	return nil
}
