package repository

import (
	"context"
	"errors"
	"time"

	"immunotrack/internal/models"
)

// ErrNotFound is returned by Latest queries against an empty log.
var ErrNotFound = errors.New("not found")

// ReadingRepo is the append-only log of accepted readings.
// Insertion order is arrival order; entries are never mutated or reordered.
type ReadingRepo interface {
	Append(ctx context.Context, r models.Reading) error
	Latest(ctx context.Context) (models.Reading, error)
	All(ctx context.Context) ([]models.Reading, error)
	Count(ctx context.Context) (int, error)
	// LastSeen reports, per sensor id, the wall-clock time its latest
	// reading was accepted.
	LastSeen(ctx context.Context) (map[string]time.Time, error)
}

// AlertRepo is the append-only log of raised alerts. Clear is the only
// mutation besides Append.
type AlertRepo interface {
	Append(ctx context.Context, a models.Alert) error
	Latest(ctx context.Context) (models.Alert, error)
	List(ctx context.Context) ([]models.Alert, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

type Repository struct {
	Readings ReadingRepo
	Alerts   AlertRepo
}

// NewRepository wires the in-memory stores. Data lives for the process
// lifetime only.
func NewRepository() *Repository {
	return &Repository{
		Readings: NewReadingMemory(),
		Alerts:   NewAlertMemory(),
	}
}
