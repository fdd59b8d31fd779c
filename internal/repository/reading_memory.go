package repository

import (
	"context"
	"sync"
	"time"

	"immunotrack/internal/models"
)

// ReadingMemory is a mutex-guarded, append-only in-memory reading log.
// The backing slice is never handed out directly; All returns a copy.
type ReadingMemory struct {
	mu       sync.RWMutex
	readings []models.Reading
	lastSeen map[string]time.Time
	now      func() time.Time // injectable for deterministic tests
}

func NewReadingMemory() *ReadingMemory {
	return &ReadingMemory{
		readings: make([]models.Reading, 0, 64),
		lastSeen: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (r *ReadingMemory) Append(ctx context.Context, rd models.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, rd)
	r.lastSeen[rd.SensorID] = r.now().UTC()
	return nil
}

// Latest returns the last appended reading, or ErrNotFound when the log is empty.
func (r *ReadingMemory) Latest(ctx context.Context) (models.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.readings) == 0 {
		return models.Reading{}, ErrNotFound
	}
	return r.readings[len(r.readings)-1], nil
}

func (r *ReadingMemory) All(ctx context.Context) ([]models.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Reading, len(r.readings))
	copy(out, r.readings)
	return out, nil
}

func (r *ReadingMemory) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readings), nil
}

func (r *ReadingMemory) LastSeen(ctx context.Context) (map[string]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]time.Time, len(r.lastSeen))
	for id, t := range r.lastSeen {
		out[id] = t
	}
	return out, nil
}
