package service

import (
	"context"
	"fmt"
	"time"

	"immunotrack/internal/logger"
	"immunotrack/internal/models"
	"immunotrack/internal/notify"
	"immunotrack/internal/repository"
)

// Telemetry is the ingestion boundary: accept readings and query the log.
type Telemetry interface {
	SubmitReading(ctx context.Context, r models.Reading) (models.Reading, error)
	Latest(ctx context.Context) (models.Reading, error)
	All(ctx context.Context) ([]models.Reading, error)
	Count(ctx context.Context) (int, error)
}

// Alerting evaluates readings against safety thresholds and owns the alert log.
type Alerting interface {
	EvaluateReading(ctx context.Context, r models.Reading) (*models.Alert, error)
	RaiseOffline(ctx context.Context, sensorID string, lastSeen time.Time) (models.Alert, error)
	Simulate(ctx context.Context) (models.Alert, error)
	List(ctx context.Context) ([]models.Alert, error)
	Latest(ctx context.Context) (models.Alert, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// Watcher runs the background staleness sweep that flags offline sensors.
// Stop via context cancellation in main() for graceful shutdown.
type Watcher interface {
	Run(ctx context.Context, tick time.Duration)
}

// ValidationError reports a malformed reading. It is surfaced to the caller
// and never crashes the process.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Service aggregates all sub-services.
type Service struct {
	Telemetry
	Alerting
	Watcher
}

// NewService wires the repository layer and the notification channel into
// concrete services. A non-positive staleAfter falls back to DefaultStaleAfter.
func NewService(repos *repository.Repository, notifier notify.Notifier, staleAfter time.Duration, log *logger.Logger) *Service {
	alerts := NewAlertService(repos.Alerts, notifier, log)
	return &Service{
		Telemetry: NewTelemetryService(repos.Readings, alerts),
		Alerting:  alerts,
		Watcher:   NewStalenessService(repos.Readings, alerts, staleAfter, log),
	}
}
