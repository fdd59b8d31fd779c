package service

import (
	"context"
	"math"
	"strings"

	"immunotrack/internal/models"
	"immunotrack/internal/repository"
)

// TelemetryService validates, persists, and evaluates incoming readings.
type TelemetryService struct {
	readings repository.ReadingRepo
	alerts   Alerting
}

func NewTelemetryService(readings repository.ReadingRepo, alerts Alerting) *TelemetryService {
	return &TelemetryService{readings: readings, alerts: alerts}
}

// validateReading rejects non-finite temperatures, empty sensor ids, and
// zero timestamps. A rejected reading is not appended and no alert is
// evaluated for it.
func validateReading(r models.Reading) error {
	if strings.TrimSpace(r.SensorID) == "" {
		return &ValidationError{Field: "sensor_id", Reason: "must not be empty"}
	}
	if math.IsNaN(r.Temperature) || math.IsInf(r.Temperature, 0) {
		return &ValidationError{Field: "temperature", Reason: "must be a finite number"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "timestamp", Reason: "must be set"}
	}
	return nil
}

// SubmitReading accepts one reading: validate, append, then evaluate
// thresholds synchronously. The reading is appended unconditionally once
// valid; alerting never blocks acceptance.
func (s *TelemetryService) SubmitReading(ctx context.Context, r models.Reading) (models.Reading, error) {
	if err := validateReading(r); err != nil {
		return models.Reading{}, err
	}

	r.SensorID = strings.TrimSpace(r.SensorID)
	r.Timestamp = r.Timestamp.UTC()

	if err := s.readings.Append(ctx, r); err != nil {
		return models.Reading{}, err
	}

	if _, err := s.alerts.EvaluateReading(ctx, r); err != nil {
		// The reading is already accepted; evaluation failure is a
		// collector-side problem, not the caller's.
		return r, err
	}
	return r, nil
}

func (s *TelemetryService) Latest(ctx context.Context) (models.Reading, error) {
	return s.readings.Latest(ctx)
}

func (s *TelemetryService) All(ctx context.Context) ([]models.Reading, error) {
	return s.readings.All(ctx)
}

func (s *TelemetryService) Count(ctx context.Context) (int, error) {
	return s.readings.Count(ctx)
}
