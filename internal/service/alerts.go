package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"immunotrack/internal/logger"
	"immunotrack/internal/models"
	"immunotrack/internal/notify"
	"immunotrack/internal/repository"
)

// ----------- Safety thresholds -----------
const (
	SafeMinC = 2.0 // lower bound of the safe range, inclusive
	SafeMaxC = 8.0 // upper bound of the safe range, inclusive
)

// Message templates (pt-BR, matching the operator-facing tooling).
const (
	msgCriticalTemperature = "Temperatura crítica detectada: %.1f°C - Fora da faixa segura!"
	msgPowerFailure        = "Temperatura em 0.0°C - Possível falha de energia no refrigerador!"
	msgSensorOffline       = "Sensor %s sem leituras há %s - Possível sensor offline!"
	msgManualSimulation    = "Alerta de simulação disparado manualmente para teste de notificações"
)

// simulatedSensorID tags alerts created by the manual trigger path.
const simulatedSensorID = "sensor-simulacao"

// thresholdRule is one entry of the ordered rule list. Rules are evaluated
// first-match-wins: power failure precedes the generic out-of-range rule
// because 0.0 is itself out of range but carries a more specific diagnosis.
type thresholdRule struct {
	matches  func(tempC float64) bool
	typ      models.AlertType
	severity models.Severity
	message  func(tempC float64) string
}

func defaultRules() []thresholdRule {
	return []thresholdRule{
		{
			matches:  func(t float64) bool { return t == 0.0 },
			typ:      models.AlertPowerFailure,
			severity: models.SeverityCritical,
			message:  func(float64) string { return msgPowerFailure },
		},
		{
			matches:  func(t float64) bool { return t < SafeMinC || t > SafeMaxC },
			typ:      models.AlertCriticalTemperature,
			severity: models.SeverityCritical,
			message:  func(t float64) string { return fmt.Sprintf(msgCriticalTemperature, t) },
		},
	}
}

// AlertService constructs, records, and dispatches alerts.
type AlertService struct {
	alerts   repository.AlertRepo
	notifier notify.Notifier
	log      *logger.Logger
	rules    []thresholdRule
	seq      atomic.Uint64
	now      func() time.Time // injectable for deterministic tests
}

func NewAlertService(alerts repository.AlertRepo, notifier notify.Notifier, log *logger.Logger) *AlertService {
	return &AlertService{
		alerts:   alerts,
		notifier: notifier,
		log:      log,
		rules:    defaultRules(),
		now:      time.Now,
	}
}

// newAlertID combines a running counter with a timestamp suffix so ids are
// both ordered and human-traceable.
func (s *AlertService) newAlertID(ts time.Time) string {
	return fmt.Sprintf("alert-%06d-%s", s.seq.Add(1), ts.Format("20060102T150405"))
}

// EvaluateReading tests the reading against the ordered rule list and
// records an alert for the first matching rule. Returns nil when the
// reading is within the safe range.
func (s *AlertService) EvaluateReading(ctx context.Context, r models.Reading) (*models.Alert, error) {
	for _, rule := range s.rules {
		if !rule.matches(r.Temperature) {
			continue
		}
		temp := r.Temperature
		a := models.Alert{
			Type:        rule.typ,
			SensorID:    r.SensorID,
			Temperature: &temp,
			Severity:    rule.severity,
			Message:     rule.message(r.Temperature),
		}
		recorded, err := s.record(ctx, a)
		if err != nil {
			return nil, err
		}
		return &recorded, nil
	}
	return nil, nil
}

// RaiseOffline records a SENSOR_OFFLINE alert for a sensor whose last
// accepted reading is older than the staleness threshold.
func (s *AlertService) RaiseOffline(ctx context.Context, sensorID string, lastSeen time.Time) (models.Alert, error) {
	gap := s.now().UTC().Sub(lastSeen).Round(time.Second)
	return s.record(ctx, models.Alert{
		Type:     models.AlertSensorOffline,
		SensorID: sensorID,
		Severity: models.SeverityWarning,
		Message:  fmt.Sprintf(msgSensorOffline, sensorID, gap),
	})
}

// Simulate records a synthetic MANUAL_SIMULATION alert without a
// corresponding reading. Used for operational testing of the notification
// path; it follows the same construction and dispatch rules as organic
// alerts.
func (s *AlertService) Simulate(ctx context.Context) (models.Alert, error) {
	return s.record(ctx, models.Alert{
		Type:     models.AlertManualSimulation,
		SensorID: simulatedSensorID,
		Severity: models.SeverityInfo,
		Message:  msgManualSimulation,
	})
}

// record stamps, appends, and dispatches an alert. Alert persistence and
// notification delivery are decoupled: a dispatch failure is logged as a
// warning and the alert stays recorded.
func (s *AlertService) record(ctx context.Context, a models.Alert) (models.Alert, error) {
	ts := s.now().UTC()
	a.AlertID = s.newAlertID(ts)
	a.Timestamp = ts

	if err := s.alerts.Append(ctx, a); err != nil {
		return models.Alert{}, err
	}
	if s.log != nil {
		s.log.Infow("alert_raised",
			"alert_id", a.AlertID, "type", a.Type, "sensor_id", a.SensorID, "severity", a.Severity)
	}
	s.dispatch(ctx, a)
	return a, nil
}

func (s *AlertService) dispatch(ctx context.Context, a models.Alert) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Dispatch(ctx, a); err != nil {
		if s.log != nil {
			s.log.Warnw("alert_dispatch_failed", "alert_id", a.AlertID, "err", err)
		}
	}
}

func (s *AlertService) List(ctx context.Context) ([]models.Alert, error) {
	return s.alerts.List(ctx)
}

func (s *AlertService) Latest(ctx context.Context) (models.Alert, error) {
	return s.alerts.Latest(ctx)
}

func (s *AlertService) Count(ctx context.Context) (int, error) {
	return s.alerts.Count(ctx)
}

// Clear empties the alert log. It never touches the reading log.
func (s *AlertService) Clear(ctx context.Context) error {
	return s.alerts.Clear(ctx)
}
