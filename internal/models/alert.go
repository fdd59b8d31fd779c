package models

import "time"

// AlertType classifies the anomalous condition that produced an alert.
type AlertType string

const (
	AlertCriticalTemperature AlertType = "CRITICAL_TEMPERATURE"
	AlertSensorOffline       AlertType = "SENSOR_OFFLINE"
	AlertPowerFailure        AlertType = "POWER_FAILURE"
	AlertManualSimulation    AlertType = "MANUAL_SIMULATION"
)

// Severity ranks how urgent an alert is.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityWarning  Severity = "WARNING"
	SeverityInfo     Severity = "INFO"
)

// Alert is a derived record signaling an out-of-range or anomalous condition.
// It references the triggering reading by sensor id and temperature value,
// never by pointer. Temperature is nil for non-temperature alerts
// (SENSOR_OFFLINE, MANUAL_SIMULATION).
type Alert struct {
	AlertID     string    `json:"alert_id"`
	Type        AlertType `json:"type"`
	SensorID    string    `json:"sensor_id"`
	Temperature *float64  `json:"temperature,omitempty"` // °C
	Severity    Severity  `json:"severity"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
}
