package models

import "time"

// Reading is a single temperature measurement reported by one sensor.
// Readings are immutable once accepted by the collector.
type Reading struct {
	SensorID    string    `json:"sensor_id"`
	Temperature float64   `json:"temperature"` // °C
	Timestamp   time.Time `json:"timestamp"`
}
