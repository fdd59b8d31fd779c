package publisher

import (
	"errors"
	"fmt"
	"time"
)

// Defaults for the sensor loop.
const (
	DefaultInterval       = 10 * time.Second
	DefaultSafeMinC       = 2.0
	DefaultSafeMaxC       = 8.0
	DefaultRetries        = 3
	DefaultAttemptTimeout = 5 * time.Second
	DefaultTopicPrefix    = "immunotrack"
)

// Supported transports.
const (
	TransportHTTP = "http"
	TransportMQTT = "mqtt"
)

// Config holds the publisher-side options.
type Config struct {
	SensorID       string
	CollectorURL   string
	Interval       time.Duration
	SafeMinC       float64
	SafeMaxC       float64
	Retries        int
	AttemptTimeout time.Duration
	Transport      string // "http" | "mqtt"
	MQTTBroker     string
	MQTTTopic      string // topic prefix for MQTT publishes
}

// ApplyDefaults fills zero-valued fields with the documented defaults. The
// safe range is never defaulted here: 0/0 is a legal-looking but invalid
// range and must fail Validate, not be silently rewritten. Range defaults
// are supplied by the flag layer (DefaultSafeMinC/DefaultSafeMaxC).
func (c *Config) ApplyDefaults() {
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.Retries == 0 {
		c.Retries = DefaultRetries
	}
	if c.AttemptTimeout == 0 {
		c.AttemptTimeout = DefaultAttemptTimeout
	}
	if c.Transport == "" {
		c.Transport = TransportHTTP
	}
	if c.MQTTTopic == "" {
		c.MQTTTopic = DefaultTopicPrefix
	}
}

// Validate rejects configurations that cannot produce a working loop.
// An inverted safe range is a startup error, never a runtime fallback.
func (c Config) Validate() error {
	if c.SensorID == "" {
		return errors.New("sensor id must not be empty")
	}
	if c.SafeMinC >= c.SafeMaxC {
		return fmt.Errorf("invalid safe range: min %.2f must be below max %.2f", c.SafeMinC, c.SafeMaxC)
	}
	if c.Interval <= 0 {
		return errors.New("publish interval must be positive")
	}
	if c.Retries < 1 {
		return errors.New("retry limit must be at least 1")
	}
	if c.AttemptTimeout <= 0 {
		return errors.New("attempt timeout must be positive")
	}
	switch c.Transport {
	case TransportHTTP:
		if c.CollectorURL == "" {
			return errors.New("collector url must be set for the http transport")
		}
	case TransportMQTT:
		if c.MQTTBroker == "" {
			return errors.New("mqtt broker must be set for the mqtt transport")
		}
	default:
		return fmt.Errorf("unknown transport %q (expected %q or %q)", c.Transport, TransportHTTP, TransportMQTT)
	}
	return nil
}
