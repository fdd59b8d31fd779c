package publisher

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		SensorID:       "sensor-001",
		CollectorURL:   "http://collector:8000",
		Interval:       10 * time.Second,
		SafeMinC:       2.0,
		SafeMaxC:       8.0,
		Retries:        3,
		AttemptTimeout: 5 * time.Second,
		Transport:      TransportHTTP,
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	c := Config{
		SensorID:     "sensor-001",
		CollectorURL: "http://collector:8000",
		SafeMinC:     DefaultSafeMinC,
		SafeMaxC:     DefaultSafeMaxC,
	}
	c.ApplyDefaults()

	if c.Interval != DefaultInterval {
		t.Fatalf("interval = %v", c.Interval)
	}
	if c.Retries != DefaultRetries || c.Transport != TransportHTTP {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.AttemptTimeout != DefaultAttemptTimeout || c.MQTTTopic != DefaultTopicPrefix {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaulted config must validate: %v", err)
	}
}

func TestConfig_ZeroRangeIsRejectedNotDefaulted(t *testing.T) {
	c := Config{SensorID: "sensor-001", CollectorURL: "http://collector:8000"}
	c.ApplyDefaults()

	if c.SafeMinC != 0 || c.SafeMaxC != 0 {
		t.Fatalf("zero range must survive ApplyDefaults, got [%v, %v]", c.SafeMinC, c.SafeMaxC)
	}
	err := c.Validate()
	if err == nil || !strings.Contains(err.Error(), "invalid safe range") {
		t.Fatalf("err = %v, want invalid safe range", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"inverted range", func(c *Config) { c.SafeMinC = 8.0; c.SafeMaxC = 2.0 }, "invalid safe range"},
		{"equal bounds", func(c *Config) { c.SafeMinC = 5.0; c.SafeMaxC = 5.0 }, "invalid safe range"},
		{"empty sensor id", func(c *Config) { c.SensorID = "" }, "sensor id"},
		{"zero retries", func(c *Config) { c.Retries = 0 }, "retry limit"},
		{"negative interval", func(c *Config) { c.Interval = -time.Second }, "interval"},
		{"http without url", func(c *Config) { c.CollectorURL = "" }, "collector url"},
		{"mqtt without broker", func(c *Config) { c.Transport = TransportMQTT }, "mqtt broker"},
		{"unknown transport", func(c *Config) { c.Transport = "carrier-pigeon" }, "unknown transport"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(&c)
			err := c.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}
