package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"immunotrack/internal/logger"
	"immunotrack/internal/models"
	"immunotrack/internal/service"
)

const (
	connectTimeout = 5 * time.Second
	subscribeQoS   = 1

	// layoutNaive accepts zone-less ISO-8601 stamps, read as UTC.
	layoutNaive = "2006-01-02T15:04:05.999999999"
)

// sensorReading is the payload sensors publish under
// {prefix}/{room}/{sensor}/temperatura.
type sensorReading struct {
	SensorID    string  `json:"sensor_id"`
	Temperatura float64 `json:"temperatura"`
	Timestamp   string  `json:"timestamp"`
}

// MQTTSubscriber feeds broker-published readings into the telemetry service,
// so sensors on the MQTT transport land in the same log as REST submissions.
type MQTTSubscriber struct {
	broker      string
	topicPrefix string
	telemetry   service.Telemetry
	log         *logger.Logger
}

func NewMQTTSubscriber(broker, topicPrefix string, telemetry service.Telemetry, log *logger.Logger) *MQTTSubscriber {
	if topicPrefix == "" {
		topicPrefix = "immunotrack"
	}
	return &MQTTSubscriber{
		broker:      broker,
		topicPrefix: topicPrefix,
		telemetry:   telemetry,
		log:         log,
	}
}

// Run connects to the broker, subscribes to the temperature topic, and blocks
// until ctx is canceled. Subscribing happens in the connect handler so the
// subscription is re-established after an automatic reconnect.
func (s *MQTTSubscriber) Run(ctx context.Context) error {
	topic := fmt.Sprintf("%s/+/+/temperatura", s.topicPrefix)
	opts := mqtt.NewClientOptions().
		AddBroker(s.broker).
		SetClientID(fmt.Sprintf("collector-%s", uuid.NewString()[:8])).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true).
		SetOnConnectHandler(func(c mqtt.Client) {
			c.Subscribe(topic, subscribeQoS, func(_ mqtt.Client, msg mqtt.Message) {
				s.handle(ctx, msg)
			})
			if s.log != nil {
				s.log.Infow("mqtt_subscribed", "broker", s.broker, "topic", topic)
			}
		})

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	select {
	case <-tok.Done():
		if err := tok.Error(); err != nil {
			return fmt.Errorf("mqtt connect: %w", err)
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	<-ctx.Done()
	client.Disconnect(250)
	return nil
}

func (s *MQTTSubscriber) handle(ctx context.Context, msg mqtt.Message) {
	if err := s.ingest(ctx, msg.Payload()); err != nil {
		if s.log != nil {
			s.log.Warnw("mqtt_reading_rejected", "topic", msg.Topic(), "err", err)
		}
	}
}

// ingest decodes one published payload and submits it through the same
// validation path as REST submissions.
func (s *MQTTSubscriber) ingest(ctx context.Context, payload []byte) error {
	var in sensorReading
	if err := json.Unmarshal(payload, &in); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	ts, err := parseTimestamp(in.Timestamp)
	if err != nil {
		return err
	}
	_, err = s.telemetry.SubmitReading(ctx, models.Reading{
		SensorID:    in.SensorID,
		Temperature: in.Temperatura,
		Timestamp:   ts,
	})
	return err
}

// parseTimestamp accepts RFC3339 stamps and zone-less ones, read as UTC.
func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(layoutNaive, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return ts.UTC(), nil
}
