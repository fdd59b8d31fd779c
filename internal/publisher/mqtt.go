package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"immunotrack/internal/models"
)

const mqttConnectTimeout = 5 * time.Second

// mqttReading is the wire payload published to the broker, matching what the
// collector-side subscriber expects.
type mqttReading struct {
	SensorID    string  `json:"sensor_id"`
	Temperatura float64 `json:"temperatura"`
	Timestamp   string  `json:"timestamp"`
	Unidade     string  `json:"unidade"`
}

// MQTTTransport publishes readings to a broker instead of the REST boundary.
// Topic layout: {prefix}/{room}/{sensor}/temperatura, the room being the
// sensor id's prefix (e.g. "salaA-sensor01" publishes under salaA).
type MQTTTransport struct {
	client      mqtt.Client
	topicPrefix string
	qos         byte
}

func NewMQTTTransport(broker, sensorID, topicPrefix string) *MQTTTransport {
	clientID := fmt.Sprintf("sensor-%s-%s", sensorID, uuid.NewString()[:8])
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(mqttConnectTimeout).
		SetAutoReconnect(true)
	return &MQTTTransport{
		client:      mqtt.NewClient(opts),
		topicPrefix: topicPrefix,
		qos:         1, // at-least-once toward the broker; the loop stays at-most-once end to end
	}
}

// Probe verifies broker connectivity, connecting on first use.
func (t *MQTTTransport) Probe(ctx context.Context) error {
	if t.client.IsConnectionOpen() {
		return nil
	}
	return waitToken(ctx, t.client.Connect())
}

func (t *MQTTTransport) Send(ctx context.Context, r models.Reading) error {
	payload, err := encodeReading(r)
	if err != nil {
		return err
	}
	return waitToken(ctx, t.client.Publish(t.topicFor(r.SensorID), t.qos, false, payload))
}

func (t *MQTTTransport) topicFor(sensorID string) string {
	return fmt.Sprintf("%s/%s/%s/temperatura", t.topicPrefix, room(sensorID), sensorID)
}

func encodeReading(r models.Reading) ([]byte, error) {
	return json.Marshal(mqttReading{
		SensorID:    r.SensorID,
		Temperatura: r.Temperature,
		Timestamp:   r.Timestamp.Format(time.RFC3339),
		Unidade:     "celsius",
	})
}

// waitToken blocks on a paho token, honoring the context deadline.
func waitToken(ctx context.Context, tok mqtt.Token) error {
	select {
	case <-tok.Done():
		return tok.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// room extracts the room prefix from ids like "salaA-sensor01".
func room(sensorID string) string {
	if i := strings.Index(sensorID, "-"); i > 0 {
		return sensorID[:i]
	}
	return "unknown"
}
