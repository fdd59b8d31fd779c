package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"immunotrack/internal/models"
)

type telemetryStub struct {
	submitted []models.Reading
	submitErr error
}

func (s *telemetryStub) SubmitReading(_ context.Context, r models.Reading) (models.Reading, error) {
	if s.submitErr != nil {
		return models.Reading{}, s.submitErr
	}
	s.submitted = append(s.submitted, r)
	return r, nil
}

func (s *telemetryStub) Latest(context.Context) (models.Reading, error) {
	return models.Reading{}, nil
}

func (s *telemetryStub) All(context.Context) ([]models.Reading, error) { return nil, nil }

func (s *telemetryStub) Count(context.Context) (int, error) { return len(s.submitted), nil }

func newTestSubscriber(stub *telemetryStub) *MQTTSubscriber {
	return NewMQTTSubscriber("tcp://broker:1883", "immunotrack", stub, nil)
}

func TestIngest_SubmitsValidPayload(t *testing.T) {
	stub := &telemetryStub{}
	sub := newTestSubscriber(stub)

	payload := []byte(`{"sensor_id":"salaA-sensor01","temperatura":4.5,"timestamp":"2026-08-26T12:00:00Z"}`)
	if err := sub.ingest(context.Background(), payload); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if len(stub.submitted) != 1 {
		t.Fatalf("submitted %d readings, want 1", len(stub.submitted))
	}
	got := stub.submitted[0]
	if got.SensorID != "salaA-sensor01" || got.Temperature != 4.5 {
		t.Fatalf("unexpected reading: %+v", got)
	}
	want := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	if !got.Timestamp.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, want)
	}
}

func TestIngest_AcceptsNaiveTimestampAsUTC(t *testing.T) {
	stub := &telemetryStub{}
	sub := newTestSubscriber(stub)

	payload := []byte(`{"sensor_id":"salaB-sensor02","temperatura":0.0,"timestamp":"2026-08-26T12:00:00.123456"}`)
	if err := sub.ingest(context.Background(), payload); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	got := stub.submitted[0].Timestamp
	want := time.Date(2026, 8, 26, 12, 0, 0, 123456000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("timestamp = %v, want %v", got, want)
	}
	if stub.submitted[0].Temperature != 0.0 {
		t.Fatalf("temperature = %v, want 0.0", stub.submitted[0].Temperature)
	}
}

func TestIngest_RejectsMalformedPayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"not json", `temperatura=4.5`},
		{"bad timestamp", `{"sensor_id":"s1","temperatura":4.5,"timestamp":"yesterday"}`},
		{"missing timestamp", `{"sensor_id":"s1","temperatura":4.5}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &telemetryStub{}
			sub := newTestSubscriber(stub)
			if err := sub.ingest(context.Background(), []byte(tc.payload)); err == nil {
				t.Fatal("expected error")
			}
			if len(stub.submitted) != 0 {
				t.Fatalf("submitted %d readings, want 0", len(stub.submitted))
			}
		})
	}
}

func TestIngest_PropagatesValidationError(t *testing.T) {
	wantErr := errors.New("invalid sensor_id: must not be empty")
	stub := &telemetryStub{submitErr: wantErr}
	sub := newTestSubscriber(stub)

	payload := []byte(`{"sensor_id":"","temperatura":4.5,"timestamp":"2026-08-26T12:00:00Z"}`)
	err := sub.ingest(context.Background(), payload)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestNewMQTTSubscriber_DefaultsTopicPrefix(t *testing.T) {
	sub := NewMQTTSubscriber("tcp://broker:1883", "", &telemetryStub{}, nil)
	if sub.topicPrefix != "immunotrack" {
		t.Fatalf("topicPrefix = %q", sub.topicPrefix)
	}
}
