package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"immunotrack/internal/models"
	"immunotrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration test ---

func TestWebSocket_TelemetryStream(t *testing.T) {
	latest := models.Reading{SensorID: "sensor-001", Temperature: 4.5, Timestamp: time.Now().UTC()}
	s := &service.Service{
		Telemetry: &mockTelemetry{latestResp: latest, countResp: 3},
		Alerting:  &mockAlerting{countResp: 1},
	}
	r := newTestRouter(s)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?interval_ms=50"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v (resp=%v)", err, resp)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var env struct {
		Type string `json:"type"`
		Data struct {
			Latest       *models.Reading `json:"latest"`
			ReadingCount int             `json:"reading_count"`
			AlertCount   int             `json:"alert_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Type != "telemetry" {
		t.Fatalf("type = %q", env.Type)
	}
	if env.Data.Latest == nil || env.Data.Latest.Temperature != 4.5 {
		t.Fatalf("latest = %+v", env.Data.Latest)
	}
	if env.Data.ReadingCount != 3 || env.Data.AlertCount != 1 {
		t.Fatalf("counts = %+v", env.Data)
	}
}

func TestWebSocket_EmptyLogOmitsLatest(t *testing.T) {
	s := &service.Service{
		Telemetry: &mockTelemetry{latestErr: notFoundErr},
		Alerting:  &mockAlerting{},
	}
	r := newTestRouter(s)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env wsEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	data, _ := env.Data.(map[string]interface{})
	if _, ok := data["latest"]; ok {
		t.Fatalf("latest should be omitted when empty: %+v", data)
	}
}
