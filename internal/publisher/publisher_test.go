package publisher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// newCollectorStub serves /health and /api/v1/temperature with controllable
// status codes, counting hits per endpoint.
func newCollectorStub(healthStatus, sendStatus *atomic.Int64, probes, sends *atomic.Int64) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		w.WriteHeader(int(healthStatus.Load()))
	})
	mux.HandleFunc("/api/v1/temperature", func(w http.ResponseWriter, r *http.Request) {
		sends.Add(1)
		w.WriteHeader(int(sendStatus.Load()))
	})
	return httptest.NewServer(mux)
}

func testConfig(url string) Config {
	return Config{
		SensorID:       "sensor-001",
		CollectorURL:   url,
		Interval:       50 * time.Millisecond,
		SafeMinC:       2.0,
		SafeMaxC:       8.0,
		Retries:        3,
		AttemptTimeout: time.Second,
		Transport:      TransportHTTP,
	}
}

func TestCycle_Delivered(t *testing.T) {
	var healthStatus, sendStatus, probes, sends atomic.Int64
	healthStatus.Store(http.StatusOK)
	sendStatus.Store(http.StatusOK)
	srv := newCollectorStub(&healthStatus, &sendStatus, &probes, &sends)
	defer srv.Close()

	p, err := New(testConfig(srv.URL), NewHTTPTransport(srv.URL), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := p.cycle(context.Background()); got != StateDelivered {
		t.Fatalf("state = %s, want DELIVERED", got)
	}
	st := p.Stats()
	if st.Delivered != 1 || st.Attempts != 1 || st.Skipped != 0 || st.Abandoned != 0 {
		t.Fatalf("stats = %+v", st)
	}
	if sends.Load() != 1 {
		t.Fatalf("sends = %d, want 1", sends.Load())
	}
}

func TestCycle_ProbeFailureSkipsWithoutConsumingRetries(t *testing.T) {
	var healthStatus, sendStatus, probes, sends atomic.Int64
	healthStatus.Store(http.StatusServiceUnavailable)
	sendStatus.Store(http.StatusOK)
	srv := newCollectorStub(&healthStatus, &sendStatus, &probes, &sends)
	defer srv.Close()

	p, err := New(testConfig(srv.URL), NewHTTPTransport(srv.URL), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := p.cycle(context.Background()); got != StateSkipped {
		t.Fatalf("state = %s, want SKIPPED", got)
	}
	if sends.Load() != 0 {
		t.Fatalf("no send attempt may occur on probe failure, got %d", sends.Load())
	}
	st := p.Stats()
	if st.Skipped != 1 || st.Attempts != 0 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestCycle_RetryExhaustionAbandonsAfterThirdAttempt(t *testing.T) {
	var healthStatus, sendStatus, probes, sends atomic.Int64
	healthStatus.Store(http.StatusOK)
	sendStatus.Store(http.StatusInternalServerError)
	srv := newCollectorStub(&healthStatus, &sendStatus, &probes, &sends)
	defer srv.Close()

	p, err := New(testConfig(srv.URL), NewHTTPTransport(srv.URL), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := p.cycle(context.Background()); got != StateAbandoned {
		t.Fatalf("state = %s, want ABANDONED", got)
	}
	if sends.Load() != 3 {
		t.Fatalf("send attempts = %d, want exactly 3", sends.Load())
	}
	st := p.Stats()
	if st.Abandoned != 1 || st.Attempts != 3 || st.Delivered != 0 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestCycle_RecoversOnRetry(t *testing.T) {
	var healthStatus, sendStatus, probes, sends atomic.Int64
	healthStatus.Store(http.StatusOK)
	sendStatus.Store(http.StatusBadGateway)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		probes.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/v1/temperature", func(w http.ResponseWriter, r *http.Request) {
		// First attempt fails, second succeeds.
		if sends.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p, err := New(testConfig(srv.URL), NewHTTPTransport(srv.URL), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if got := p.cycle(context.Background()); got != StateDelivered {
		t.Fatalf("state = %s, want DELIVERED", got)
	}
	st := p.Stats()
	if st.Delivered != 1 || st.Attempts != 2 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	var healthStatus, sendStatus, probes, sends atomic.Int64
	healthStatus.Store(http.StatusOK)
	sendStatus.Store(http.StatusOK)
	srv := newCollectorStub(&healthStatus, &sendStatus, &probes, &sends)
	defer srv.Close()

	p, err := New(testConfig(srv.URL), NewHTTPTransport(srv.URL), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(120 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	if p.Stats().Delivered == 0 {
		t.Fatal("expected at least one delivered cycle before cancel")
	}
}

func TestGenerate_WithinEnvelope(t *testing.T) {
	p, err := New(testConfig("http://collector"), NewHTTPTransport("http://collector"), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	for i := 0; i < 1000; i++ {
		r := p.generate()
		if r.Temperature < 2.0 || r.Temperature > 8.0 {
			t.Fatalf("temperature %.2f outside [2.0, 8.0]", r.Temperature)
		}
		if r.SensorID != "sensor-001" || r.Timestamp.IsZero() {
			t.Fatalf("unexpected reading: %+v", r)
		}
	}
}
