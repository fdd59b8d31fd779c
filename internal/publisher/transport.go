package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"immunotrack/internal/models"
)

// Transport delivers readings to the collector. Probe is the lightweight
// reachability check issued before every send; both calls must respect the
// deadline carried by ctx.
type Transport interface {
	Probe(ctx context.Context) error
	Send(ctx context.Context, r models.Reading) error
}

// HTTPTransport talks to the collector's REST ingestion boundary.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTransport targets the collector at baseURL. Per-attempt timeouts
// come from the caller's context, so the client itself carries none.
func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Probe issues GET /health and accepts any 2xx answer.
func (t *HTTPTransport) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health probe: collector returned status %d", resp.StatusCode)
	}
	return nil
}

// Send posts the reading to the ingestion endpoint.
func (t *HTTPTransport) Send(ctx context.Context, r models.Reading) error {
	body, err := json.Marshal(r)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/api/v1/temperature", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send reading: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send reading: collector returned status %d", resp.StatusCode)
	}
	return nil
}

// drainAndClose empties the body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
