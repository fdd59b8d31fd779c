package handlers

import (
	"context"
	"time"

	"immunotrack/internal/models"
	"immunotrack/internal/repository"
	"immunotrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	submitResp  models.Reading
	submitErr   error
	latestResp  models.Reading
	latestErr   error
	allResp     []models.Reading
	allErr      error
	countResp   int
	countErr    error
	lastSubmit  models.Reading
	submitCalls int
}

func (m *mockTelemetry) SubmitReading(ctx context.Context, r models.Reading) (models.Reading, error) {
	m.submitCalls++
	m.lastSubmit = r
	if m.submitErr != nil {
		return models.Reading{}, m.submitErr
	}
	if m.submitResp == (models.Reading{}) {
		return r, nil
	}
	return m.submitResp, nil
}
func (m *mockTelemetry) Latest(ctx context.Context) (models.Reading, error) {
	return m.latestResp, m.latestErr
}
func (m *mockTelemetry) All(ctx context.Context) ([]models.Reading, error) {
	return m.allResp, m.allErr
}
func (m *mockTelemetry) Count(ctx context.Context) (int, error) {
	return m.countResp, m.countErr
}

type mockAlerting struct {
	listResp      []models.Alert
	listErr       error
	latestResp    models.Alert
	latestErr     error
	countResp     int
	countErr      error
	simulateResp  models.Alert
	simulateErr   error
	clearErr      error
	simulateCalls int
	clearCalls    int
}

func (m *mockAlerting) EvaluateReading(ctx context.Context, r models.Reading) (*models.Alert, error) {
	return nil, nil
}
func (m *mockAlerting) RaiseOffline(ctx context.Context, sensorID string, lastSeen time.Time) (models.Alert, error) {
	return models.Alert{}, nil
}
func (m *mockAlerting) Simulate(ctx context.Context) (models.Alert, error) {
	m.simulateCalls++
	return m.simulateResp, m.simulateErr
}
func (m *mockAlerting) List(ctx context.Context) ([]models.Alert, error) {
	return m.listResp, m.listErr
}
func (m *mockAlerting) Latest(ctx context.Context) (models.Alert, error) {
	return m.latestResp, m.latestErr
}
func (m *mockAlerting) Count(ctx context.Context) (int, error) {
	return m.countResp, m.countErr
}
func (m *mockAlerting) Clear(ctx context.Context) error {
	m.clearCalls++
	return m.clearErr
}

// notFoundErr is a shorthand for the repository's absence signal.
var notFoundErr = repository.ErrNotFound

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
