package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"immunotrack/internal/models"
	"immunotrack/internal/repository"
	"immunotrack/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusAccepted = "accepted"

	errGetLatest       = "failed to load latest reading"
	errGetAll          = "failed to load readings"
	errGetCount        = "failed to count readings"
	errNoReadings      = "no readings recorded yet"
	errInvalidBodyPref = "invalid body: "
)

// Accepted timestamp layouts. Naive timestamps (no zone) are treated as UTC.
const layoutNaive = "2006-01-02T15:04:05.999999999"

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for submitting a reading. Temperature is a pointer so that a
// legitimate 0.0 passes the required binding.
type readingRequest struct {
	SensorID    string   `json:"sensor_id" binding:"required"`
	Temperature *float64 `json:"temperature" binding:"required"`
	Timestamp   string   `json:"timestamp" binding:"required"`
}

// SubmitReadingRequest is an exported model for Swagger docs of the reading payload.
type SubmitReadingRequest struct {
	// Sensor identifier
	SensorID string `json:"sensor_id" example:"sensor-001"`
	// Measured temperature in Celsius
	Temperature float64 `json:"temperature" example:"4.5"`
	// Measurement instant (RFC3339; naive timestamps are treated as UTC)
	Timestamp string `json:"timestamp" example:"2026-08-26T12:00:00Z"`
}

// parseTimestamp accepts RFC3339 (with optional fractional seconds) and
// zone-less ISO timestamps as emitted by simple sensor firmware.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(layoutNaive, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339 (e.g. 2026-08-26T12:00:00Z)", s)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, data_count"
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	n, err := h.services.Telemetry.Count(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetCount, "health_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     statusOK,
		"data_count": n,
	})
}

// @Summary      Submit a temperature reading
// @Tags         temperature
// @Accept       json
// @Produce      json
// @Param        body  body   SubmitReadingRequest  true  "Reading payload"
// @Success      200   {object}  map[string]interface{}  "status, reading"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/temperature [post]
func (h *Handler) submitReading(c *gin.Context) {
	var req readingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	ts, err := parseTimestamp(req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	accepted, err := h.services.Telemetry.SubmitReading(ctx, models.Reading{
		SensorID:    req.SensorID,
		Temperature: *req.Temperature,
		Timestamp:   ts,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to accept reading", "submit_reading_failed", err, "sensor_id", req.SensorID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  statusAccepted,
		"reading": accepted,
	})
}

// @Summary      Latest reading
// @Tags         temperature
// @Produce      json
// @Success      200  {object}  models.Reading
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/temperature/latest [get]
func (h *Handler) getLatestReading(c *gin.Context) {
	r, err := h.services.Telemetry.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNoReadings})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetLatest, "latest_reading_failed", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      All readings
// @Tags         temperature
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, readings"
// @Router       /api/v1/temperature/all [get]
func (h *Handler) getAllReadings(c *gin.Context) {
	readings, err := h.services.Telemetry.All(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetAll, "all_readings_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

// @Summary      Reading count
// @Tags         temperature
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/v1/temperature/count [get]
func (h *Handler) getReadingCount(c *gin.Context) {
	n, err := h.services.Telemetry.Count(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetCount, "reading_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
