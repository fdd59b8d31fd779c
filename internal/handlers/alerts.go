package handlers

import (
	"errors"
	"net/http"

	"immunotrack/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	statusCleared = "cleared"

	errListAlerts    = "failed to load alerts"
	errLatestAlert   = "failed to load latest alert"
	errAlertCount    = "failed to count alerts"
	errSimulateAlert = "failed to simulate alert"
	errClearAlerts   = "failed to clear alerts"
	errNoAlerts      = "no alerts recorded yet"
)

// @Summary      List alerts
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, alerts"
// @Router       /api/v1/alerts [get]
func (h *Handler) listAlerts(c *gin.Context) {
	alerts, err := h.services.Alerting.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListAlerts, "list_alerts_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

// @Summary      Latest alert
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  models.Alert
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/alerts/latest [get]
func (h *Handler) getLatestAlert(c *gin.Context) {
	a, err := h.services.Alerting.Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errNoAlerts})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errLatestAlert, "latest_alert_failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary      Alert count
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/v1/alerts/count [get]
func (h *Handler) getAlertCount(c *gin.Context) {
	n, err := h.services.Alerting.Count(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errAlertCount, "alert_count_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// @Summary      Simulate an alert
// @Description  Manual trigger for operational testing of the notification path; no reading is created.
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  models.Alert
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alerts/simulate [post]
func (h *Handler) simulateAlert(c *gin.Context) {
	a, err := h.services.Alerting.Simulate(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSimulateAlert, "simulate_alert_failed", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// @Summary      Clear alerts
// @Description  Empties the alert log. Readings are never touched.
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/alerts [delete]
func (h *Handler) clearAlerts(c *gin.Context) {
	if err := h.services.Alerting.Clear(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errClearAlerts, "clear_alerts_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusCleared})
}
