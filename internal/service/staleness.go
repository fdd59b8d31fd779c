package service

import (
	"context"
	"time"

	"immunotrack/internal/logger"
	"immunotrack/internal/repository"
)

// DefaultStaleAfter is the maximum allowed gap since a sensor's last
// accepted reading before it is considered offline.
const DefaultStaleAfter = 5 * time.Minute

// StalenessService periodically sweeps the reading log's per-sensor
// last-seen times and raises SENSOR_OFFLINE alerts. One alert is raised per
// offline episode; a fresh reading re-arms the sensor.
type StalenessService struct {
	readings   repository.ReadingRepo
	alerts     Alerting
	staleAfter time.Duration
	log        *logger.Logger
	offline    map[string]bool // touched only by the Run goroutine
	now        func() time.Time
}

func NewStalenessService(readings repository.ReadingRepo, alerts Alerting, staleAfter time.Duration, log *logger.Logger) *StalenessService {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &StalenessService{
		readings:   readings,
		alerts:     alerts,
		staleAfter: staleAfter,
		log:        log,
		offline:    make(map[string]bool),
		now:        time.Now,
	}
}

// Run ticks at the given interval until ctx is canceled.
func (s *StalenessService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			s.sweep(ctx, now.UTC())
		}
	}
}

// sweep flags sensors whose last reading is older than the threshold and
// re-arms sensors that have reported again.
func (s *StalenessService) sweep(ctx context.Context, now time.Time) {
	seen, err := s.readings.LastSeen(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("staleness_sweep_failed", "err", err)
		}
		return
	}
	for sensorID, last := range seen {
		stale := now.Sub(last) > s.staleAfter
		switch {
		case stale && !s.offline[sensorID]:
			s.offline[sensorID] = true
			if _, err := s.alerts.RaiseOffline(ctx, sensorID, last); err != nil && s.log != nil {
				s.log.Errorw("offline_alert_failed", "sensor_id", sensorID, "err", err)
			}
		case !stale && s.offline[sensorID]:
			delete(s.offline, sensorID)
		}
	}
}
