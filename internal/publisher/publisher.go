package publisher

import (
	"context"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"immunotrack/internal/logger"
	"immunotrack/internal/models"
)

// CycleState tracks one publish cycle through the retry state machine.
// A cycle ends in exactly one of Skipped, Delivered, or Abandoned.
type CycleState int

const (
	StateProbing CycleState = iota
	StateSending
	StateRetrying
	StateDelivered
	StateAbandoned
	StateSkipped
)

func (s CycleState) String() string {
	switch s {
	case StateProbing:
		return "PROBING"
	case StateSending:
		return "SENDING"
	case StateRetrying:
		return "RETRYING"
	case StateDelivered:
		return "DELIVERED"
	case StateAbandoned:
		return "ABANDONED"
	case StateSkipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Stats is a snapshot of the loop's delivery counters.
type Stats struct {
	Delivered uint64
	Abandoned uint64
	Skipped   uint64
	Attempts  uint64
}

// Publisher generates synthetic readings on a fixed cadence and pushes them
// to the collector with bounded resilience: a health probe before each send
// and up to Retries attempts per reading. A reading abandoned after the last
// attempt is lost, never queued for resend.
type Publisher struct {
	cfg       Config
	transport Transport
	log       *logger.Logger
	rng       *rand.Rand // used only from the Run goroutine

	delivered atomic.Uint64
	abandoned atomic.Uint64
	skipped   atomic.Uint64
	attempts  atomic.Uint64
}

// New validates cfg and builds a publisher over the given transport.
func New(cfg Config, transport Transport, log *logger.Logger) (*Publisher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Publisher{
		cfg:       cfg,
		transport: transport,
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Stats returns a consistent snapshot of the delivery counters.
func (p *Publisher) Stats() Stats {
	return Stats{
		Delivered: p.delivered.Load(),
		Abandoned: p.abandoned.Load(),
		Skipped:   p.skipped.Load(),
		Attempts:  p.attempts.Load(),
	}
}

// Run executes publish cycles until ctx is canceled. The ticker measures the
// interval from cycle start to cycle start, so probing and retries shorten
// the idle gap but never compound drift. Cancellation takes effect at the
// next suspension point, never mid-send.
func (p *Publisher) Run(ctx context.Context) {
	t := time.NewTicker(p.cfg.Interval)
	defer t.Stop()

	p.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			p.cycle(ctx)
		}
	}
}

// cycle runs one pass of the state machine: generate, probe, then send with
// bounded retry. Returns the terminal state for the cycle.
func (p *Publisher) cycle(ctx context.Context) CycleState {
	r := p.generate()

	probeCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
	err := p.transport.Probe(probeCtx)
	cancel()
	if err != nil {
		// Probe failure skips the whole cycle; no retry is consumed.
		p.skipped.Add(1)
		if p.log != nil {
			p.log.Warnw("probe_failed", "state", StateProbing.String(), "err", err)
		}
		return StateSkipped
	}

	state := StateSending
	for attempt := 1; attempt <= p.cfg.Retries; attempt++ {
		if attempt > 1 {
			state = StateRetrying
		}
		p.attempts.Add(1)

		sendCtx, cancel := context.WithTimeout(ctx, p.cfg.AttemptTimeout)
		err = p.transport.Send(sendCtx, r)
		cancel()
		if err == nil {
			p.delivered.Add(1)
			if p.log != nil {
				p.log.Infow("reading_delivered",
					"sensor_id", r.SensorID, "temperature", r.Temperature, "attempt", attempt)
			}
			return StateDelivered
		}

		if p.log != nil {
			p.log.Warnw("send_failed", "state", state.String(), "attempt", attempt, "err", err)
		}
		if ctx.Err() != nil {
			break // shutting down; do not burn the remaining attempts
		}
	}

	p.abandoned.Add(1)
	if p.log != nil {
		p.log.Errorw("delivery_abandoned",
			"sensor_id", r.SensorID, "temperature", r.Temperature, "retries", p.cfg.Retries)
	}
	return StateAbandoned
}

// generate draws a temperature uniformly from the safe-range envelope,
// rounded to two decimals, stamped with the sensor id and the current instant.
func (p *Publisher) generate() models.Reading {
	span := p.cfg.SafeMaxC - p.cfg.SafeMinC
	temp := p.cfg.SafeMinC + p.rng.Float64()*span
	temp = math.Round(temp*100) / 100
	return models.Reading{
		SensorID:    p.cfg.SensorID,
		Temperature: temp,
		Timestamp:   time.Now().UTC(),
	}
}
