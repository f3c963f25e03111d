// Package refresh schedules background re-fetches and keeps superseded
// results from overwriting newer state.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Poller runs fn every interval and on demand. A run is skipped while the
// previous one is still in flight.
type Poller struct {
	name     string
	interval time.Duration
	fn       func(context.Context) error

	inFlight atomic.Bool
	trigger  chan struct{}
	runs     atomic.Int64
	skips    atomic.Int64
}

const fallbackInterval = time.Minute

func NewPoller(name string, interval time.Duration, fn func(context.Context) error) *Poller {
	if interval <= 0 {
		log.Warn().Str("poller", name).Dur("interval", interval).Msg("non-positive interval, using fallback")
		interval = fallbackInterval
	}
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
		trigger:  make(chan struct{}, 1),
	}
}

// Run fires once immediately, then on every tick or Trigger until ctx is
// done. It returns after the last in-flight run has finished.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	log.Info().Str("poller", p.name).Dur("interval", p.interval).Msg("poller started")
	p.fire(ctx, &wg)
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("poller", p.name).Msg("poller stopped")
			return
		case <-ticker.C:
			p.fire(ctx, &wg)
		case <-p.trigger:
			p.fire(ctx, &wg)
		}
	}
}

// Trigger asks for an immediate run. Requests made while one is already
// pending collapse into it.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// Runs and Skips report how many fires started fn and how many were dropped
// because a run was in flight.
func (p *Poller) Runs() int64  { return p.runs.Load() }
func (p *Poller) Skips() int64 { return p.skips.Load() }

func (p *Poller) fire(ctx context.Context, wg *sync.WaitGroup) {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.skips.Add(1)
		log.Debug().Str("poller", p.name).Msg("previous refresh still running, skipping")
		return
	}
	p.runs.Add(1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer p.inFlight.Store(false)

		start := time.Now()
		if err := p.fn(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("poller", p.name).Msg("refresh failed")
			return
		}
		log.Debug().Str("poller", p.name).Dur("took", time.Since(start)).Msg("refreshed")
	}()
}
