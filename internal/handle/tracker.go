package handle

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Tracker counts the tables the host still holds so shutdown can wait for
// them. A nil *Tracker is valid and tracks nothing.
type Tracker struct {
	mu   sync.Mutex
	live int
	// closed whenever live is zero
	idle chan struct{}

	gauge prometheus.Gauge
	calls *prometheus.CounterVec
}

func NewTracker() *Tracker {
	idle := make(chan struct{})
	close(idle)
	return &Tracker{idle: idle}
}

// Instrument reports live handles to gauge and counts engine calls per
// family in calls, labelled by family name. Either may be nil.
func (t *Tracker) Instrument(gauge prometheus.Gauge, calls *prometheus.CounterVec) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gauge = gauge
	t.calls = calls
	if gauge != nil {
		gauge.Set(float64(t.live))
	}
}

// Live is the number of tables currently held.
func (t *Tracker) Live() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

// Wait blocks until no table is held or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	idle := t.idle
	t.mu.Unlock()
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Tracker) add() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.live == 0 {
		t.idle = make(chan struct{})
	}
	t.live++
	if t.gauge != nil {
		t.gauge.Inc()
	}
}

func (t *Tracker) done() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live--
	if t.live == 0 {
		close(t.idle)
	}
	if t.gauge != nil {
		t.gauge.Dec()
	}
}

func (t *Tracker) observe(family string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	calls := t.calls
	t.mu.Unlock()
	if calls != nil {
		calls.WithLabelValues(family).Inc()
	}
}
