package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/specialistvlad/railpath/internal/ctxlog"
)

// TickLoop is the reference implementation of the Scheduler interface.
type TickLoop struct {
	clock    clock.Clock
	interval time.Duration
	maxTicks uint64
	tasks    []Task
	observe  func(time.Duration)
	ticks    atomic.Uint64
}

// New creates a tick loop firing every interval. A maxTicks of zero runs
// until the context is cancelled.
func New(clk clock.Clock, interval time.Duration, maxTicks int, tasks ...Task) *TickLoop {
	if clk == nil {
		clk = clock.New()
	}
	if maxTicks < 0 {
		maxTicks = 0
	}
	return &TickLoop{
		clock:    clk,
		interval: interval,
		maxTicks: uint64(maxTicks),
		tasks:    tasks,
	}
}

// Add appends a task. It must not be called while Run is active.
func (l *TickLoop) Add(t Task) { l.tasks = append(l.tasks, t) }

// Observe installs fn to receive the duration of every tick.
func (l *TickLoop) Observe(fn func(time.Duration)) { l.observe = fn }

// Ticks implements the Scheduler interface.
func (l *TickLoop) Ticks() uint64 { return l.ticks.Load() }

// Run implements the Scheduler interface.
func (l *TickLoop) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Tick loop started.", "interval", l.interval, "max_ticks", l.maxTicks, "tasks", len(l.tasks))

	ticker := l.clock.Ticker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Tick loop cancelled.", "ticks", l.ticks.Load())
			return nil
		case <-ticker.C:
		}

		started := l.clock.Now()
		n := l.ticks.Add(1)
		tickCtx := ctxlog.With(ctx, "tick", n)
		for _, t := range l.tasks {
			t.Tick(tickCtx, n)
		}
		if l.observe != nil {
			l.observe(l.clock.Since(started))
		}

		if l.maxTicks > 0 && n >= l.maxTicks {
			logger.Debug("Tick limit reached.", "ticks", n)
			return nil
		}
	}
}
