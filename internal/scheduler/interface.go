// Package scheduler provides the fixed-rate tick loop that drives the
// routing engine.
//
// # Why Scheduler Exists
//
// The routing graph is not safe for concurrent use. Discovery, train
// movement and persistence all mutate it, so they must run one after the
// other on a single goroutine. The scheduler is that goroutine: it wakes up
// once per tick interval and runs every task in registration order.
//
// This provides several key benefits:
//   - **Bounded Latency:** discovery works within a per-tick budget, so a large walk never stalls train movement
//   - **No Locking:** tasks share the graph freely because they never run concurrently
//   - **Testability:** the loop runs on a `clock.Clock`, so tests drive it with a mock clock
//
// # How It Works
//
// The scheduler follows a simple cycle:
//  1. Wait for the next tick or for the context to be cancelled
//  2. Run every task with the tick number
//  3. Report the tick duration to the observer, if any
//  4. Stop after MaxTicks ticks when a limit is set
package scheduler

import "context"

// Task is one unit of per-tick work.
type Task interface {
	// Tick is called once per tick with the 1-based tick number.
	Tick(ctx context.Context, tick uint64)
}

// TaskFunc adapts a function to Task.
type TaskFunc func(ctx context.Context, tick uint64)

// Tick implements Task.
func (f TaskFunc) Tick(ctx context.Context, tick uint64) { f(ctx, tick) }

// Scheduler runs tasks at a fixed rate.
type Scheduler interface {
	// Run blocks until ctx is cancelled or the tick limit is reached. A
	// cancelled context is a normal shutdown and yields a nil error.
	Run(ctx context.Context) error

	// Ticks returns the number of ticks run so far. It is safe to call from
	// any goroutine.
	Ticks() uint64
}
