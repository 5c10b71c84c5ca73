// Package scheduler provides the host tick loop. It calls every registered
// Task once per tick at a fixed rate, on a single goroutine, so that tasks
// may share state without locking.
package scheduler
