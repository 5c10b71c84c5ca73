package module_contract_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/railpath/internal/app"
	"github.com/specialistvlad/railpath/internal/registry"
	"github.com/specialistvlad/railpath/internal/signs"
	"github.com/specialistvlad/railpath/internal/testutil"
	"github.com/specialistvlad/railpath/modules/destination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingModule registers a "counter" sign that records every train passing
// it and every discovery walk crossing it.
type countingModule struct {
	routed    atomic.Int64
	predicted atomic.Int64
	trains    []string
}

func (m *countingModule) Register(r *registry.Registry) {
	r.RegisterAction("counter", &registry.RegisteredAction{
		Description: "Counts passing trains.",
		MaxArgs:     -1,
		OnRoute: func(ev *signs.RoutingEvent) {
			m.routed.Add(1)
		},
		OnPredict: func(ev *signs.PredictingEvent) {
			m.predicted.Add(1)
			if g := ev.Group(); g != nil {
				m.trains = append(m.trains, g.Name())
			}
		},
	})
}

// TestCustomSign_RunsAsPureGo validates that a sign type implemented only in
// Go takes part in discovery and prediction like the built-in ones.
func TestCustomSign_RunsAsPureGo(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	layout := testutil.LineLayout + `
		world "main" {
			sign "counter" {
				at   = [5, 64, 0]
				args = ["any", "number", "of", "args"]
			}
		}
	`
	counter := &countingModule{}
	testApp, _ := app.SetupAppTest(t, layout, nil,
		app.WithModules(&destination.Module{}, counter))

	// --- Act ---
	err := testApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, int64(1), counter.predicted.Load(), "the train passes the sign once")
	assert.Equal(t, []string{"t1"}, counter.trains)
	// Processed once at startup and crossed by the walk from each end.
	assert.Equal(t, int64(3), counter.routed.Load())
}
