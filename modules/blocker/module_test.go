package blocker

import (
	"testing"

	"github.com/specialistvlad/railpath/internal/pathfinding"
	"github.com/specialistvlad/railpath/internal/testutil/railtest"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/specialistvlad/railpath/modules/destination"
	"github.com/stretchr/testify/assert"
)

func TestBlocker_OneWayTrack(t *testing.T) {
	f := railtest.New(t, &Module{}, &destination.Module{})
	f.Track(t, [2]int{0, 0}, [2]int{12, 0})
	f.Sign(t, "destination", 0, 0, track.Invalid, "west")
	f.Sign(t, "destination", 12, 0, track.Invalid, "east")
	f.Sign(t, "blocker", 6, 0, track.West)

	f.Settle(t)

	assert.Equal(t, 12, f.World.Node("west").FindConnection("east").Distance())
	assert.Same(t, pathfinding.NotFound, f.World.Node("east").FindConnection("west"))
}

func TestBlocker_StopsTrains(t *testing.T) {
	f := railtest.New(t, &Module{})
	f.Track(t, [2]int{0, 0}, [2]int{12, 0})
	f.Sign(t, "blocker", 6, 0, track.West)
	train := &railtest.Train{Label: "t1"}

	ev := f.Predict(train, track.Position{Location: railtest.Loc(6, 64, 0), Direction: track.West})
	assert.True(t, ev.Blocked())
	assert.Equal(t, 0.0, ev.SpeedLimit())

	ev = f.Predict(train, track.Position{Location: railtest.Loc(6, 64, 0), Direction: track.East})
	assert.False(t, ev.Blocked())
	assert.False(t, ev.HasSpeedLimit())
}
