package destination

import (
	"testing"

	"github.com/specialistvlad/railpath/internal/testutil/railtest"
	"github.com/specialistvlad/railpath/internal/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDestination_CreatesNamedNodes(t *testing.T) {
	f := railtest.New(t, &Module{})
	f.Track(t, [2]int{0, 0}, [2]int{12, 0})
	f.Sign(t, "destination", 0, 0, track.Invalid, "west")
	f.Sign(t, "destination", 12, 0, track.Invalid, "east")

	f.Settle(t)

	west := f.World.Node("west")
	require.NotNil(t, west)
	assert.Equal(t, railtest.Loc(0, 64, 0), west.Location())
	assert.Equal(t, 12, west.FindConnection("east").Distance())
	assert.Equal(t, 12, f.World.Node("east").FindConnection("west").Distance())
}

func TestDestination_DuplicateNameIsRejected(t *testing.T) {
	f := railtest.New(t, &Module{})
	f.Track(t, [2]int{0, 0}, [2]int{12, 0})
	f.Sign(t, "destination", 0, 0, track.Invalid, "depot")
	f.Sign(t, "destination", 12, 0, track.Invalid, "depot")

	f.Settle(t)

	assert.Equal(t, railtest.Loc(0, 64, 0), f.World.Node("depot").Location())
	assert.NotNil(t, f.World.NodeAt(railtest.Loc(12, 64, 0)), "the node still exists, unnamed")
	assert.Contains(t, f.Logs.String(), "Destination name rejected")
}

func TestDestination_NotifiesArrivingTrain(t *testing.T) {
	f := railtest.New(t, &Module{})
	f.Track(t, [2]int{0, 0}, [2]int{12, 0})
	f.Sign(t, "destination", 12, 0, track.Invalid, "east")

	passing := &railtest.Train{Label: "t1", Dest: "west"}
	f.Predict(passing, track.Position{Location: railtest.Loc(12, 64, 0), Direction: track.East})
	assert.Empty(t, passing.Arrived)

	arriving := &railtest.Train{Label: "t2", Dest: "east"}
	f.Predict(arriving, track.Position{Location: railtest.Loc(12, 64, 0), Direction: track.East})
	assert.Equal(t, []string{"east"}, arriving.Arrived)
}
