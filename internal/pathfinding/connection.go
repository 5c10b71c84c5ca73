package pathfinding

import (
	"fmt"

	"github.com/specialistvlad/railpath/internal/track"
)

// NodeID is the stable handle of a node inside its Graph.
type NodeID uint32

// Connection is a directed edge to Destination. It is immutable: a shorter
// edge to the same destination replaces it rather than modifying it.
type Connection struct {
	Destination NodeID
	// Distance is the number of rail blocks walked to reach the destination.
	Distance int
	// Direction is the travel direction when leaving the source node.
	Direction track.Direction
}

func (c Connection) String() string {
	return fmt.Sprintf("->#%d (%d blocks, %s)", c.Destination, c.Distance, c.Direction)
}
