package pathfinding

import (
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/railpath/internal/railloc"
	"github.com/specialistvlad/railpath/internal/track"
)

// ConnectionSnapshot is a Connection with its destination resolved to a
// display name.
type ConnectionSnapshot struct {
	Destination string
	Distance    int
	Direction   track.Direction
}

// NodeSnapshot is a detached copy of a node for reports and comparisons.
type NodeSnapshot struct {
	Location       railloc.Location
	Names          []string
	RailSwitchable bool
	Connections    []ConnectionSnapshot
}

// Snapshot copies the node and its outgoing connections.
func (n *Node) Snapshot() NodeSnapshot {
	s := NodeSnapshot{
		Location:       n.location,
		Names:          slices.Clone(n.names),
		RailSwitchable: n.railSwitchable,
	}
	for _, c := range n.neighbours {
		dest := "?"
		if d := n.world.graph.nodes[c.Destination]; d != nil {
			dest = d.DisplayName()
		}
		s.Connections = append(s.Connections, ConnectionSnapshot{
			Destination: dest,
			Distance:    c.Distance,
			Direction:   c.Direction,
		})
	}
	return s
}

// Equal compares two snapshots field by field.
func (s NodeSnapshot) Equal(o NodeSnapshot) bool {
	return s.Location == o.Location &&
		s.RailSwitchable == o.RailSwitchable &&
		slices.Equal(s.Names, o.Names) &&
		slices.Equal(s.Connections, o.Connections)
}

func (s NodeSnapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]", s.Location, strings.Join(s.Names, ", "))
	if s.RailSwitchable {
		b.WriteString(" switchable")
	}
	for _, c := range s.Connections {
		fmt.Fprintf(&b, "\n  -> %s %d %s", c.Destination, c.Distance, c.Direction)
	}
	return b.String()
}
