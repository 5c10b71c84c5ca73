package pathfinding

import "errors"

var (
	// ErrNameInUse is returned when a name is already bound to another node
	// of the same world.
	ErrNameInUse = errors.New("pathfinding: name is bound to another node")

	// ErrInvalidName is returned for names that are empty, too long or span
	// several lines.
	ErrInvalidName = errors.New("pathfinding: invalid node name")

	// ErrInvalidEdge is returned by AddNeighbour for edges that cannot be
	// part of a world: self edges, edges into another world or to a removed
	// node, and negative distances.
	ErrInvalidEdge = errors.New("pathfinding: invalid edge")

	// ErrUnknownWorld is returned when a location refers to a world that was
	// never added to the graph.
	ErrUnknownWorld = errors.New("pathfinding: unknown world")

	// ErrCorruptGraph is returned when persisted graph data is truncated or
	// inconsistent. The graph is left untouched when it is returned.
	ErrCorruptGraph = errors.New("pathfinding: corrupt graph data")
)
