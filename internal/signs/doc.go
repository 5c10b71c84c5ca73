// Package signs attaches track-side behavior to rail blocks.
//
// A Board holds the signs of one world. The Handler is registered on a
// pathfinding.Graph as a RoutingHandler: for every block visited during
// discovery or prediction it looks up the signs placed there and hands them
// to the Action registered for their type.
package signs
