// Package pathfinding implements the train routing graph.
//
// # Model
//
// A Graph owns one World per world name. A World indexes path Nodes by rail
// location and by name. Each Node owns its outgoing Connections, which are
// directed, distance-weighted edges discovered by walking the track outward
// from the node until another node, a blocker, or the end of the track is
// reached. Nodes live in an arena owned by the Graph and edges refer to their
// destination by NodeID, never by pointer.
//
// # Discovery
//
// Creating a node schedules one discovery work item per compass direction on
// the Graph's Provider. The Provider is driven by the host's tick loop: each
// call to Run steps queued items in FIFO order until a wall-clock budget is
// used up, then returns and resumes at the same item on the next tick. At
// every visited block the registered RoutingHandlers receive a RouteEvent and
// may create a node there or block the direction of travel.
//
// # Search
//
// FindRoute is a recursive relaxation from the source node. Every node's
// scratch distance is reset before a search and a branch is pruned when it
// reaches a node no faster than an earlier branch did. Results are cached
// per (source, destination) in the World and the whole cache is dropped on
// any topology change.
//
// # Prediction
//
// Moving trains use a Predictor per member. For every block they enter, the
// Predictor refreshes one reusable PredictEvent and hands it to each
// RoutingHandler, which may select a junction, impose a speed limit, or keep
// watching a block for a bounded distance ahead.
//
// # Threading
//
// Nothing in this package is safe for concurrent use. All mutation and all
// searches are expected on the host's single tick goroutine. The only value
// that may be read from other goroutines is Provider.IsProcessing.
package pathfinding
