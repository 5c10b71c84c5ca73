package pathfinding

import (
	"fmt"
	"math"
	"strings"
)

// SearchResult is one step of a shortest route. A result is either the
// self result (the search started at its destination), a chain link made of
// the first connection and the remaining route, or NotFound.
//
// Results are shared through the world's cache and must not be modified.
type SearchResult struct {
	destination NodeID
	conn        Connection
	next        *SearchResult
	distance    int
	found       bool
}

// NotFound is returned for unreachable or unknown destinations.
var NotFound = &SearchResult{distance: math.MaxInt}

func selfResult(id NodeID) *SearchResult {
	return &SearchResult{destination: id, found: true}
}

// Found reports whether a route exists.
func (r *SearchResult) Found() bool { return r.found }

// Distance is the total route length, or math.MaxInt when not found.
func (r *SearchResult) Distance() int { return r.distance }

// Destination is the node the route ends at.
func (r *SearchResult) Destination() NodeID { return r.destination }

// Connection returns the first edge of the route. It reports false for the
// self result and for NotFound.
func (r *SearchResult) Connection() (Connection, bool) {
	if r.next == nil {
		return Connection{}, false
	}
	return r.conn, true
}

// Next returns the remainder of the route after the first edge, or nil.
func (r *SearchResult) Next() *SearchResult { return r.next }

// Path returns the nodes visited after the source, ending at the
// destination.
func (r *SearchResult) Path() []NodeID {
	var out []NodeID
	for cur := r; cur.next != nil; cur = cur.next {
		out = append(out, cur.conn.Destination)
	}
	return out
}

// Hops returns every edge of the route in travel order.
func (r *SearchResult) Hops() []Connection {
	var out []Connection
	for cur := r; cur.next != nil; cur = cur.next {
		out = append(out, cur.conn)
	}
	return out
}

func (r *SearchResult) String() string {
	if !r.found {
		return "not found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d blocks", r.distance)
	for _, c := range r.Hops() {
		fmt.Fprintf(&b, " %s", c)
	}
	return b.String()
}

func (w *World) search(from, to *Node) *SearchResult {
	for _, n := range w.nodes {
		n.lastDistance = math.MaxInt
	}
	return w.relax(from, to, 0)
}

// relax returns the shortest route from cur to to found by this branch, or
// nil when the branch reaches nothing new.
func (w *World) relax(cur, to *Node, travelled int) *SearchResult {
	if cur == to {
		return selfResult(to.id)
	}
	if cur.lastDistance <= travelled {
		return nil
	}
	cur.lastDistance = travelled

	var best *SearchResult
	for _, c := range cur.neighbours {
		next := w.graph.nodes[c.Destination]
		if next == nil || next.world != w {
			continue
		}
		sub := w.relax(next, to, travelled+c.Distance)
		if sub == nil {
			continue
		}
		if total := c.Distance + sub.distance; best == nil || total < best.distance {
			best = &SearchResult{
				destination: to.id,
				conn:        c,
				next:        sub,
				distance:    total,
				found:       true,
			}
		}
	}
	return best
}
