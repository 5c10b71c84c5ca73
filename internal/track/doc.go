// Package track describes the physical rail network as seen by the routing
// engine: compass directions, positions, and the Walker contract used to
// enumerate successive rail blocks from a start position.
//
// The Grid type is an in-memory Network built from straight track segments.
// It is deliberately simple: no slopes or curves, only block-to-block steps
// along the eight horizontal compass directions plus up and down. Blocks
// where several segments meet become junctions.
package track
