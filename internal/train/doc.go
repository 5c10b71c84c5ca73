// Package train simulates trains moving over the rail network. Every tick a
// train predicts the blocks ahead of it, follows the junctions chosen by the
// routing handlers and stops in front of blocked track.
package train
