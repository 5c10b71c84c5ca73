// internal/railloc/doc.go

/*
Package railloc provides a structured, type-safe representation for rail
locations: a world name plus integer block coordinates.

The canonical string format is `world_x_y_z`, e.g. `overworld_10_64_-3`.
World names may themselves contain underscores; the last three segments are
always the coordinates.

This package centralizes all formatting and parsing of locations so that
node names, persisted graphs and configuration agree on a single form.
*/
package railloc
