// Package app contains the core application logic. It wires a loaded layout
// into a routing graph, persistence, trains and the tick loop, and owns the
// run and shutdown lifecycle, decoupled from any specific entrypoint like a
// CLI or server.
package app
