// Package registry provides the central "glue" for the module system.
//
// The Registry is responsible for storing mappings between the sign types
// used in layouts (e.g., "destination") and the compiled Go actions that
// implement them. Modules add their actions through the Module interface.
//
// During application startup, the registry is populated and then validated
// against the loaded layout to ensure that every sign placed on the track has
// a matching action, preventing a wide class of runtime surprises.
package registry
