// Package app wires configuration, logging, session storage, the filter
// store and the activities client together, then hands control to the UI.
//
// # Startup Sequence
//
//  1. Load ~/.config/wtd/config.toml (or the -config override)
//  2. Build the zap file logger
//  3. Open the session slot storage (memory, file or redis)
//  4. Load the filter store from the slot
//  5. Build the activities client
//  6. Run the Bubble Tea UI, or with Once a single search printed as JSON
//
// Any failure before the UI starts is returned wrapped with the step that
// failed, e.g. "load config: parse config: ...".
package app
