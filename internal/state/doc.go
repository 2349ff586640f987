// Package state holds the activity search and filter state for wtd.
//
// # Overview
//
// The Store is the single place the UI reads and writes the user's search
// criteria and the last recommendation results. Every change is mirrored
// into a session slot (see package session) so the state survives restarts
// within a session.
//
// # Core Types
//
// FilterState:
//   - IsExpandedSearch: UI toggle for the expanded search panel
//   - Recommendations: last results, replaced wholesale on each search
//   - HasSearched: set once a search was attempted
//   - Filters: charge/travel minutes, eco and transit flags, party size,
//     category/purpose tags and a free-text preference
//
// Store:
//   - Snapshot(): deep copy of the current state
//   - Update(ctx, fn): mutate, then persist the whole record
//   - Reset(ctx): restore defaults and delete the slot
//
// # Persistence
//
// Update serializes the entire state as JSON and overwrites the slot
// synchronously, under the write lock, so the slot always matches one
// consistent state. There is no diffing or debouncing.
//
// Reset writes nothing: it removes the slot, and a raw read of the slot
// returns "absent" until the next Update.
//
//	store.Update(ctx, func(s *state.FilterState) { s.Filters.Personnel = 3 })
//	→ slot = {"isExpandedSearch":false,...,"filters":{...,"personnel":3,...}}
//
//	store.Reset(ctx)
//	→ state = DefaultState(), slot absent
//
// # Loading
//
// NewStore reads the slot once:
//
//   - absent: DefaultState()
//   - not a JSON object: DefaultState(), with a warning logged
//   - otherwise: each known field is decoded over the defaults on its own;
//     a field that is missing, null, mistyped or invalid (personnel < 1,
//     negative minutes, empty tags) keeps its default. Unknown keys are
//     dropped, so the shape of FilterState never drifts.
//
// Storage I/O errors are returned rather than masked.
//
// # Concurrency Model
//
// Store uses a readers-writer lock. Subscribe offers a latest-value channel
// per subscriber; a slow subscriber misses intermediate states but always
// sees the newest one.
package state
