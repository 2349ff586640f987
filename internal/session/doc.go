// Package session provides session-scoped slot storage for wtd.
//
// A slot is a named byte blob that lives for one session. The Filter Store
// keeps its serialized state in a single slot and rewrites it on every
// mutation, so backends only need whole-value Get/Set/Remove.
//
// # Backends
//
//   - memory: in-process cache (github.com/patrickmn/go-cache); the session
//     ends with the process or after the TTL, whichever comes first
//   - file: one file per slot under <dir>/<session-id>/, written atomically
//   - redis: keys wtd:<session-id>:<slot> with a TTL refreshed on every write
//
// Open picks a backend from Options. An empty session ID gets a random
// UUID, which makes every run a fresh session unless the caller pins one.
package session
