// Package ui provides the Bubble Tea terminal interface for wtd.
//
// Two views share one model: the filter editor and the recommendation
// list. The model never owns filter state. It renders the latest
// snapshot received from the state.Store subscription and routes every
// mutation back through the store, so a search started from the TUI and
// one started with -once see the same persisted filters.
//
// # Keys
//
//   - tab / shift+tab: switch between filters and results
//   - j/k, h/l: move between fields, adjust numbers
//   - space: toggle a flag, enter: edit a tag list
//   - s: search, t: fetch the estimated charge time
//   - x: expand result descriptions, R: reset filters
//   - T: cycle theme, ?: help, q: quit
//
// Long-running requests run as tea.Cmds and report back via messages;
// errors from the activities client are shown verbatim in the footer.
package ui
