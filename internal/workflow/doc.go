// Package workflow drives the multi-step, user-driven sequence that turns a
// search query into a newly persisted catalog record.
//
// The add flow is an explicit state machine (credential, searching,
// selecting, resolving) rather than nested dialog callbacks. User
// interaction happens through the Prompter interface, metadata lookups
// through tmdb.Searcher, and persistence through the Catalog interface, so
// the flow is fully testable without a terminal or network.
//
// Every failure is handled where it occurs: lookup failures keep the flow in
// its current state for a retry, duplicate titles terminate without mutating
// the catalog, and dismissing any prompt aborts cleanly with no partial
// writes.
package workflow
