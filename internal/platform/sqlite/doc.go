// Package sqlite provides the SQLite-backed implementation of the store
// interfaces. A single embedded database file holds every learner's mastery
// records, namespaced by the learner column, which mirrors the per-learner
// keyed storage the practice surfaces were built against.
package sqlite
