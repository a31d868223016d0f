// Package catalog persists the movie collection in SQLite and owns its
// invariants: title uniqueness and the derived rating-based ranking.
//
// The Store manages the database connection, schema initialization, and a
// single-instance lock so exactly one process mutates the catalog at a time.
// Ranking is not independent data; ListRanked recomputes it as the 1-based
// position of each record ordered by rating descending (insertion order on
// ties) and persists the assignments before returning.
//
// Treat this package as the single source of truth for catalog semantics;
// schema changes bump schemaVersion in schema.go.
package catalog
