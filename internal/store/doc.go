// Package store persists extraction runs in a local SQLite database.
//
// Every saved run records its summary statistics and the full set of joined
// records so that `stardate history` and `stardate show` can replay results
// without rereading the corpus. Writers take an advisory file lock first.
package store
