// Package preflight provides readiness checks for the filesystem paths and
// the episode list page that stardate depends on.
//
// The CLI "stardate status" command renders RunAll. "stardate extract" runs
// the corpus check on its own so that a missing script is reported with
// every absent episode instead of the first one the loader trips over.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
