// Package main hosts the stardate CLI entrypoint and command graph.
//
// The Cobra-based command tree loads configuration once, builds a logger from
// it, and hands off to the internal packages: corpus loading, extraction,
// title scraping, reporting and the run store. Commands only parse flags and
// choose an output format; anything reusable belongs under internal/.
package main
