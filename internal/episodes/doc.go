// Package episodes supplies the episode number to title mapping that the
// extractor joins against.
//
// Titles come from a public episode list page. Client fetches the page and
// ParseTitles selects one element per episode with a CSS selector, numbering
// them in document order. Cache keeps the last successful scrape on disk so
// reruns do not touch the network, and Resolver ties the two together.
package episodes
