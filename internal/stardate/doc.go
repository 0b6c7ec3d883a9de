// Package stardate turns raw episode scripts into cleaned stardate records.
//
// The Extractor scans every script line for the literal word "date" followed by
// a single whitespace character and a seven character run of digits and
// decimal points, flattens the matches into one row per match, assigns the
// season from a fixed episode partition, rejects known malformed matches, and
// derives the digit after the decimal point. Malformed matches are dropped and
// counted; only structural input problems (unknown episodes, duplicate or
// missing scripts) surface as errors wrapping ErrInputContract.
//
// Join attaches scraped episode titles with left-join semantics so that no
// record is ever lost for want of a title.
package stardate
