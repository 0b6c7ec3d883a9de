// Package corpus reads the episode script corpus from disk.
//
// Scripts live one file per episode under the configured scripts directory.
// Files are decoded from the configured character encoding, split into lines
// with carriage returns removed, and returned ordered by episode. A missing
// script is an input contract violation: extraction never runs on a partial
// corpus.
package corpus
