package stardate

import "regexp"

// matchPattern is case sensitive: only the lowercase word "date" (usually the
// tail of "stardate") anchors a match. Numbers not introduced by it are missed
// on purpose so that arbitrary figures in dialogue never leak in.
var matchPattern = regexp.MustCompile(`date\s[0-9.]{7}`)

// matchPrefixLen covers the word plus its single whitespace byte. RE2's \s only
// matches ASCII whitespace, so the prefix is always five bytes.
const matchPrefixLen = len("date ")

// ExtractMatches returns every stardate-shaped match in lines, in line order
// and left-to-right within a line.
func ExtractMatches(lines []string) []string {
	var matches []string
	for _, line := range lines {
		matches = append(matches, matchPattern.FindAllString(line, -1)...)
	}
	return matches
}

// StripPrefix removes the leading word and whitespace from a match, leaving
// the seven character numeric candidate.
func StripPrefix(match string) string {
	if len(match) <= matchPrefixLen {
		return ""
	}
	return match[matchPrefixLen:]
}
