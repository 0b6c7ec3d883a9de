package stardate

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// sentinels are double-decimal artifacts the pattern picks up from dialogue
// punctuation in the corpus. They are excluded by name, not by a general rule.
var sentinels = map[string]struct{}{
	"41148..": {},
	"40052..": {},
	"37650..": {},
}

// Sentinels lists the excluded match strings in sorted order.
func Sentinels() []string {
	out := make([]string, 0, len(sentinels))
	for s := range sentinels {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// IsSentinel reports whether raw is one of the known malformed matches.
func IsSentinel(raw string) bool {
	_, ok := sentinels[raw]
	return ok
}

// ParseStardate converts a stripped match into a stardate. Sentinels and
// strings that do not parse as a float report ok == false; neither is an error.
func ParseStardate(raw string) (float64, bool) {
	if IsSentinel(raw) {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// FormatStardate renders a stardate in its canonical string form: the
// shortest representation that round-trips, always carrying a fractional part
// ("41148.0", not "41148"), switching to exponent notation for very small or
// very large magnitudes.
func FormatStardate(value float64) string {
	abs := math.Abs(value)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(value, 'e', -1, 64)
	}
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// decimalDigitIndex is the position of the digit after the point in a
// DDDDD.D stardate.
const decimalDigitIndex = 6

// DecimalDigit returns the seventh character of the canonical form parsed as
// an integer. Anything that prevents that (short form, a non-digit in that
// position) yields 0.
func DecimalDigit(value float64) int {
	s := FormatStardate(value)
	if len(s) <= decimalDigitIndex {
		return 0
	}
	digit, err := strconv.Atoi(s[decimalDigitIndex : decimalDigitIndex+1])
	if err != nil {
		return 0
	}
	return digit
}
