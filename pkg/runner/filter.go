package runner

import (
	"regexp"
	"strings"
)

// matchesFilter reports whether name is admitted by pattern. pattern is
// first compiled as a case-insensitive regular expression; if that fails
// to compile, it falls back to a literal, case-sensitive substring match.
// invert XORs the result, matching the reference validator's matchesFilter.
func matchesFilter(name, pattern string, invert bool) bool {
	if pattern == "" {
		return true
	}

	var matched bool
	if re, err := regexp.Compile("(?i)" + pattern); err == nil {
		matched = re.MatchString(name)
	} else {
		matched = strings.Contains(name, pattern)
	}
	return matched != invert
}
