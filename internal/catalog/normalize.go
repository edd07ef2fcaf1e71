package catalog

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize prepares a string for case-insensitive matching:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single spaces
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// SplitPath turns "Education/Programming" into its segments.
// Empty segments are dropped, so "", "/" and " / " all mean the root.
func SplitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPath is the inverse of SplitPath.
func JoinPath(path []string) string {
	return strings.Join(path, "/")
}

// ParseDuration parses clock-style durations: "ss", "m:ss" or "h:mm:ss".
// Anything else (including "Unknown") is an error.
func ParseDuration(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, strconv.ErrSyntax
	}
	var total int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, err
		}
		if n < 0 || (i > 0 && n >= 60) {
			return 0, strconv.ErrRange
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, nil
}
