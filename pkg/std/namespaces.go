package std

import "strings"

// DefaultPrefix is the namespace prefix whose using directives sort first
const DefaultPrefix = "System"

// IsStandardNamespace reports whether name starts with the standard prefix.
// The match is textual: "SystemX" counts as well as "System.IO".
func IsStandardNamespace(name, prefix string) bool {
	return prefix != "" && strings.HasPrefix(name, prefix)
}

// SortKey returns the ordinal comparison key for a namespace name. The
// standard prefix is stripped so that "System" becomes "" and "System.IO"
// becomes ".IO", both of which order before any letter.
func SortKey(name, prefix string) string {
	if IsStandardNamespace(name, prefix) {
		return name[len(prefix):]
	}
	return name
}
