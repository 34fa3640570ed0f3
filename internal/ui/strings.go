package ui

import "strings"

// truncate shortens a string to the given rune limit, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle keeps the start and end of a string, which suits file paths.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1 // room for the ellipsis rune
	prefix := keep / 3
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}

// clamp bounds v to [lo, hi]. hi < lo returns lo.
func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
