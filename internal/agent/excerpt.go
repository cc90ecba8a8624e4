package agent

import "unicode/utf8"

// ExcerptLimit is the character budget for raw-result fallbacks shown when
// no strategy produced a Summary.
const ExcerptLimit = 800

// Excerpt returns raw as text bounded to limit characters, appending an
// ellipsis marker when truncated. Cuts land on rune boundaries.
func Excerpt(raw []byte, limit int) string {
	if limit <= 0 {
		limit = ExcerptLimit
	}
	if utf8.RuneCount(raw) <= limit {
		return string(raw)
	}
	runes := []rune(string(raw))
	return string(runes[:limit]) + "…"
}
