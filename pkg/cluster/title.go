package cluster

import "strings"

const (
	titleKeepUnder = 50
	titleMaxRunes  = 60
)

// TopicTitle derives a single-line topic title from the founding item title.
// The part before the first colon is used; titles of 50 runes and more are cut to 60 runes and get an ellipsis.
func TopicTitle(itemTitle string) string {
	base, _, _ := strings.Cut(itemTitle, ":")
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		base = strings.Join(strings.Fields(itemTitle), " ")
	}

	runes := []rune(base)
	if len(runes) < titleKeepUnder {
		return base
	}
	if len(runes) > titleMaxRunes {
		runes = runes[:titleMaxRunes]
	}
	return strings.TrimSpace(string(runes)) + "..."
}
