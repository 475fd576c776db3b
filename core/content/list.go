package content

import "strings"

// FormatList turns a bullet-list block into items. Empty lines are dropped;
// the exact marker and the whitespace following it are stripped from each line.
func FormatList(block string) []ListItem {
	lines := strings.Split(block, "\n")
	items := make([]ListItem, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		items = append(items, ListItem{Spans: Tokenize(stripListMarker(line))})
	}
	return items
}

func stripListMarker(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	for _, m := range listMarkers {
		if strings.HasPrefix(trimmed, m) {
			return strings.TrimLeft(trimmed[len(m):], " \t")
		}
	}
	return line
}
