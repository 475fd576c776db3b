package content

import (
	"regexp"
	"strings"
)

var (
	// an opening diagram fence glued to the previous line
	openFenceRegex = regexp.MustCompile("([^\n])\n(```(?:" + diagramTags + "))")
	// a closing fence glued to the next line
	closeFenceRegex = regexp.MustCompile("```\n([^\n])")
	blankLinesRegex = regexp.MustCompile(`\n{2,}`)
)

// normalizeFences guarantees that fenced blocks are delimited by blank lines,
// so they are never merged with neighbouring prose.
func normalizeFences(content string) string {
	content = openFenceRegex.ReplaceAllString(content, "${1}\n\n${2}")
	return closeFenceRegex.ReplaceAllString(content, "```\n\n${1}")
}

// Segment splits content into its ordered block strings.
// Content without blank lines yields a single block.
func Segment(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return splitBlocks(normalizeFences(content))
}

// splitBlocks splits on runs of two or more newlines, dropping blank blocks.
func splitBlocks(s string) []string {
	parts := blankLinesRegex.Split(s, -1)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "\n")
		if strings.TrimSpace(p) == "" {
			continue
		}
		blocks = append(blocks, p)
	}
	return blocks
}
