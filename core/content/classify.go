package content

import "strings"

type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockList
	BlockVenn
	BlockGeometry
)

const (
	fence       = "```"
	diagramTags = "venn|geometry"
)

var (
	listMarkers = []string{"- ", "• "}

	// kinds a diagram block maps to, in test order
	diagramBlocks = []struct {
		kind  BlockKind
		dKind DiagramKind
	}{
		{BlockVenn, DiagramVenn},
		{BlockGeometry, DiagramGeometry},
	}
)

func (k BlockKind) String() string {
	switch k {
	case BlockList:
		return "list"
	case BlockVenn:
		return "venn"
	case BlockGeometry:
		return "geometry"
	default:
		return "paragraph"
	}
}

// DiagramKind returns the diagram kind of a fenced block kind.
func (k BlockKind) DiagramKind() (DiagramKind, bool) {
	for _, db := range diagramBlocks {
		if db.kind == k {
			return db.dKind, true
		}
	}
	return "", false
}

// Classify decides the kind of a raw block by prefix tests on its first non-whitespace token.
// First match wins: venn fence, geometry fence, bullet list, paragraph.
func Classify(block string) BlockKind {
	trimmed := strings.TrimLeft(block, " \t\n")
	for _, db := range diagramBlocks {
		if strings.HasPrefix(trimmed, fence+string(db.dKind)) {
			return db.kind
		}
	}
	if hasListMarker(trimmed) {
		return BlockList
	}
	return BlockParagraph
}

func hasListMarker(line string) bool {
	for _, m := range listMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}
