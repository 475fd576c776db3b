package content

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
)

const renderErrorText = "Error rendering content"

// Renderer turns lesson content into a Document. It holds no per-call state and is safe for concurrent use.
type Renderer struct {
	math   MathRenderer
	logger core.Logger
}

func NewRenderer(math MathRenderer, logger core.Logger) *Renderer {
	return &Renderer{math: math, logger: logger}
}

// Render formats content. Empty content renders an empty Document.
// It never panics: failing blocks are replaced by error nodes.
func (r *Renderer) Render(content string, attrs Attrs) (doc Document) {
	doc = Document{Attrs: attrs, Nodes: []Node{}}

	defer func() {
		if rec := recover(); rec != nil {
			r.warn(renderErrorText, errors.New(fmt.Sprint(rec)), core.Fields{"id": attrs.ID})
			doc.Nodes = append(doc.Nodes, Node{Kind: NodeError, Error: renderErrorText})
		}
	}()

	for _, block := range Segment(content) {
		doc.Nodes = append(doc.Nodes, r.renderBlock(block)...)
	}
	return doc
}

func (r *Renderer) renderBlock(block string) []Node {
	kind := Classify(block)
	if dKind, ok := kind.DiagramKind(); ok {
		return r.renderDiagram(dKind, block)
	}
	if kind == BlockList {
		return []Node{r.renderList(block)}
	}
	return []Node{r.renderParagraph(block)}
}

func (r *Renderer) renderDiagram(kind DiagramKind, block string) []Node {
	payload, trailing := ExtractDiagram(kind, block)

	nodes := make([]Node, 0, 1)
	if d, err := ParseDiagram(kind, payload); err != nil {
		r.warn("invalid diagram", err, core.Fields{"kind": string(kind)})
		node := Node{Kind: NodeError, Error: diagramErrorText}
		if dErr, ok := err.(*DiagramError); ok {
			node.Details = dErr.Details
		}
		nodes = append(nodes, node)
	} else {
		nodes = append(nodes, Node{Kind: NodeDiagram, Diagram: d})
	}

	if trailing = strings.TrimSpace(trailing); trailing != "" {
		for _, para := range splitBlocks(trailing) {
			nodes = append(nodes, r.renderParagraph(para))
		}
	}
	return nodes
}

func (r *Renderer) renderList(block string) Node {
	items := FormatList(block)
	for i := range items {
		items[i].Spans = r.renderSpans(items[i].Spans)
	}
	return Node{Kind: NodeList, Items: items}
}

// renderParagraph keeps the block's line breaks as line-break spans.
func (r *Renderer) renderParagraph(block string) Node {
	var spans []Span
	for i, line := range strings.Split(block, "\n") {
		if i > 0 {
			spans = append(spans, Span{Kind: SpanLineBreak})
		}
		spans = append(spans, r.renderSpans(Tokenize(line))...)
	}
	return Node{Kind: NodeParagraph, Spans: spans}
}

func (r *Renderer) renderSpans(spans []Span) []Span {
	for i, s := range spans {
		if s.IsMath() {
			spans[i] = renderMath(r.math, s)
			if spans[i].Error != "" {
				r.debug("invalid math", core.Fields{"expr": s.Text, "error": spans[i].Error})
			}
		}
	}
	return spans
}

func (r *Renderer) warn(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

func (r *Renderer) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
