// Package content formats lesson text into a display tree.
//
// Lesson content is plain text with a few inline markers (**bold**, *italic*,
// `code`, $inline math$, $$display math$$), bullet lists and fenced diagram
// blocks (```venn / ```geometry) carrying a JSON payload. Rendering never
// fails: malformed diagrams and math degrade to visible error markers.
package content

type SpanKind string

const (
	SpanPlain       SpanKind = "plain"
	SpanBold        SpanKind = "bold"
	SpanItalic      SpanKind = "italic"
	SpanCode        SpanKind = "code"
	SpanInlineMath  SpanKind = "inline_math"
	SpanDisplayMath SpanKind = "display_math"
	SpanLineBreak   SpanKind = "line_break"
)

// Span is a typed fragment of a single line.
// Text is the literal payload with delimiters stripped.
type Span struct {
	Kind   SpanKind `json:"kind"`
	Text   string   `json:"text,omitempty"`
	Markup string   `json:"markup,omitempty"` // math only
	Error  string   `json:"error,omitempty"`  // math only
}

func (s Span) IsMath() bool {
	return s.Kind == SpanInlineMath || s.Kind == SpanDisplayMath
}

type NodeKind string

const (
	NodeParagraph NodeKind = "paragraph"
	NodeList      NodeKind = "list"
	NodeDiagram   NodeKind = "diagram"
	NodeError     NodeKind = "error"
)

type ListItem struct {
	Spans []Span `json:"spans"`
}

// Node is one block-level element of a Document.
type Node struct {
	Kind    NodeKind   `json:"kind"`
	Spans   []Span     `json:"spans,omitempty"`   // NodeParagraph
	Items   []ListItem `json:"items,omitempty"`   // NodeList
	Diagram *Diagram   `json:"diagram,omitempty"` // NodeDiagram
	Error   string     `json:"error,omitempty"`   // NodeError
	Details []string   `json:"details,omitempty"` // NodeError
}

// HasDisplayMath reports whether a paragraph holds block-level math.
func (n Node) HasDisplayMath() bool {
	for _, s := range n.Spans {
		if s.Kind == SpanDisplayMath {
			return true
		}
	}
	return false
}

// Attrs are optional attributes of the rendered root element.
type Attrs struct {
	ID        string `json:"id,omitempty"`
	ClassName string `json:"class_name,omitempty"`
}

type Document struct {
	Attrs
	Nodes []Node `json:"nodes"`
}

func (d Document) IsEmpty() bool { return len(d.Nodes) == 0 }

// Text returns the literal text of the document, ignoring styling and diagram payloads.
// Blocks are joined with a blank line and line breaks are kept as newlines.
func (d Document) Text() string {
	var b []byte
	for i, n := range d.Nodes {
		if i > 0 {
			b = append(b, "\n\n"...)
		}
		switch n.Kind {
		case NodeParagraph:
			b = appendSpansText(b, n.Spans)
		case NodeList:
			for j, it := range n.Items {
				if j > 0 {
					b = append(b, '\n')
				}
				b = appendSpansText(b, it.Spans)
			}
		}
	}
	return string(b)
}

func appendSpansText(b []byte, spans []Span) []byte {
	for _, s := range spans {
		if s.Kind == SpanLineBreak {
			b = append(b, '\n')
			continue
		}
		b = append(b, s.Text...)
	}
	return b
}
