package content

import (
	"bytes"
	"html"
	"io"
)

// HTML returns the markup of a Document.
func HTML(doc Document) string {
	var buf bytes.Buffer
	writeDocument(&buf, doc)
	return buf.String()
}

// WriteHTML writes the markup of a Document to w.
func WriteHTML(w io.Writer, doc Document) error {
	var buf bytes.Buffer
	writeDocument(&buf, doc)
	_, err := buf.WriteTo(w)
	return err
}

func writeDocument(buf *bytes.Buffer, doc Document) {
	if doc.IsEmpty() {
		return
	}
	class := "markdown-content"
	if doc.ClassName != "" {
		class += " " + doc.ClassName
	}
	buf.WriteString(`<div class="` + html.EscapeString(class) + `"`)
	if doc.ID != "" {
		buf.WriteString(` id="` + html.EscapeString(doc.ID) + `"`)
	}
	buf.WriteString(">")
	for _, n := range doc.Nodes {
		writeNode(buf, n)
	}
	buf.WriteString("</div>")
}

func writeNode(buf *bytes.Buffer, n Node) {
	switch n.Kind {
	case NodeParagraph:
		// display math is block-level and cannot live inside a <p>
		if n.HasDisplayMath() {
			buf.WriteString(`<div class="paragraph">`)
			writeSpans(buf, n.Spans)
			buf.WriteString("</div>")
		} else {
			buf.WriteString("<p>")
			writeSpans(buf, n.Spans)
			buf.WriteString("</p>")
		}
	case NodeList:
		buf.WriteString("<ul>")
		for _, it := range n.Items {
			buf.WriteString("<li>")
			writeSpans(buf, it.Spans)
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
	case NodeDiagram:
		kind := html.EscapeString(string(n.Diagram.Kind))
		buf.WriteString(`<div class="diagram diagram-` + kind + `" data-kind="` + kind + `" data-props="`)
		buf.WriteString(html.EscapeString(string(n.Diagram.Props)))
		buf.WriteString(`"></div>`)
	case NodeError:
		buf.WriteString(`<div class="diagram-error">`)
		buf.WriteString(html.EscapeString(n.Error))
		buf.WriteString("</div>")
	}
}

func writeSpans(buf *bytes.Buffer, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case SpanLineBreak:
			buf.WriteString("<br>")
		case SpanBold:
			writeElement(buf, "strong", "", s.Text)
		case SpanItalic:
			writeElement(buf, "em", "", s.Text)
		case SpanCode:
			writeElement(buf, "code", "", s.Text)
		case SpanInlineMath, SpanDisplayMath:
			writeMath(buf, s)
		default:
			buf.WriteString(html.EscapeString(s.Text))
		}
	}
}

func writeMath(buf *bytes.Buffer, s Span) {
	if s.Error != "" || s.Markup == "" {
		writeElement(buf, "span", "math-error", s.Text)
		return
	}
	tag, class := "span", "math-inline"
	if s.Kind == SpanDisplayMath {
		tag, class = "div", "math-display"
	}
	// converter output is markup, not text
	buf.WriteString("<" + tag + ` class="` + class + `">` + s.Markup + "</" + tag + ">")
}

func writeElement(buf *bytes.Buffer, tag, class, text string) {
	buf.WriteString("<" + tag)
	if class != "" {
		buf.WriteString(` class="` + class + `"`)
	}
	buf.WriteString(">")
	buf.WriteString(html.EscapeString(text))
	buf.WriteString("</" + tag + ">")
}
