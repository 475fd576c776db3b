package echoapi

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	mathMLElements = []string{
		"math", "semantics", "annotation", "mrow", "mi", "mn", "mo", "ms", "mtext", "mspace",
		"msup", "msub", "msubsup", "mfrac", "msqrt", "mroot", "mover", "munder", "munderover",
		"mtable", "mtr", "mtd", "mstyle", "mpadded", "mphantom", "menclose", "merror",
	}
	mathMLAttrs = []string{
		"display", "xmlns", "mathvariant", "mathsize", "displaystyle", "scriptlevel",
		"stretchy", "fence", "separator", "accent", "accentunder", "largeop", "movablelimits",
		"symmetric", "form", "lspace", "rspace", "minsize", "maxsize", "linethickness",
		"columnalign", "rowalign", "columnspacing", "rowspacing", "notation", "encoding",
		"width", "height", "depth",
	}

	classRegex = regexp.MustCompile(`^[\w\- ]*$`)
)

// newSanitizer returns the policy applied to rendered lesson HTML:
// user generated content plus MathML and the classes & data attributes of the renderer.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements(mathMLElements...)
	// MathML elements mostly come without attributes, which bluemonday drops unless told otherwise
	p.AllowNoAttrs().OnElements(mathMLElements...)
	p.AllowAttrs(mathMLAttrs...).OnElements(mathMLElements...)
	p.AllowAttrs("class").Matching(classRegex).Globally()
	p.AllowDataAttributes()
	return p
}

func sanitize(p *bluemonday.Policy, html string) string {
	if p == nil {
		return html
	}
	return p.Sanitize(html)
}
