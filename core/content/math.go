package content

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/wyatt915/treeblood"
)

// MathRenderer converts a LaTeX expression to renderable markup.
type MathRenderer interface {
	RenderMath(expr string, display bool) (string, error)
}

// TreebloodMath renders LaTeX to MathML.
// The underlying document keeps macro & numbering state, so conversions are serialized.
type TreebloodMath struct {
	mu  sync.Mutex
	doc *treeblood.Pitziil
}

var _ MathRenderer = (*TreebloodMath)(nil)

func NewTreebloodMath(macros map[string]string) *TreebloodMath {
	if len(macros) == 0 {
		macros = nil
	}
	return &TreebloodMath{doc: treeblood.NewDocument(macros, false)}
}

// RenderMath returns best-effort MathML. An error is only returned when nothing could be rendered.
func (m *TreebloodMath) RenderMath(expr string, display bool) (mml string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			mml = ""
			err = fmt.Errorf("converting %q: %v", expr, r)
		}
	}()

	if display {
		mml, err = m.doc.DisplayStyle(expr)
	} else {
		mml, err = m.doc.TextStyle(expr)
	}
	if mml != "" {
		return mml, nil
	}
	if err == nil {
		err = errors.New("empty output")
	}
	return "", errors.Wrapf(err, "converting %q", expr)
}

// renderMath fills the markup of a math span. Failures are kept on the span, never returned.
func renderMath(m MathRenderer, s Span) Span {
	if m == nil {
		s.Error = "math rendering unavailable"
		return s
	}
	mml, err := safeRenderMath(m, s.Text, s.Kind == SpanDisplayMath)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	s.Markup = mml
	return s
}

func safeRenderMath(m MathRenderer, expr string, display bool) (mml string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering math: %v", r)
		}
	}()
	return m.RenderMath(expr, display)
}
