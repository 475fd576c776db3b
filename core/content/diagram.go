package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
)

type DiagramKind string

const (
	DiagramVenn     DiagramKind = "venn"
	DiagramGeometry DiagramKind = "geometry"
)

const diagramErrorText = "Error rendering diagram"

var (
	diagramValidate   = validator.New()
	diagramTranslator ut.Translator

	// {kind: pattern} capturing the payload and the text after the closing fence
	diagramRegexes = map[DiagramKind]*regexp.Regexp{
		DiagramVenn:     diagramRegex(DiagramVenn),
		DiagramGeometry: diagramRegex(DiagramGeometry),
	}
)

func init() {
	diagramTranslator = core.NewTranslator()
	core.InitValidators(diagramValidate, diagramTranslator)
}

func diagramRegex(kind DiagramKind) *regexp.Regexp {
	return regexp.MustCompile("(?s)^" + fence + string(kind) + "[ \t]*\n?(.*?)" + fence + "(.*)$")
}

type (
	VennSet struct {
		Label string   `json:"label" validate:"notblank"`
		Items []string `json:"items,omitempty"`
		Color string   `json:"color,omitempty"`
	}

	VennDiagram struct {
		Title        string    `json:"title,omitempty"`
		Sets         []VennSet `json:"sets,omitempty" validate:"max=4,dive"`
		Intersection []string  `json:"intersection,omitempty"`
		Universe     string    `json:"universe,omitempty"`
	}

	GeometryShape struct {
		Type   string       `json:"type" validate:"required,oneof=point line segment ray circle polygon triangle rectangle angle arc label"`
		Points [][2]float64 `json:"points,omitempty"`
		Radius float64      `json:"radius,omitempty" validate:"gte=0"`
		Label  string       `json:"label,omitempty"`
		Color  string       `json:"color,omitempty"`
	}

	GeometryDiagram struct {
		Title  string          `json:"title,omitempty"`
		Width  float64         `json:"width,omitempty" validate:"gte=0,lte=2000"`
		Height float64         `json:"height,omitempty" validate:"gte=0,lte=2000"`
		Shapes []GeometryShape `json:"shapes,omitempty" validate:"dive"`
	}

	// Diagram is a parsed diagram block.
	// Props is the original JSON object, passed as is to the diagram component.
	Diagram struct {
		Kind     DiagramKind      `json:"kind"`
		Props    json.RawMessage  `json:"props"`
		Venn     *VennDiagram     `json:"-"`
		Geometry *GeometryDiagram `json:"-"`
	}

	// DiagramError is returned for a diagram payload that cannot be rendered.
	DiagramError struct {
		Kind    DiagramKind
		Err     error
		Details []string
	}
)

func (err *DiagramError) Error() string {
	msg := fmt.Sprintf("%s diagram: %v", err.Kind, err.Err)
	if len(err.Details) > 0 {
		msg += " (" + strings.Join(err.Details, "; ") + ")"
	}
	return msg
}

func (err *DiagramError) Cause() error { return err.Err }

// ExtractDiagram splits a fenced diagram block into its payload and the text found after the closing fence.
// An unterminated fence falls back to trimming the opening tag, with no trailing text.
func ExtractDiagram(kind DiagramKind, block string) (payload, trailing string) {
	block = strings.TrimLeft(block, " \t\n")
	if re, ok := diagramRegexes[kind]; ok {
		if m := re.FindStringSubmatch(block); m != nil {
			return m[1], m[2]
		}
	}
	payload = strings.TrimPrefix(block, fence+string(kind))
	payload = strings.TrimSuffix(strings.TrimSpace(payload), fence)
	return payload, ""
}

// ParseDiagram decodes and validates a diagram payload. The returned error is a *DiagramError.
func ParseDiagram(kind DiagramKind, payload string) (*Diagram, error) {
	raw := []byte(strings.TrimSpace(payload))

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		if err == nil {
			err = errors.New("payload is not a JSON object")
		}
		return nil, &DiagramError{Kind: kind, Err: errors.Wrap(err, "decoding payload")}
	}

	var props bytes.Buffer
	if err := json.Compact(&props, raw); err != nil {
		return nil, &DiagramError{Kind: kind, Err: errors.Wrap(err, "compacting payload")}
	}

	d := &Diagram{Kind: kind, Props: props.Bytes()}
	var typed interface{}
	switch kind {
	case DiagramVenn:
		d.Venn = new(VennDiagram)
		typed = d.Venn
	case DiagramGeometry:
		d.Geometry = new(GeometryDiagram)
		typed = d.Geometry
	default:
		return nil, &DiagramError{Kind: kind, Err: errors.New("unknown diagram kind")}
	}

	if err := json.Unmarshal(raw, typed); err != nil {
		return nil, &DiagramError{Kind: kind, Err: errors.Wrap(err, "decoding properties")}
	}
	if err := diagramValidate.Struct(typed); err != nil {
		dErr := &DiagramError{Kind: kind, Err: errors.New("invalid properties")}
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range core.TranslateErrors(vErrs, diagramTranslator) {
				dErr.Details = append(dErr.Details, fe.Field+": "+fe.Error)
			}
		}
		return nil, dErr
	}
	return d, nil
}
