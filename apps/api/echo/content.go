package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
)

const (
	formatJSON = "json"
	formatHTML = "html"
)

type (
	RenderRequest struct {
		Content   string `json:"content" validate:"contentsize"`
		ID        string `json:"id" validate:"max=100"`
		ClassName string `json:"class_name" validate:"max=200"`
		Format    string `json:"format" validate:"omitempty,oneof=json html"`
	}

	HTMLResponse struct {
		HTML string `json:"html"`
	}
)

func (r *RenderRequest) Validate(validate *validator.Validate) error {
	r.ID = core.CleanString(r.ID)
	r.ClassName = core.CleanString(r.ClassName)
	r.Format = core.CleanString(r.Format, true /* lower */)
	return validate.Struct(r)
}

type contentApi struct {
	renderer  *content.Renderer
	sanitizer *bluemonday.Policy
	validate  *validator.Validate
}

func registerContentAPI(g *echo.Group, renderer *content.Renderer, sanitizer *bluemonday.Policy, validate *validator.Validate) {
	api := contentApi{
		renderer:  renderer,
		sanitizer: sanitizer,
		validate:  validate,
	}
	g.POST("/render", api.render)
}

// Handlers

func (api *contentApi) render(ctx echo.Context) error {
	var data RenderRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RenderRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	doc := api.renderer.Render(data.Content, content.Attrs{ID: data.ID, ClassName: data.ClassName})
	return writeDocument(ctx, doc, data.Format, api.sanitizer)
}

// writeDocument responds with the Document JSON, or with its sanitized markup for the html format.
func writeDocument(ctx echo.Context, doc content.Document, format string, sanitizer *bluemonday.Policy) error {
	switch format {
	case "", formatJSON:
		return ctx.JSON(http.StatusOK, doc)
	case formatHTML:
		return ctx.JSON(http.StatusOK, HTMLResponse{HTML: sanitize(sanitizer, content.HTML(doc))})
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "format", Error: "format must be one of [json html]"})
	}
}
