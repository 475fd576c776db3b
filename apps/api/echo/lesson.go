package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core"
	"github.com/smartjhs/smartjhs/core/content"
	"github.com/smartjhs/smartjhs/core/lesson"
)

type lessonApi struct {
	svc       *lesson.Service
	sanitizer *bluemonday.Policy
	validate  *validator.Validate
}

func registerLessonAPI(g *echo.Group, svc *lesson.Service, sanitizer *bluemonday.Policy, validate *validator.Validate) {
	api := lessonApi{
		svc:       svc,
		sanitizer: sanitizer,
		validate:  validate,
	}

	lg := g.Group("/lessons")
	lg.POST("", api.create)
	lg.GET("", api.query)
	lg.DELETE("", api.destroyMultiple)

	// detail endpoints
	dg := lg.Group("/:id", lessonMiddleware(api.svc))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/rendered", api.rendered)
}

// Handlers

func (api *lessonApi) create(ctx echo.Context) error {
	var data lesson.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	l, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, l)
}

func (api *lessonApi) query(ctx echo.Context) error {
	filter := new(lesson.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []lesson.Lesson{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)
	if err := lesson.ValidateOrdering(api.validate, ordering.Orderings); err != nil {
		return err
	}

	lessons, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []lesson.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) retrieve(ctx echo.Context) error {
	l, err := getContextLesson(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) update(ctx echo.Context) error {
	l, err := getContextLesson(ctx)
	if err != nil {
		return err
	}

	var data lesson.UpdateLesson
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err = data.Validate(api.validate, l); err != nil {
		return err
	}

	l, err = api.svc.Update(ctx.Request().Context(), l, data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, l)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	l, err := getContextLesson(ctx)
	if err != nil {
		return err
	}
	if _, err = api.svc.Delete(ctx.Request().Context(), l.ID); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lessonApi) destroyMultiple(ctx echo.Context) error {
	var query DestroyMultipleRequest
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to DestroyMultipleRequest")
	}
	if query.IDs == nil {
		return ctx.NoContent(http.StatusNoContent)
	}

	ids := make([]string, 0, len(query.IDs))
	for _, id := range query.IDs {
		ids = append(ids, core.CleanString(id, true /* lower */))
	}
	if _, err := api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lessonApi) rendered(ctx echo.Context) error {
	l, err := getContextLesson(ctx)
	if err != nil {
		return err
	}

	attrs := content.Attrs{ID: ctx.QueryParam("id"), ClassName: ctx.QueryParam("class_name")}
	doc, err := api.svc.Render(ctx.Request().Context(), l.ID, attrs)
	if err != nil {
		return errors.Wrap(err, "rendering lesson")
	}
	return writeDocument(ctx, doc, core.CleanString(ctx.QueryParam("format"), true /* lower */), api.sanitizer)
}
