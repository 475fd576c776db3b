package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smartjhs/smartjhs/core/lesson"
)

const objectKey = "object"

// lessonMiddleware loads the lesson of the `:id` path param into the context.
func lessonMiddleware(svc *lesson.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			l, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				if errors.Cause(err) == lesson.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding lesson by ID")
			}
			ctx.Set(objectKey, l)
			return next(ctx)
		}
	}
}

func getContextLesson(ctx echo.Context) (lesson.Lesson, error) {
	l, ok := ctx.Get(objectKey).(lesson.Lesson)
	if !ok {
		return lesson.Lesson{}, errors.Wrap(errObjNotFoundInCtx, "retrieving lesson from context")
	}
	return l, nil
}
