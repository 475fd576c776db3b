package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/smartjhs/smartjhs/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.DBOrdering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	ord.Orderings = core.ParseOrdering(ctx.QueryParam(orderingParam))
}

type DestroyMultipleRequest struct {
	IDs []string `query:"id"`
}
