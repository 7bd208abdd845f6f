package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kb-portal/internal/storage"
)

type CategoryRouter struct {
	e     *echo.Echo
	store storage.Store
}

func NewCategoryRouter(e *echo.Echo, store storage.Store) *CategoryRouter {
	return &CategoryRouter{
		e:     e,
		store: store,
	}
}

func (r *CategoryRouter) Bind() {
	r.e.GET("/categories", r.listHandler)
}

// listHandler returns the distinct categories of published articles in
// ascending order.
func (r *CategoryRouter) listHandler(c echo.Context) error {
	categories, err := r.store.Categories(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, categories)
}
