package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kb-portal/internal/apperr"
	"kb-portal/internal/domain"
	"kb-portal/internal/metrics"
	"kb-portal/internal/storage"
	"kb-portal/pkg/pagination"
)

type ArticleRouter struct {
	e     *echo.Echo
	store storage.Store
}

func NewArticleRouter(e *echo.Echo, store storage.Store) *ArticleRouter {
	return &ArticleRouter{
		e:     e,
		store: store,
	}
}

func (r *ArticleRouter) Bind() {
	r.e.GET("/articles", r.listHandler)
	r.e.GET("/articles/:id", r.getHandler)
	r.e.POST("/articles", r.createHandler)
	r.e.PUT("/articles/:id", r.updateHandler)
	r.e.DELETE("/articles/:id", r.deleteHandler)
	r.e.POST("/articles/:id/views", r.incrementViewsHandler)
}

// listHandler returns published articles, optionally narrowed by category
// and a case-insensitive substring search over title, content and excerpt.
func (r *ArticleRouter) listHandler(c echo.Context) error {
	var page pagination.LimitOffset
	if err := c.Bind(&page); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	page.Normalize()

	articles, err := r.store.List(c.Request().Context(), storage.ListOptions{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, articles)
}

func (r *ArticleRouter) getHandler(c echo.Context) error {
	article, err := r.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, article)
}

func (r *ArticleRouter) createHandler(c echo.Context) error {
	var draft domain.Draft
	if err := c.Bind(&draft); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	article, err := r.store.Create(c.Request().Context(), draft)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, article)
}

func (r *ArticleRouter) updateHandler(c echo.Context) error {
	var draft domain.Draft
	if err := c.Bind(&draft); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	article, err := r.store.Update(c.Request().Context(), c.Param("id"), draft)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, article)
}

func (r *ArticleRouter) deleteHandler(c echo.Context) error {
	if err := r.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Article deleted successfully"})
}

func (r *ArticleRouter) incrementViewsHandler(c echo.Context) error {
	if err := r.store.IncrementViews(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ArticleViews.Inc()

	return c.JSON(http.StatusOK, map[string]string{"message": "Views incremented successfully"})
}
