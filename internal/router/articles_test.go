package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-portal/internal/apperr"
	"kb-portal/internal/domain"
	"kb-portal/internal/fallback"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	store, err := fallback.New()
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewArticleRouter(e, store).Bind()
	NewCategoryRouter(e, store).Bind()
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListArticles(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/articles", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	assert.Len(t, articles, 6)
}

func TestListArticles_CategoryAndSearchParams(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/articles?category=Security", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var articles []domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "Security Best Practices", articles[0].Title)

	rec = doRequest(e, http.MethodGet, "/articles?search=troubleshooting&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.NotEmpty(t, articles)
	for _, a := range articles {
		assert.True(t, a.Published)
	}
}

func TestGetArticle(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var article domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "Getting Started with Our Platform", article.Title)
	assert.Equal(t, []string{"setup", "beginner", "tutorial"}, article.Tags)
}

func TestGetArticle_NotFound(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/articles/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateArticle(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/articles",
		`{"title":"New","content":"<p>x</p>","category":"API","tags":["a","b"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var article domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.NotEmpty(t, article.ID)
	assert.Equal(t, domain.DefaultAuthor, article.Author)
	assert.Equal(t, []string{"a", "b"}, article.Tags)
	assert.True(t, article.Published)
	assert.Zero(t, article.Views)
}

func TestCreateArticle_MissingRequiredFields(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPost, "/articles", `{"title":"","content":"x","category":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["error"], "required")
}

func TestUpdateArticle_PartialFields(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPut, "/articles/1", `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var article domain.Article
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &article))
	assert.Equal(t, "Renamed", article.Title)
	assert.Equal(t, "Getting Started", article.Category, "unsupplied fields keep prior values")
	assert.True(t, article.LastUpdated.After(article.CreatedAt))
}

func TestUpdateArticle_NoFields(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPut, "/articles/1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateArticle_NotFound(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodPut, "/articles/ghost", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteArticle(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodDelete, "/articles/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/articles/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "second delete reports not-found")
}

func TestIncrementViews(t *testing.T) {
	e := newTestServer(t)

	before := doRequest(e, http.MethodGet, "/articles/1", "")
	var article domain.Article
	require.NoError(t, json.Unmarshal(before.Body.Bytes(), &article))
	views := article.Views

	rec := doRequest(e, http.MethodPost, "/articles/1/views", "")
	require.Equal(t, http.StatusOK, rec.Code)

	after := doRequest(e, http.MethodGet, "/articles/1", "")
	require.NoError(t, json.Unmarshal(after.Body.Bytes(), &article))
	assert.Equal(t, views+1, article.Views)
}

func TestListCategories(t *testing.T) {
	e := newTestServer(t)

	rec := doRequest(e, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &categories))
	assert.Equal(t,
		[]string{"API", "Advanced", "Getting Started", "Mobile", "Security", "Troubleshooting"},
		categories)
}
