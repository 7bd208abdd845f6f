// Package client is the HTTP repository client for the article API. It maps
// wire responses to domain records and non-2xx statuses to typed failures.
// Retries are the caller's decision; nothing here retries automatically.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kb-portal/internal/apperr"
	"kb-portal/internal/domain"
	"kb-portal/internal/storage"
)

const defaultTimeout = 10 * time.Second

type Option func(*Client)

type Client struct {
	base url.URL
	http *http.Client
}

func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.http = httpClient
	}
}

func (c *Client) List(ctx context.Context, opts storage.ListOptions) ([]domain.Article, error) {
	query := url.Values{}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Search != "" {
		query.Set("search", opts.Search)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var articles []domain.Article
	if err := c.do(ctx, http.MethodGet, "/articles", query, nil, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (c *Client) Get(ctx context.Context, id string) (domain.Article, error) {
	var article domain.Article
	if err := c.do(ctx, http.MethodGet, "/articles/"+id, nil, nil, &article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Article, error) {
	var article domain.Article
	if err := c.do(ctx, http.MethodPost, "/articles", nil, draft, &article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (c *Client) Update(ctx context.Context, id string, draft domain.Draft) (domain.Article, error) {
	var article domain.Article
	if err := c.do(ctx, http.MethodPut, "/articles/"+id, nil, draft, &article); err != nil {
		return domain.Article{}, err
	}
	return article, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+id, nil, nil, nil)
}

func (c *Client) IncrementViews(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/articles/"+id+"/views", nil, nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, reqData, respData any) error {
	var body io.Reader
	if reqData != nil {
		reqBytes, err := json.Marshal(reqData)
		if err != nil {
			return err
		}
		body = bytes.NewReader(reqBytes)
	}

	reqURL := c.base.JoinPath(path)
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return apperr.NewUnavailableWrap("article api unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.NewUnavailableWrap("failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, respBody)
	}

	if respData == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

func statusError(status int, body []byte) error {
	msg := fmt.Sprintf("unexpected status code: %d", status)

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	switch status {
	case http.StatusBadRequest:
		return apperr.NewValidation(msg)
	case http.StatusNotFound:
		return apperr.NewNotFound(msg)
	default:
		return apperr.NewUnavailable(msg)
	}
}
