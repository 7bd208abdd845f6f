// Package catalog holds the in-memory working set of articles behind the
// presentation layer. It coordinates loads from a Source with fallback
// substitution, pure filtering, and optimistic local mutations mirrored
// against the remote store.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"kb-portal/internal/apperr"
	"kb-portal/internal/client"
	"kb-portal/internal/domain"
	"kb-portal/internal/fallback"
	"kb-portal/internal/storage"
	"kb-portal/pkg/pagination"
	"kb-portal/pkg/utils"
)

// Config selects the catalog's data source. The strategy is fixed at
// construction time; nothing reads the environment at call time.
type Config struct {
	APIBaseURL string
	LiveMode   bool
}

// Source is what the catalog talks to: the live repository client or the
// fallback provider.
type Source = storage.Store

type Catalog struct {
	source   Source
	fallback *fallback.Provider

	mu         sync.Mutex
	articles   []domain.Article
	categories []string
	loading    bool
	lastErr    error
	loadGen    uint64
}

// New builds a catalog over an explicit source. The fallback provider is
// consulted only when a load fails.
func New(source Source, fb *fallback.Provider) *Catalog {
	return &Catalog{
		source:   source,
		fallback: fb,
	}
}

// NewFromConfig wires the source strategy: the HTTP repository client in live
// mode, the fallback provider's in-memory set otherwise.
func NewFromConfig(cfg Config) (*Catalog, error) {
	fb, err := fallback.New()
	if err != nil {
		return nil, err
	}

	if !cfg.LiveMode {
		return New(fb, fb), nil
	}

	c, err := client.New(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	return New(c, fb), nil
}

// Load replaces the working set with the full published article set from the
// source. On failure the fallback provider's fixed set is substituted and the
// error is recorded; the catalog stays usable either way. Overlapping loads
// are tolerated: a completion belonging to a superseded load never overwrites
// fresher state.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadGen++
	gen := c.loadGen
	c.loading = true
	c.mu.Unlock()

	articles, err := c.source.List(ctx, storage.ListOptions{Limit: pagination.LimitMax})
	var categories []string
	if err == nil {
		categories, err = c.source.Categories(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.loadGen {
		// A newer load started after this one; drop the result.
		return nil
	}
	c.loading = false

	if err != nil {
		slog.Warn("article load failed, using fallback data", "error", err)
		c.articles = c.fallback.Articles()
		c.categories = c.fallback.CategorySet()
		c.lastErr = fmt.Errorf("failed to load articles: %w", err)
		return c.lastErr
	}

	c.articles = articles
	c.categories = categories
	c.lastErr = nil
	return nil
}

// Filter projects the working set without mutating it. An article matches
// when it is published, its category equals the selected one (nil means all),
// and the search text case-insensitively occurs in the title, excerpt,
// content, or any tag. Working-set order is preserved.
func (c *Catalog) Filter(search string, category *string) []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()

	matched := []domain.Article{}
	for _, a := range c.articles {
		if !a.Published {
			continue
		}
		if category != nil && a.Category != *category {
			continue
		}
		if search != "" && !matchesSearch(a, search) {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

func matchesSearch(a domain.Article, search string) bool {
	if utils.ContainsFold(a.Title, search) ||
		utils.ContainsFold(a.Excerpt, search) ||
		utils.ContainsFold(a.Content, search) {
		return true
	}
	for _, tag := range a.Tags {
		if utils.ContainsFold(tag, search) {
			return true
		}
	}
	return false
}

// Select returns the article with the given id and bumps its view count
// optimistically. The remote increment runs as a side effect; its failure is
// logged and swallowed so selection never fails for a locally known id.
func (c *Catalog) Select(ctx context.Context, id string) (domain.Article, error) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return domain.Article{}, apperr.NewNotFound("article not found")
	}
	c.articles[idx].Views++
	selected := c.articles[idx]
	c.mu.Unlock()

	if err := c.source.IncrementViews(ctx, id); err != nil {
		slog.Warn("failed to increment views remotely", "id", id, "error", err)
	}

	return selected, nil
}

// Save creates or updates an article depending on whether the draft carries
// an id. The working set is only touched after the source call succeeds.
func (c *Catalog) Save(ctx context.Context, draft domain.Draft) (domain.Article, error) {
	if draft.ID == "" {
		if err := draft.ValidateForCreate(); err != nil {
			return domain.Article{}, apperr.NewValidationWrap("title, content, and category are required", err)
		}

		created, err := c.source.Create(ctx, draft)
		if err != nil {
			return domain.Article{}, err
		}

		c.mu.Lock()
		c.articles = append([]domain.Article{created}, c.articles...)
		c.mu.Unlock()
		return created, nil
	}

	updated, err := c.source.Update(ctx, draft.ID, draft)
	if err != nil {
		return domain.Article{}, err
	}

	c.mu.Lock()
	if idx := c.indexOf(draft.ID); idx >= 0 {
		c.articles[idx] = updated
	}
	c.mu.Unlock()
	return updated, nil
}

// Delete removes the article remotely and from the working set. A remote
// not-found counts as success: the article is gone either way.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	err := c.source.Delete(ctx, id)
	if err != nil {
		var nfe *apperr.NotFoundError
		if !errors.As(err, &nfe) {
			return err
		}
	}

	c.mu.Lock()
	if idx := c.indexOf(id); idx >= 0 {
		c.articles = append(c.articles[:idx], c.articles[idx+1:]...)
	}
	c.mu.Unlock()
	return nil
}

// Articles returns a copy of the working set in source order.
func (c *Catalog) Articles() []domain.Article {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Article, len(c.articles))
	copy(out, c.articles)
	return out
}

// Categories returns the category set from the last load.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError reports the most recent load failure, or nil after a clean load.
func (c *Catalog) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// indexOf must be called with the mutex held.
func (c *Catalog) indexOf(id string) int {
	for i := range c.articles {
		if c.articles[i].ID == id {
			return i
		}
	}
	return -1
}
