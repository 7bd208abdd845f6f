// Package fallback supplies a fixed article set for use when the live API is
// unreachable or when running without a backend at all. Mutations are local
// and in-memory only; nothing is persisted.
package fallback

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"kb-portal/internal/apperr"
	"kb-portal/internal/domain"
	"kb-portal/internal/storage"
	"kb-portal/pkg/utils"
)

//go:embed articles.yaml
var fixture []byte

type fixtureArticle struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Content     string    `yaml:"content"`
	Excerpt     string    `yaml:"excerpt"`
	Category    string    `yaml:"category"`
	Author      string    `yaml:"author"`
	CreatedAt   time.Time `yaml:"createdAt"`
	LastUpdated time.Time `yaml:"lastUpdated"`
	Views       int       `yaml:"views"`
	Tags        []string  `yaml:"tags"`
	Published   bool      `yaml:"published"`
}

type Provider struct {
	mu       sync.Mutex
	articles []domain.Article
}

// New decodes the embedded fixture into a fresh provider.
func New() (*Provider, error) {
	var doc struct {
		Articles []fixtureArticle `yaml:"articles"`
	}
	if err := yaml.Unmarshal(fixture, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode fallback fixture: %w", err)
	}

	articles := make([]domain.Article, 0, len(doc.Articles))
	for _, f := range doc.Articles {
		tags := f.Tags
		if tags == nil {
			tags = []string{}
		}
		articles = append(articles, domain.Article{
			ID:          f.ID,
			Title:       f.Title,
			Content:     f.Content,
			Excerpt:     f.Excerpt,
			Category:    f.Category,
			Author:      f.Author,
			CreatedAt:   f.CreatedAt,
			LastUpdated: f.LastUpdated,
			Views:       f.Views,
			Tags:        tags,
			Published:   f.Published,
		})
	}

	return &Provider{articles: articles}, nil
}

// Articles returns a copy of the current fallback set, published only.
func (p *Provider) Articles() []domain.Article {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.Article, 0, len(p.articles))
	for _, a := range p.articles {
		if a.Published {
			out = append(out, a)
		}
	}
	return out
}

// CategorySet derives the distinct categories of the published set, ascending.
func (p *Provider) CategorySet() []string {
	seen := map[string]struct{}{}
	var categories []string
	for _, a := range p.Articles() {
		if _, ok := seen[a.Category]; ok {
			continue
		}
		seen[a.Category] = struct{}{}
		categories = append(categories, a.Category)
	}
	sort.Strings(categories)
	return categories
}

// List implements the storage.Store read contract over the fixed set.
func (p *Provider) List(ctx context.Context, opts storage.ListOptions) ([]domain.Article, error) {
	matched := []domain.Article{}
	for _, a := range p.Articles() {
		if opts.Category != "" && a.Category != opts.Category {
			continue
		}
		if opts.Search != "" &&
			!utils.ContainsFold(a.Title, opts.Search) &&
			!utils.ContainsFold(a.Content, opts.Search) &&
			!utils.ContainsFold(a.Excerpt, opts.Search) {
			continue
		}
		matched = append(matched, a)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []domain.Article{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}

	return matched, nil
}

func (p *Provider) Get(ctx context.Context, id string) (domain.Article, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, a := range p.articles {
		if a.ID == id && a.Published {
			return a, nil
		}
	}
	return domain.Article{}, apperr.NewNotFound("article not found")
}

func (p *Provider) Create(ctx context.Context, draft domain.Draft) (domain.Article, error) {
	if err := draft.ValidateForCreate(); err != nil {
		return domain.Article{}, apperr.NewValidationWrap("title, content, and category are required", err)
	}

	now := time.Now().UTC()
	a := domain.Article{
		ID:          uuid.NewString(),
		Title:       *draft.Title,
		Content:     *draft.Content,
		Category:    *draft.Category,
		Author:      domain.DefaultAuthor,
		CreatedAt:   now,
		LastUpdated: now,
		Tags:        []string{},
		Published:   true,
	}
	if draft.Excerpt != nil {
		a.Excerpt = *draft.Excerpt
	}
	if draft.Author != nil && *draft.Author != "" {
		a.Author = *draft.Author
	}
	if draft.Tags != nil {
		a.Tags = *draft.Tags
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.articles = append([]domain.Article{a}, p.articles...)

	return a, nil
}

func (p *Provider) Update(ctx context.Context, id string, draft domain.Draft) (domain.Article, error) {
	if draft.Empty() {
		return domain.Article{}, apperr.NewValidation("no valid fields to update")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.articles {
		if p.articles[i].ID != id {
			continue
		}

		a := &p.articles[i]
		if draft.Title != nil {
			a.Title = *draft.Title
		}
		if draft.Content != nil {
			a.Content = *draft.Content
		}
		if draft.Excerpt != nil {
			a.Excerpt = *draft.Excerpt
		}
		if draft.Category != nil {
			a.Category = *draft.Category
		}
		if draft.Author != nil {
			a.Author = *draft.Author
		}
		if draft.Tags != nil {
			a.Tags = *draft.Tags
		}
		a.LastUpdated = time.Now().UTC()

		return *a, nil
	}

	return domain.Article{}, apperr.NewNotFound("article not found")
}

func (p *Provider) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.articles {
		if p.articles[i].ID == id {
			p.articles = append(p.articles[:i], p.articles[i+1:]...)
			return nil
		}
	}
	return apperr.NewNotFound("article not found")
}

func (p *Provider) IncrementViews(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.articles {
		if p.articles[i].ID == id {
			p.articles[i].Views++
			return nil
		}
	}
	return nil
}

func (p *Provider) Categories(ctx context.Context) ([]string, error) {
	return p.CategorySet(), nil
}
