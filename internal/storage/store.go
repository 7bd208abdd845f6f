package storage

import (
	"context"

	"kb-portal/internal/domain"
)

// ListOptions narrows the published-article listing. Zero values mean "no
// filter"; Limit/Offset are normalized by the caller (see pkg/pagination).
type ListOptions struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// Store is the authoritative article collection. Read operations only ever
// see published articles; that gate lives here, not in callers.
type Store interface {
	List(ctx context.Context, opts ListOptions) ([]domain.Article, error)
	Get(ctx context.Context, id string) (domain.Article, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Article, error)
	Update(ctx context.Context, id string, draft domain.Draft) (domain.Article, error)
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
}
