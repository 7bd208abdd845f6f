package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kb-portal/internal/apperr"
	"kb-portal/internal/domain"
	"kb-portal/internal/storage"
)

const articleColumns = "id, title, content, excerpt, category, author, created_at, last_updated, views, tags, published"

type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn}
}

func (s *Store) List(ctx context.Context, opts storage.ListOptions) ([]domain.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE published = true"
	args := []interface{}{}

	if opts.Category != "" {
		args = append(args, opts.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (title ILIKE $%d OR content ILIKE $%d OR excerpt ILIKE $%d)", n, n, n)
	}

	args = append(args, opts.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, opts.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []domain.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}

	return articles, nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Article, error) {
	row := s.db.QueryRow(ctx,
		"SELECT "+articleColumns+" FROM articles WHERE id = $1 AND published = true", id)

	a, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Article{}, apperr.NewNotFound("article not found")
	}
	if err != nil {
		return domain.Article{}, err
	}
	return a, nil
}

func (s *Store) Create(ctx context.Context, draft domain.Draft) (domain.Article, error) {
	if err := draft.ValidateForCreate(); err != nil {
		return domain.Article{}, apperr.NewValidationWrap("title, content, and category are required", err)
	}

	a := domain.Article{
		ID:        uuid.NewString(),
		Title:     *draft.Title,
		Content:   *draft.Content,
		Category:  *draft.Category,
		Author:    domain.DefaultAuthor,
		Views:     0,
		Tags:      []string{},
		Published: true,
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

	now := time.Now().UTC()
	a.CreatedAt = now
	a.LastUpdated = now

	_, err := s.db.Exec(ctx, `
        INSERT INTO articles (id, title, content, excerpt, category, author, created_at, last_updated, views, tags, published)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Title, a.Content, a.Excerpt, a.Category, a.Author,
		a.CreatedAt, a.LastUpdated, a.Views, domain.EncodeTags(a.Tags), a.Published,
	)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to insert article: %w", err)
	}

	return a, nil
}

func (s *Store) Update(ctx context.Context, id string, draft domain.Draft) (domain.Article, error) {
	if draft.Empty() {
		return domain.Article{}, apperr.NewValidation("no valid fields to update")
	}

	sets := []string{}
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if draft.Title != nil {
		add("title", *draft.Title)
	}
	if draft.Content != nil {
		add("content", *draft.Content)
	}
	if draft.Excerpt != nil {
		add("excerpt", *draft.Excerpt)
	}
	if draft.Category != nil {
		add("category", *draft.Category)
	}
	if draft.Author != nil {
		add("author", *draft.Author)
	}
	if draft.Tags != nil {
		add("tags", domain.EncodeTags(*draft.Tags))
	}
	add("last_updated", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf("UPDATE articles SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Article{}, apperr.NewNotFound("article not found")
	}

	row := s.db.QueryRow(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = $1", id)
	return scanArticle(row)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM articles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("article not found")
	}
	return nil
}

func (s *Store) IncrementViews(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "UPDATE articles SET views = views + 1 WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		"SELECT DISTINCT category FROM articles WHERE published = true ORDER BY category ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	return categories, nil
}

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	var rawTags string
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.Category, &a.Author,
		&a.CreatedAt, &a.LastUpdated, &a.Views, &rawTags, &a.Published,
	)
	if err != nil {
		return domain.Article{}, err
	}
	a.Tags = domain.DecodeTags(rawTags)
	return a, nil
}
