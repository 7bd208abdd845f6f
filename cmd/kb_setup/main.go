// Command kb_setup migrates the articles table and seeds it with the sample
// article set, wiping whatever was there before.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"kb-portal/internal/domain"
	"kb-portal/internal/fallback"
	"kb-portal/internal/storage/pg"
	"kb-portal/pkg/config/env"
)

func main() {
	migrationsDir := flag.String("migrations", "db/migrations", "path to migration files")
	skipSeed := flag.Bool("skip-seed", false, "run migrations only, leave data untouched")
	flag.Parse()

	env.LoadDotEnv("cmd/kb_setup/.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	if err := run(context.Background(), dbURL, *migrationsDir, *skipSeed); err != nil {
		slog.Error("Setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database setup completed")
}

func run(ctx context.Context, dbURL, migrationsDir string, skipSeed bool) error {
	m, err := migrate.New("file://"+migrationsDir, dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	m.Close()
	slog.Info("Migrations applied")

	if skipSeed {
		return nil
	}

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: dbURL})
	if err != nil {
		return err
	}
	defer pool.Close()

	provider, err := fallback.New()
	if err != nil {
		return err
	}

	return seed(ctx, pool, provider.Articles())
}

func seed(ctx context.Context, pool *pg.ConnectionPool, articles []domain.Article) error {
	conn := pool.GetConn()

	if _, err := conn.Exec(ctx, "DELETE FROM articles"); err != nil {
		return fmt.Errorf("failed to clear articles: %w", err)
	}

	for _, a := range articles {
		_, err := conn.Exec(ctx, `
            INSERT INTO articles (id, title, content, excerpt, category, author, created_at, last_updated, views, tags, published)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			a.ID, a.Title, a.Content, a.Excerpt, a.Category, a.Author,
			a.CreatedAt, a.LastUpdated, a.Views, domain.EncodeTags(a.Tags), a.Published,
		)
		if err != nil {
			return fmt.Errorf("failed to seed article %s: %w", a.ID, err)
		}
	}

	slog.Info("Seeded sample articles", "count", len(articles))
	return nil
}
