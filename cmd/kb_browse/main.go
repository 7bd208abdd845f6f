// Command kb_browse drives the article catalog from the terminal: load the
// working set (live API or bundled fallback data), filter it, and show one
// article.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"kb-portal/internal/catalog"
)

func main() {
	apiBaseURL := flag.String("api", "http://localhost:3001", "article API base url")
	live := flag.Bool("live", true, "use the live API; false browses the bundled fallback set")
	search := flag.String("search", "", "search text")
	category := flag.String("category", "", "category filter (empty means all)")
	show := flag.String("show", "", "article id to display")
	flag.Parse()

	cat, err := catalog.NewFromConfig(catalog.Config{
		APIBaseURL: *apiBaseURL,
		LiveMode:   *live,
	})
	if err != nil {
		slog.Error("Failed to build catalog", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := cat.Load(ctx); err != nil {
		slog.Warn("Using fallback data", "error", err)
	}

	if *show != "" {
		article, err := cat.Select(ctx, *show)
		if err != nil {
			slog.Error("Article not found", "id", *show)
			os.Exit(1)
		}
		fmt.Printf("%s\n%s\n\n%s\n", article.Title, strings.Repeat("=", len(article.Title)), article.Content)
		fmt.Printf("\ncategory: %s | author: %s | views: %d | tags: %s\n",
			article.Category, article.Author, article.Views, strings.Join(article.Tags, ", "))
		return
	}

	var selected *string
	if *category != "" {
		selected = category
	}

	matches := cat.Filter(*search, selected)
	if len(matches) == 0 {
		if len(cat.Articles()) == 0 {
			fmt.Println("no articles loaded")
		} else {
			fmt.Println("no articles match the filter")
		}
		return
	}

	for _, a := range matches {
		fmt.Printf("%-38s %-18s %6d views  %s\n", a.ID, a.Category, a.Views, a.Title)
	}
	fmt.Printf("\n%d article(s), categories: %s\n", len(matches), strings.Join(cat.Categories(), ", "))
}
