package fallback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-portal/internal/domain"
	"kb-portal/internal/storage"
)

func TestNew_DecodesFixture(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	articles := p.Articles()
	require.Len(t, articles, 6)
	for _, a := range articles {
		assert.True(t, a.Published)
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Tags)
		assert.False(t, a.CreatedAt.IsZero())
	}
}

func TestCategorySet_DistinctAscending(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"API", "Advanced", "Getting Started", "Mobile", "Security", "Troubleshooting"},
		p.CategorySet())
}

func TestList_FiltersAndSortsNewestFirst(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	all, err := p.List(ctx, storage.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "expected created_at descending")
	}

	security, err := p.List(ctx, storage.ListOptions{Category: "Security"})
	require.NoError(t, err)
	require.Len(t, security, 1)
	assert.Equal(t, "Security Best Practices", security[0].Title)

	search, err := p.List(ctx, storage.ListOptions{Search: "rate limits"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "API Documentation Overview", search[0].Title)
}

func TestMutations_AreLocalOnly(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	title := "Local Note"
	content := "<p>scratch</p>"
	category := "Notes"
	created, err := p.Create(ctx, domain.Draft{Title: &title, Content: &content, Category: &category})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, p.Articles(), 7)

	require.NoError(t, p.Delete(ctx, created.ID))
	assert.Len(t, p.Articles(), 6)

	// A fresh provider starts from the fixture again.
	fresh, err := New()
	require.NoError(t, err)
	assert.Len(t, fresh.Articles(), 6)
}

func TestIncrementViews_NeverDecreases(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	ctx := context.Background()

	before, err := p.Get(ctx, "1")
	require.NoError(t, err)

	require.NoError(t, p.IncrementViews(ctx, "1"))
	require.NoError(t, p.IncrementViews(ctx, "1"))

	after, err := p.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Views+2, after.Views)
}

func TestUpdate_EmptyDraftRejected(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	_, err = p.Update(context.Background(), "1", domain.Draft{})
	assert.Error(t, err)
}
