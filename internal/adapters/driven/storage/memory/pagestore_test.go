package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func TestPageStore_SaveGetList(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Page{ID: "p2", SiteID: "s1", Title: "FAQ", Order: 2}))
	require.NoError(t, store.Save(ctx, domain.Page{ID: "p1", SiteID: "s1", Title: "Accueil", Order: 1}))
	require.NoError(t, store.Save(ctx, domain.Page{ID: "p3", SiteID: "s2", Title: "Other", Order: 1}))

	got, err := store.Get(ctx, "s1", "p2")
	require.NoError(t, err)
	assert.Equal(t, "FAQ", got.Title)

	list, err := store.ListBySite(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p2", list[1].ID)

	empty, err := store.ListBySite(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPageStore_Save_RequiresIDs(t *testing.T) {
	store := NewPageStore()
	assert.ErrorIs(t, store.Save(context.Background(), domain.Page{ID: "p1"}), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), domain.Page{SiteID: "s1"}), domain.ErrInvalidInput)
}

func TestPageStore_Get_NotFound(t *testing.T) {
	store := NewPageStore()
	_, err := store.Get(context.Background(), "s1", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageStore_Update(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Page{ID: "p1", SiteID: "s1", Title: "Accueil", Slug: "accueil", Order: 1}))

	title := "Bienvenue"
	got, err := store.Update(ctx, "s1", "p1", domain.PageUpdate{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Bienvenue", got.Title)
	assert.Equal(t, "accueil", got.Slug, "unset fields are unchanged")

	_, err = store.Update(ctx, "s1", "missing", domain.PageUpdate{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageStore_StructureIsCopied(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()
	page := domain.Page{ID: "p1", SiteID: "s1", Structure: []domain.Block{
		{ID: "text-1", Type: domain.BlockTextSection, Properties: map[string]any{"title": "A"}},
	}}
	require.NoError(t, store.Save(ctx, page))

	page.Structure[0].Properties["title"] = "B"

	got, err := store.Get(ctx, "s1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Structure[0].Properties["title"])
}

func TestPageStore_Delete(t *testing.T) {
	store := NewPageStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.Page{ID: "p1", SiteID: "s1"}))

	require.NoError(t, store.Delete(ctx, "s1", "p1"))
	require.NoError(t, store.Delete(ctx, "s1", "p1"))

	_, err := store.Get(ctx, "s1", "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
