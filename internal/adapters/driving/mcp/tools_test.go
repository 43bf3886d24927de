package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func TestHandleListTemplates(t *testing.T) {
	f := newFixture(t)

	_, out, err := f.server.handleListTemplates(context.Background(), nil, struct{}{})
	require.NoError(t, err)
	require.Len(t, out.Templates, 1)
	assert.Equal(t, templateID, out.Templates[0].ID)
	assert.Contains(t, out.Templates[0].RequiredFields, "wedding_date")
}

func TestHandleCreateAndListSites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, created, err := f.server.handleCreateSite(ctx, nil, CreateSiteInput{TemplateID: templateID, CoupleName: "Café de l'Amour"})
	require.NoError(t, err)
	assert.Equal(t, "cafe-de-l-amour", created.Slug)
	assert.Equal(t, "template", created.Mode)

	_, list, err := f.server.handleListSites(ctx, nil, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)
	assert.Equal(t, created.ID, list.Sites[0].ID)

	_, _, err = f.server.handleCreateSite(ctx, nil, CreateSiteInput{TemplateID: templateID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHandleSetDataThenValidateAndPublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.createSite(t, "")

	_, state, err := f.server.handleGetSite(ctx, nil, SiteRef{SiteID: siteID})
	require.NoError(t, err)
	assert.Len(t, state.Missing, 3)

	_, _, err = f.server.handlePublish(ctx, nil, SiteRef{SiteID: siteID})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, state, err = f.server.handleSetData(ctx, nil, SetDataInput{
		SiteID: siteID,
		Fields: map[string]any{
			"bride_name":   "Marie",
			"groom_name":   "Jean",
			"wedding_date": "2026-06-14",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jean", state.Data["groom_name"])

	_, validation, err := f.server.handleValidate(ctx, nil, SiteRef{SiteID: siteID})
	require.NoError(t, err)
	assert.True(t, validation.Valid)
	assert.Empty(t, validation.Messages)

	_, published, err := f.server.handlePublish(ctx, nil, SiteRef{SiteID: siteID})
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
}

func TestHandleSetData_RequiresFields(t *testing.T) {
	f := newFixture(t)
	siteID := f.createSite(t, "")

	_, _, err := f.server.handleSetData(context.Background(), nil, SetDataInput{SiteID: siteID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHandleSetTheme(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.createSite(t, "")

	_, state, err := f.server.handleSetTheme(ctx, nil, SetThemeInput{
		SiteID: siteID,
		Colors: map[string]string{"primary": "#112233"},
		Fonts:  map[string]string{"heading": "Lora, serif"},
	})
	require.NoError(t, err)
	assert.Equal(t, "#112233", state.Theme.Colors.Primary)
	assert.Equal(t, "Lora, serif", state.Theme.Fonts.Heading)
	assert.Equal(t, "#D4AF37", state.Theme.Colors.Secondary)

	stored, err := f.sites.Get(ctx, siteID)
	require.NoError(t, err)
	assert.Equal(t, "#112233", stored.ThemeOverrides.Colors[domain.ColorPrimary])
	assert.NotContains(t, stored.ThemeOverrides.Colors, domain.ColorSecondary)

	_, _, err = f.server.handleSetTheme(ctx, nil, SetThemeInput{SiteID: siteID, Colors: map[string]string{"accent": "#000"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHandlePreview_ResolvesSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.createSite(t, "")

	_, out, err := f.server.handlePreview(ctx, nil, PreviewInput{SiteID: siteID})
	require.NoError(t, err)
	assert.Equal(t, "Marie & Jean", out.Metadata.CoupleName)

	structure, ok := out.Structure.([]domain.Block)
	require.True(t, ok)
	card, found := domain.FindBlock(structure, "invitation-1")
	require.True(t, found)
	assert.Equal(t, "Marie & Jean", card.Properties["name"])
}

func TestPagesTools(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	siteID := f.createSite(t, domain.ModePages)

	_, page, err := f.server.handleAddPage(ctx, nil, AddPageInput{SiteID: siteID, Title: "Programme"})
	require.NoError(t, err)
	assert.Equal(t, "programme", page.Slug)
	assert.False(t, page.IsHomepage)

	_, added, err := f.server.handleAddBlock(ctx, nil, AddBlockInput{SiteID: siteID, PageID: page.ID, BlockType: "divider"})
	require.NoError(t, err)
	block, ok := added.Block.(domain.Block)
	require.True(t, ok)
	assert.Equal(t, domain.BlockDivider, block.Type)

	_, updated, err := f.server.handleUpdateBlock(ctx, nil, UpdateBlockInput{
		SiteID:     siteID,
		PageID:     page.ID,
		BlockID:    block.ID,
		Properties: map[string]any{"style": "dotted"},
	})
	require.NoError(t, err)
	assert.Equal(t, "dotted", updated.Block.(domain.Block).Properties["style"])

	_, state, err := f.server.handleRemoveBlock(ctx, nil, RemoveBlockInput{SiteID: siteID, PageID: page.ID, BlockID: block.ID})
	require.NoError(t, err)
	require.Len(t, state.Pages, 2)
	assert.Equal(t, 0, state.Pages[1].Blocks)

	_, _, err = f.server.handleAddBlock(ctx, nil, AddBlockInput{SiteID: siteID, BlockType: "carousel"})
	assert.ErrorIs(t, err, domain.ErrUnknownBlockType)
}

func TestPagesTools_RejectTemplateMode(t *testing.T) {
	f := newFixture(t)
	siteID := f.createSite(t, "")

	_, _, err := f.server.handleAddPage(context.Background(), nil, AddPageInput{SiteID: siteID, Title: "Programme"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHandleListBlockTypes(t *testing.T) {
	f := newFixture(t)

	_, all, err := f.server.handleListBlockTypes(context.Background(), nil, ListBlockTypesInput{})
	require.NoError(t, err)
	assert.Len(t, all.Types, len(domain.AllBlockTypes()))

	_, forms, err := f.server.handleListBlockTypes(context.Background(), nil, ListBlockTypesInput{Category: "form"})
	require.NoError(t, err)
	require.NotEmpty(t, forms.Types)
	for _, bt := range forms.Types {
		assert.Equal(t, "form", bt.Category)
	}
}
