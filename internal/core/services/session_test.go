package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

type sessionFixture struct {
	sites     *memory.SiteStore
	pages     *memory.PageStore
	templates *memory.TemplateStore
	menus     *memory.NavigationStore
	editor    *Editor
	service   *SessionService
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		sites:     memory.NewSiteStore(),
		pages:     memory.NewPageStore(),
		templates: memory.NewTemplateStore(),
		menus:     memory.NewNavigationStore(),
	}
	require.NoError(t, f.templates.Save(context.Background(), testTemplate()))

	library := NewBlockLibrary(nil)
	merge := NewMergeEngine()
	nav := NewNavigationService(domain.MenuHorizontal)
	f.editor = NewEditor(library, merge, nav)
	f.service = NewSessionService(SessionStores{
		Sites:     f.sites,
		Pages:     f.pages,
		Templates: f.templates,
		Menus:     f.menus,
	}, f.editor, library, merge, nav)
	return f
}

// failingSiteStore fails every content save.
type failingSiteStore struct {
	*memory.SiteStore
}

func (s failingSiteStore) SaveContent(
	context.Context, string, domain.DataRecord, domain.ThemeOverrides,
) (*domain.Site, error) {
	return nil, errors.New("database is locked")
}

func TestSessionService_CreateSite_TemplateMode(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", "")

	require.NoError(t, err)
	assert.NotEmpty(t, site.ID)
	assert.Equal(t, "marie-jean", site.Slug)
	assert.Equal(t, domain.ModeTemplate, site.Mode)
	assert.Equal(t, "Marie & Jean", site.Data.String("couple_name"))

	stored, err := f.sites.Get(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, site.Slug, stored.Slug)

	pages, err := f.pages.ListBySite(ctx, site.ID)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestSessionService_CreateSite_PagesMode(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", domain.ModePages)
	require.NoError(t, err)

	pages, err := f.pages.ListBySite(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Accueil", pages[0].Title)
	assert.True(t, pages[0].Meta.IsHomepage)
	assert.Len(t, pages[0].Structure, len(testTemplate().Structure))
	assertNoSlotKeys(t, pages[0].Structure)

	invitation, ok := FindBlock(pages[0].Structure, "invitation-1")
	require.True(t, ok)
	assert.Equal(t, "Marie & Jean", invitation.Properties["name"])
	hero, ok := FindBlock(pages[0].Structure, "hero-1")
	require.True(t, ok)
	assert.Equal(t, "", hero.Properties["backgroundImage"])

	menu, err := f.menus.Get(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, pages[0].ID, menu.Items[0].PageID)
}

func TestSessionService_CreateSite_Errors(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateSite(ctx, "missing", "Marie & Jean", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrPersistence)

	_, err = f.service.CreateSite(ctx, "tmpl-1", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", "gallery")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionService_TemplateSessionRoundTrip(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", "")
	require.NoError(t, err)

	require.NoError(t, f.service.Open(ctx, site.ID))
	assert.Equal(t, domain.ModeTemplate, f.editor.Snapshot().Mode)

	f.editor.UpdateDataField("wedding_date", "2027-06-12")
	require.NoError(t, f.editor.SetColor(domain.ColorPrimary, "#123456"))

	saved, err := f.service.Commit(ctx)

	require.NoError(t, err)
	assert.Equal(t, "2027-06-12", saved.Data.String("wedding_date"))
	assert.Equal(t, domain.StatusClean, f.editor.Snapshot().Status())

	stored, err := f.sites.Get(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, "2027-06-12", stored.Data.String("wedding_date"))
	assert.Equal(t, map[domain.ColorRole]string{domain.ColorPrimary: "#123456"}, stored.ThemeOverrides.Colors,
		"only roles differing from the template theme are stored")
}

func TestSessionService_PagesSessionRoundTrip(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", domain.ModePages)
	require.NoError(t, err)

	require.NoError(t, f.service.Open(ctx, site.ID))
	s := f.editor.Snapshot()
	require.Equal(t, domain.ModePages, s.Mode)
	require.Len(t, s.Pages, 1)
	assert.NotEmpty(t, s.BlockLibrary)
	require.NotNil(t, s.Menu)
	home := s.Pages[0].ID

	faq, err := f.editor.CreatePage("Questions fréquentes")
	require.NoError(t, err)
	_, err = f.editor.AddBlockOfType(ctx, faq.ID, domain.BlockFAQSection, -1)
	require.NoError(t, err)

	_, err = f.service.Commit(ctx)
	require.NoError(t, err)

	pages, err := f.pages.ListBySite(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "questions-frequentes", pages[1].Slug)
	require.Len(t, pages[1].Structure, 1)
	assert.Equal(t, domain.BlockFAQSection, pages[1].Structure[0].Type)

	menu, err := f.menus.Get(ctx, site.ID)
	require.NoError(t, err)
	assert.Len(t, menu.Items, 2)

	require.NoError(t, f.editor.RemovePage(home))
	_, err = f.service.Commit(ctx)
	require.NoError(t, err)

	pages, err = f.pages.ListBySite(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, faq.ID, pages[0].ID)
	assert.True(t, pages[0].Meta.IsHomepage)

	menu, err = f.menus.Get(ctx, site.ID)
	require.NoError(t, err)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, faq.ID, menu.Items[0].PageID)
}

func TestSessionService_OpenPagesSession_GeneratesMissingMenu(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	site := domain.Site{ID: "site-1", TemplateID: "tmpl-1", CoupleName: "A & B", Mode: domain.ModePages}
	require.NoError(t, f.sites.Save(ctx, site))
	require.NoError(t, f.pages.Save(ctx, domain.Page{ID: "p1", SiteID: "site-1", Title: "Accueil", Order: 1,
		Meta: domain.PageMeta{ShowInMenu: true, IsHomepage: true}}))

	require.NoError(t, f.service.OpenPagesSession(ctx, "site-1"))

	menu := f.editor.Snapshot().Menu
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, "Accueil", menu.Items[0].Label)
}

func TestSessionService_OpenPagesSession_KeepsOverrideMatchingDefault(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	tmpl := testTemplate()
	tmpl.ID = "tmpl-dark"
	tmpl.DefaultTheme = domain.Theme{Colors: domain.ThemeColors{Primary: "#112233"}}
	require.NoError(t, f.templates.Save(ctx, tmpl))

	defaultPrimary := domain.DefaultTheme().Colors.Primary
	site := domain.Site{
		ID:         "site-dark",
		TemplateID: "tmpl-dark",
		CoupleName: "A & B",
		Mode:       domain.ModePages,
		ThemeOverrides: domain.ThemeOverrides{
			Colors: map[domain.ColorRole]string{domain.ColorPrimary: defaultPrimary},
		},
	}
	require.NoError(t, f.sites.Save(ctx, site))

	var seen []string
	cancel := f.editor.Subscribe(func(s domain.EditorSnapshot) {
		seen = append(seen, s.Theme.Colors.Primary)
	})
	defer cancel()

	require.NoError(t, f.service.OpenPagesSession(ctx, "site-dark"))

	s := f.editor.Snapshot()
	assert.Equal(t, defaultPrimary, s.Theme.Colors.Primary)
	assert.Equal(t, "#112233", s.BaseTheme.Colors.Primary)
	assert.Equal(t, domain.DefaultTheme().Colors.Secondary, s.Theme.Colors.Secondary)
	require.NotEmpty(t, seen)
	for _, primary := range seen {
		assert.Equal(t, defaultPrimary, primary)
	}
}

func TestSessionService_Open_NotFound(t *testing.T) {
	f := newSessionFixture(t)
	err := f.service.Open(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_SaveFailureIsPersistenceError(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", "")
	require.NoError(t, err)
	require.NoError(t, f.service.Open(ctx, site.ID))

	f.service.sites = failingSiteStore{SiteStore: f.sites}
	f.editor.UpdateDataField("wedding_date", "2027-06-12")

	_, err = f.service.Commit(ctx)

	require.ErrorIs(t, err, domain.ErrPersistence)
	s := f.editor.Snapshot()
	assert.Equal(t, domain.StatusError, s.Status())
	assert.True(t, s.IsDirty)
	assert.Equal(t, "2027-06-12", s.Data.String("wedding_date"), "edits survive a failed save")
}

func TestSessionService_Save_NoSession(t *testing.T) {
	f := newSessionFixture(t)
	_, err := f.service.Save(context.Background(), domain.EditorSnapshot{})
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSessionService_CreatePage(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", domain.ModePages)
	require.NoError(t, err)

	page, err := f.service.CreatePage(ctx, site.ID, "Programme")

	require.NoError(t, err)
	assert.Equal(t, "programme", page.Slug)
	assert.Equal(t, 2, page.Order)
	assert.False(t, page.Meta.IsHomepage)

	menu, err := f.menus.Get(ctx, site.ID)
	require.NoError(t, err)
	_, ok := menu.ItemForPage(page.ID)
	assert.True(t, ok)

	_, err = f.service.CreatePage(ctx, site.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.service.CreatePage(ctx, "missing", "Programme")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionService_Publish(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	site, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", "")
	require.NoError(t, err)

	_, err = f.service.Publish(ctx, site.ID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Messages, 2, "wedding date and faqs are missing")

	_, err = f.sites.SaveContent(ctx, site.ID, testData(), domain.ThemeOverrides{})
	require.NoError(t, err)

	published, err := f.service.Publish(ctx, site.ID)

	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	require.NotNil(t, published.PublishedAt)
}

func TestSessionService_Lists(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	_, err := f.service.CreateSite(ctx, "tmpl-1", "Marie & Jean", "")
	require.NoError(t, err)

	sites, err := f.service.ListSites(ctx)
	require.NoError(t, err)
	assert.Len(t, sites, 1)

	templates, err := f.service.ListTemplates(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, 1)
}

func TestSessionService_NilStores(t *testing.T) {
	s := NewSessionService(SessionStores{}, NewEditor(nil, nil, nil), nil, nil, nil)
	ctx := context.Background()

	_, err := s.CreateSite(ctx, "tmpl-1", "A", "")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = s.ListSites(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func assertNoSlotKeys(t *testing.T, blocks []domain.Block) {
	t.Helper()
	var walkProps func(props map[string]any, blockID string)
	walkProps = func(props map[string]any, blockID string) {
		for key, value := range props {
			assert.False(t, strings.HasSuffix(key, "Slot"), "block %s keeps slot key %s", blockID, key)
			if nested, ok := value.(map[string]any); ok {
				walkProps(nested, blockID)
			}
		}
	}
	for _, b := range blocks {
		walkProps(b.Properties, b.ID)
		assertNoSlotKeys(t, b.Children)
	}
}
