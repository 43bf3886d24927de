package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// pagesOf reloads a site and returns its pages in order.
func (s *testServices) pagesOf(t *testing.T, siteID string) []domain.Page {
	t.Helper()
	require.NoError(t, s.session.Open(context.Background(), siteID))
	return s.editor.Snapshot().Pages
}

func TestPageAdd(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	out, err := run(t, "page", "add", site.ID, "Programme")
	require.NoError(t, err)
	assert.Contains(t, out, "Page added: ")
	assert.Contains(t, out, "  Title: Programme")
	assert.Contains(t, out, "  Slug:  /programme")

	pages := s.pagesOf(t, site.ID)
	require.Len(t, pages, 2)
	assert.Equal(t, "Programme", pages[1].Title)
	assert.True(t, pages[1].Meta.ShowInMenu)
	assert.False(t, pages[1].Meta.IsHomepage)
}

func TestPageAdd_Hidden(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	_, err := run(t, "page", "add", site.ID, "Infos pratiques", "--hidden")
	require.NoError(t, err)

	pages := s.pagesOf(t, site.ID)
	require.Len(t, pages, 2)
	assert.False(t, pages[1].Meta.ShowInMenu)

	out, err := run(t, "page", "list", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, " hidden")
}

func TestPageCommands_RequirePagesMode(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModeTemplate)

	for _, args := range [][]string{
		{"page", "add", site.ID, "Programme"},
		{"page", "list", site.ID},
		{"menu", "show", site.ID},
		{"block", "add", site.ID, "divider"},
	} {
		t.Run(strings.Join(args[:2], " "), func(t *testing.T) {
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "this command needs a pages-mode site")
		})
	}
}

func TestPageList(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	out, err := run(t, "page", "list", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Accueil")
	assert.Contains(t, out, " home")
}

func TestPageRemove_PromotesHomepage(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)
	_, err := run(t, "page", "add", site.ID, "Programme")
	require.NoError(t, err)

	home := s.pagesOf(t, site.ID)[0]
	require.True(t, home.Meta.IsHomepage)

	out, err := run(t, "page", "remove", site.ID, home.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Page "+home.ID+" removed.")

	pages := s.pagesOf(t, site.ID)
	require.Len(t, pages, 1)
	assert.Equal(t, "Programme", pages[0].Title)
	assert.True(t, pages[0].Meta.IsHomepage)
}

func TestPageReorder(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)
	_, err := run(t, "page", "add", site.ID, "Programme")
	require.NoError(t, err)
	_, err = run(t, "page", "add", site.ID, "Hébergement")
	require.NoError(t, err)

	pages := s.pagesOf(t, site.ID)
	require.Len(t, pages, 3)

	out, err := run(t, "page", "reorder", site.ID, pages[2].ID, pages[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Hébergement")

	reordered := s.pagesOf(t, site.ID)
	assert.Equal(t, []string{pages[2].ID, pages[0].ID, pages[1].ID},
		[]string{reordered[0].ID, reordered[1].ID, reordered[2].ID})
	assert.Equal(t, 1, reordered[0].Order)
	assert.Equal(t, 3, reordered[2].Order)
}

func TestCompleteOrder(t *testing.T) {
	pages := []domain.Page{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	assert.Equal(t, []string{"c", "a", "b"}, completeOrder([]string{"c"}, pages))
	assert.Equal(t, []string{"b", "a", "c"}, completeOrder([]string{"b", "a"}, pages))
	assert.Equal(t, []string{"x", "a", "b", "c"}, completeOrder([]string{"x"}, pages))
}

func TestPageRename(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)
	_, err := run(t, "page", "add", site.ID, "Programme")
	require.NoError(t, err)
	page := s.pagesOf(t, site.ID)[1]

	out, err := run(t, "page", "rename", site.ID, page.ID, "Déroulé de la journée")
	require.NoError(t, err)
	assert.Contains(t, out, `renamed to "Déroulé de la journée"`)

	renamed := s.pagesOf(t, site.ID)[1]
	assert.Equal(t, "Déroulé de la journée", renamed.Title)
	assert.Equal(t, "deroule-de-la-journee", renamed.Slug)
}

func TestPageRemove_Missing(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	_, err := run(t, "page", "remove", site.ID, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to remove page")
}
