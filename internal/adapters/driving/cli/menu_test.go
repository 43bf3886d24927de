package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func TestMenuShow(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	out, err := run(t, "menu", "show", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Menu (horizontal):")
	assert.Contains(t, out, "Accueil → Accueil")
}

func TestMenuSync_PicksUpRenamedPage(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)
	_, err := run(t, "page", "add", site.ID, "Programme")
	require.NoError(t, err)
	page := s.pagesOf(t, site.ID)[1]

	_, err = run(t, "page", "rename", site.ID, page.ID, "Le Jour J")
	require.NoError(t, err)

	// labels survive a rename until the menu is rebuilt
	out, err := run(t, "menu", "show", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Programme → Le Jour J")

	out, err = run(t, "menu", "sync", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Le Jour J → Le Jour J")
	assert.NotContains(t, out, "Programme")
}

func TestMenuSync_LeavesOutHiddenPages(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)
	_, err := run(t, "page", "add", site.ID, "Infos", "--hidden")
	require.NoError(t, err)

	out, err := run(t, "menu", "sync", site.ID)
	require.NoError(t, err)
	assert.NotContains(t, out, "Infos")
}

func TestMenuStyle(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	out, err := run(t, "menu", "style", site.ID, "vertical")
	require.NoError(t, err)
	assert.Contains(t, out, "Menu style set to vertical.")

	out, err = run(t, "menu", "show", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Menu (vertical):")

	// a rebuild keeps the chosen style
	out, err = run(t, "menu", "sync", site.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Menu (vertical):")
}

func TestMenuStyle_Invalid(t *testing.T) {
	s := setupTestServices(t)
	site := s.createSite(t, domain.ModePages)

	_, err := run(t, "menu", "style", site.ID, "zigzag")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPrintMenu_Empty(t *testing.T) {
	assert.Equal(t, "Menu is empty.\n", capturePrintMenu(nil, nil))
	assert.Equal(t, "Menu is empty.\n", capturePrintMenu(&domain.NavigationMenu{}, nil))
}

func TestPrintMenu_MissingPageAndHiddenItem(t *testing.T) {
	menu := &domain.NavigationMenu{
		Style: domain.MenuDropdown,
		Items: []domain.MenuItem{
			{ID: "m1", Label: "Accueil", PageID: "p1", Order: 1, IsVisible: true, Icon: "🏠"},
			{ID: "m2", Label: "Ancienne", PageID: "gone", Order: 2, IsVisible: false},
		},
	}
	pages := []domain.Page{{ID: "p1", Title: "Accueil"}}

	out := capturePrintMenu(menu, pages)
	assert.Contains(t, out, "Menu (dropdown):")
	assert.Contains(t, out, "1. 🏠 Accueil → Accueil")
	assert.Contains(t, out, "Ancienne → missing page (hidden)")
}

func capturePrintMenu(menu *domain.NavigationMenu, pages []domain.Page) string {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	printMenu(cmd, menu, pages)
	return buf.String()
}
