package driving

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// SnapshotListener receives every editor state transition in order.
type SnapshotListener func(snapshot domain.EditorSnapshot)

// Editor is the single source of truth for one editing session.
// Every mutation produces a new snapshot and notifies subscribers.
type Editor interface {
	// InitTemplateMode starts a session on a site and its template.
	InitTemplateMode(site domain.Site, tmpl domain.Template)

	// InitPagesMode starts a multi-page session with the site's overrides
	// layered on base.
	InitPagesMode(
		site domain.Site,
		pages []domain.Page,
		catalog []domain.BlockTypeDefinition,
		menu *domain.NavigationMenu,
		base domain.Theme,
	)

	// Reset discards the session.
	Reset()

	// Snapshot returns a deep copy of the current state.
	Snapshot() domain.EditorSnapshot

	// Subscribe registers a listener and returns a function that removes it.
	Subscribe(listener SnapshotListener) (unsubscribe func())

	// Derived views, always consistent with Snapshot.
	Theme() domain.Theme
	CurrentPage() (domain.Page, bool)
	CurrentBlock() (domain.Block, bool)

	// SetMode switches between template and pages mode.
	SetMode(mode domain.SiteMode) error

	// SetBaseTheme sets the theme the site's overrides are layered on and
	// re-derives the current theme. It does not mark the session dirty.
	SetBaseTheme(theme domain.Theme)

	// SetBlockLibrary replaces the catalog shown in pages mode.
	SetBlockLibrary(catalog []domain.BlockTypeDefinition)

	// Data record edits.
	UpdateData(data domain.DataRecord)
	UpdateDataField(field string, value any)
	UpdateDataFields(fields domain.DataRecord)

	// Theme edits.
	UpdateTheme(theme domain.Theme)
	SetColor(role domain.ColorRole, value string) error
	SetFont(role domain.FontRole, value string) error

	// Save lifecycle.
	StartSaving() (revision uint64)
	FinishSaving(site *domain.Site, revision uint64)
	FailSaving(err error)
	ClearError()

	// Pages.
	CreatePage(title string) (domain.Page, error)
	AddPage(page domain.Page) error
	UpdatePage(pageID string, update domain.PageUpdate) error
	RemovePage(pageID string) error
	ReorderPages(pageIDs []string)
	SetCurrentPage(pageID string) error
	SetCurrentBlock(blockID string) error

	// Blocks. An empty pageID targets the current page (or the template in
	// template mode).
	AddBlock(pageID string, block domain.Block, at int) error
	AddBlockOfType(ctx context.Context, pageID string, blockType domain.BlockType, at int) (domain.Block, error)
	AddChildBlock(pageID, parentID string, block domain.Block, at int) error
	UpdateBlockProperties(pageID, blockID string, props map[string]any) error
	RemoveBlock(pageID, blockID string) error
	ReorderBlocks(pageID, parentID string, blockIDs []string) error
	MoveBlock(fromPageID, toPageID, blockID string, at int) error

	// Navigation.
	SetNavigationMenu(menu domain.NavigationMenu)
	UpdateNavigationMenu(items []domain.MenuItem, style domain.MenuStyle) error
	RegenerateNavigation() error

	// Derived views.
	Preview() (*domain.MergedSite, error)
	PreviewPage(pageID string) (*domain.MergedPage, error)
	Validate(ctx context.Context) []string
}
