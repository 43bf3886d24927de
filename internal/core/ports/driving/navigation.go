package driving

import "github.com/custodia-labs/sitesmith/internal/core/domain"

// NavigationSynchronizer derives and repairs a site's menu from its pages.
type NavigationSynchronizer interface {
	// GenerateFromPages builds a fresh menu from show-in-menu pages.
	GenerateFromPages(siteID string, pages []domain.Page) domain.NavigationMenu

	// SyncMenuWithPages repairs an existing menu without discarding manual edits.
	// It never deletes items.
	SyncMenuWithPages(menu domain.NavigationMenu, pages []domain.Page) domain.NavigationMenu

	// PruneOrphans drops items whose page no longer exists.
	PruneOrphans(menu domain.NavigationMenu, pages []domain.Page) domain.NavigationMenu

	// Repair generates a menu when there is none, otherwise syncs and prunes it.
	Repair(siteID string, menu *domain.NavigationMenu, pages []domain.Page) domain.NavigationMenu

	// AddPageItem appends an item for a page.
	AddPageItem(menu domain.NavigationMenu, page domain.Page) domain.NavigationMenu

	// RemovePageItem drops the items pointing at a page.
	RemovePageItem(menu domain.NavigationMenu, pageID string) domain.NavigationMenu

	// ReorderItems renumbers items to match ids; omitted items are dropped.
	ReorderItems(menu domain.NavigationMenu, itemIDs []string) domain.NavigationMenu
}
