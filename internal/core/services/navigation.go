package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// Ensure NavigationService implements the interface.
var _ driving.NavigationSynchronizer = (*NavigationService)(nil)

// NavigationService derives a site's menu from its pages and keeps it in
// step with page edits without discarding manual menu changes.
type NavigationService struct {
	style domain.MenuStyle
}

// NewNavigationService creates a navigation service. Generated menus use
// style, or horizontal when style is not a known style.
func NewNavigationService(style domain.MenuStyle) *NavigationService {
	if !style.IsValid() {
		style = domain.MenuHorizontal
	}
	return &NavigationService{style: style}
}

// GenerateFromPages builds a fresh menu from the pages shown in the menu,
// in ascending page order, numbered 1..n.
func (s *NavigationService) GenerateFromPages(siteID string, pages []domain.Page) domain.NavigationMenu {
	menu := domain.NavigationMenu{
		SiteID: siteID,
		Items:  []domain.MenuItem{},
		Style:  s.style,
	}
	for _, page := range menuPages(pages) {
		menu.Items = append(menu.Items, newMenuItem(page, len(menu.Items)+1))
	}
	return menu
}

// SyncMenuWithPages keeps every existing item's id, label and order. Items
// whose page still exists get the page's visibility and icon; pages that
// belong in the menu but have no item are appended in page order. Items
// pointing at deleted pages are left for PruneOrphans.
func (s *NavigationService) SyncMenuWithPages(menu domain.NavigationMenu, pages []domain.Page) domain.NavigationMenu {
	out := menu.Clone()
	if out.Items == nil {
		out.Items = []domain.MenuItem{}
	}

	byID := make(map[string]domain.Page, len(pages))
	for _, page := range pages {
		byID[page.ID] = page
	}

	covered := make(map[string]bool, len(out.Items))
	maxOrder := 0
	for i := range out.Items {
		item := &out.Items[i]
		covered[item.PageID] = true
		if item.Order > maxOrder {
			maxOrder = item.Order
		}
		if page, ok := byID[item.PageID]; ok {
			item.IsVisible = page.Meta.ShowInMenu
			item.Icon = page.Meta.Icon
		}
	}

	for _, page := range menuPages(pages) {
		if covered[page.ID] {
			continue
		}
		maxOrder++
		out.Items = append(out.Items, newMenuItem(page, maxOrder))
	}
	return out
}

// PruneOrphans drops items whose page is not in pages.
func (s *NavigationService) PruneOrphans(menu domain.NavigationMenu, pages []domain.Page) domain.NavigationMenu {
	exists := make(map[string]bool, len(pages))
	for _, page := range pages {
		exists[page.ID] = true
	}

	out := menu.Clone()
	out.Items = make([]domain.MenuItem, 0, len(menu.Items))
	for _, item := range menu.Items {
		if exists[item.PageID] {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// Repair returns a menu consistent with pages: generated when there is no
// menu yet, otherwise synced and pruned.
func (s *NavigationService) Repair(siteID string, menu *domain.NavigationMenu, pages []domain.Page) domain.NavigationMenu {
	if menu == nil {
		return s.GenerateFromPages(siteID, pages)
	}
	return s.PruneOrphans(s.SyncMenuWithPages(*menu, pages), pages)
}

// AddPageItem appends an item for page at the end of the menu.
func (s *NavigationService) AddPageItem(menu domain.NavigationMenu, page domain.Page) domain.NavigationMenu {
	out := menu.Clone()
	item := newMenuItem(page, len(out.Items)+1)
	item.IsVisible = page.Meta.ShowInMenu
	out.Items = append(out.Items, item)
	return out
}

// RemovePageItem drops every item pointing at pageID.
func (s *NavigationService) RemovePageItem(menu domain.NavigationMenu, pageID string) domain.NavigationMenu {
	out := menu.Clone()
	out.Items = make([]domain.MenuItem, 0, len(menu.Items))
	for _, item := range menu.Items {
		if item.PageID != pageID {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// ReorderItems renumbers the items named by itemIDs 1..n in that order.
// Items not named are dropped and unknown ids are ignored.
func (s *NavigationService) ReorderItems(menu domain.NavigationMenu, itemIDs []string) domain.NavigationMenu {
	byID := make(map[string]domain.MenuItem, len(menu.Items))
	for _, item := range menu.Items {
		byID[item.ID] = item
	}

	out := menu.Clone()
	out.Items = make([]domain.MenuItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		item, ok := byID[id]
		if !ok {
			continue
		}
		delete(byID, id)
		item.Order = len(out.Items) + 1
		out.Items = append(out.Items, item)
	}
	return out
}

// menuPages returns the pages shown in the menu, sorted by order.
func menuPages(pages []domain.Page) []domain.Page {
	var out []domain.Page
	for _, page := range pages {
		if page.Meta.ShowInMenu {
			out = append(out, page)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

func newMenuItem(page domain.Page, order int) domain.MenuItem {
	return domain.MenuItem{
		ID:        newMenuItemID(),
		Label:     page.Title,
		PageID:    page.ID,
		Order:     order,
		IsVisible: true,
		Icon:      page.Meta.Icon,
	}
}

func newMenuItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("menu-item-%s", id)
}
