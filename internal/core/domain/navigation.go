package domain

// MenuStyle is the display style of the navigation menu.
type MenuStyle string

// Menu styles.
const (
	MenuHorizontal MenuStyle = "horizontal"
	MenuVertical   MenuStyle = "vertical"
	MenuDropdown   MenuStyle = "dropdown"
)

// IsValid returns true if the style is recognised.
func (s MenuStyle) IsValid() bool {
	switch s {
	case MenuHorizontal, MenuVertical, MenuDropdown:
		return true
	default:
		return false
	}
}

// AllMenuStyles returns the menu styles in display order.
func AllMenuStyles() []MenuStyle {
	return []MenuStyle{MenuHorizontal, MenuVertical, MenuDropdown}
}

// MenuItem points at one page.
type MenuItem struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	PageID    string `json:"pageId"`
	Order     int    `json:"order"`
	IsVisible bool   `json:"isVisible"`
	Icon      string `json:"icon,omitempty"`
}

// NavigationMenu is derived from a site's pages; manual edits to labels,
// order and visibility are kept across syncs.
type NavigationMenu struct {
	SiteID string     `json:"site_id"`
	Items  []MenuItem `json:"items"`
	Style  MenuStyle  `json:"style"`
}

// Clone returns a deep copy of the menu.
func (m NavigationMenu) Clone() NavigationMenu {
	out := m
	if m.Items != nil {
		out.Items = append([]MenuItem(nil), m.Items...)
	}
	return out
}

// ItemForPage returns the first item pointing at pageID.
func (m NavigationMenu) ItemForPage(pageID string) (MenuItem, bool) {
	for _, item := range m.Items {
		if item.PageID == pageID {
			return item, true
		}
	}
	return MenuItem{}, false
}
