// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSites lists stored sites.
	ViewSites
	// ViewPages organises the pages of the open site.
	ViewPages
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSites:
		return "sites"
	case ViewPages:
		return "pages"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SitesLoaded carries the stored sites.
type SitesLoaded struct {
	Sites []domain.Site
	Err   error
}

// SiteOpened carries the editor state right after a site was opened.
type SiteOpened struct {
	Snapshot domain.EditorSnapshot
	Err      error
}

// PagesChanged carries the editor state after a page edit.
type PagesChanged struct {
	Snapshot domain.EditorSnapshot
	Err      error
}

// SiteSaved signals a commit finished.
type SiteSaved struct {
	Site *domain.Site
	Err  error
}

// SnapshotUpdated is forwarded from the editor subscription so the status
// bar follows background saves.
type SnapshotUpdated struct {
	Snapshot domain.EditorSnapshot
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
