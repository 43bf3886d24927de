package driving

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// SessionService loads editing sessions from persistence and saves them back.
type SessionService interface {
	// CreateSite creates a site from a template. In pages mode the site starts
	// with a homepage and a generated menu.
	CreateSite(ctx context.Context, templateID, coupleName string, mode domain.SiteMode) (*domain.Site, error)

	// OpenTemplateSession loads a site and its template into the editor.
	OpenTemplateSession(ctx context.Context, siteID string) error

	// OpenPagesSession loads a site, its pages, the block catalog and the menu
	// into the editor.
	OpenPagesSession(ctx context.Context, siteID string) error

	// Open loads a site in the mode it was created with.
	Open(ctx context.Context, siteID string) error

	// Save persists a snapshot: site content, pages and menu.
	Save(ctx context.Context, snapshot domain.EditorSnapshot) (*domain.Site, error)

	// Commit saves the editor's current state through the save lifecycle.
	Commit(ctx context.Context) (*domain.Site, error)

	// CreatePage adds a page to a stored site and repairs its menu.
	CreatePage(ctx context.Context, siteID, title string) (*domain.Page, error)

	// Publish marks a site as published.
	Publish(ctx context.Context, siteID string) (*domain.Site, error)

	// ListSites returns all sites.
	ListSites(ctx context.Context) ([]domain.Site, error)

	// ListTemplates returns all templates.
	ListTemplates(ctx context.Context) ([]domain.Template, error)
}
