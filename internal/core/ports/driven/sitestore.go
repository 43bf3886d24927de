package driven

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// SiteStore persists sites. Implementations store and return copies,
// never references to the caller's values.
type SiteStore interface {
	// Save stores or updates a site.
	Save(ctx context.Context, site domain.Site) error

	// Get retrieves a site by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Site, error)

	// SaveContent replaces a site's data record and theme overrides and
	// returns the stored site.
	SaveContent(ctx context.Context, id string, data domain.DataRecord, overrides domain.ThemeOverrides) (*domain.Site, error)

	// Delete removes a site.
	Delete(ctx context.Context, id string) error

	// List returns all sites.
	List(ctx context.Context) ([]domain.Site, error)
}
