package driven

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// PageStore persists the pages of multi-page sites.
type PageStore interface {
	// Save stores or updates a page.
	Save(ctx context.Context, page domain.Page) error

	// Get retrieves a page. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, siteID, pageID string) (*domain.Page, error)

	// Update applies a partial update and returns the stored page.
	Update(ctx context.Context, siteID, pageID string, update domain.PageUpdate) (*domain.Page, error)

	// Delete removes a page.
	Delete(ctx context.Context, siteID, pageID string) error

	// ListBySite returns a site's pages sorted by order.
	ListBySite(ctx context.Context, siteID string) ([]domain.Page, error)
}
