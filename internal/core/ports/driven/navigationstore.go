package driven

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// NavigationStore persists one navigation menu per site.
type NavigationStore interface {
	// Save stores or replaces the site's menu.
	Save(ctx context.Context, menu domain.NavigationMenu) error

	// Get retrieves the site's menu. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, siteID string) (*domain.NavigationMenu, error)
}
