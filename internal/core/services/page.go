package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// NewPage builds the next page of a site. It is ordered after every existing
// page, shown in the menu, and marked homepage when it is the site's first.
func NewPage(siteID, title string, existing []domain.Page, now time.Time) domain.Page {
	return domain.Page{
		ID:        uuid.NewString(),
		SiteID:    siteID,
		Title:     title,
		Slug:      uniquePageSlug(existing, Slugify(title), ""),
		Order:     domain.NextPageOrder(existing),
		Structure: []domain.Block{},
		Meta: domain.PageMeta{
			ShowInMenu: true,
			IsHomepage: len(existing) == 0,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
