package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// PageStore is an in-memory implementation of driven.PageStore.
type PageStore struct {
	mu sync.RWMutex
	// pages is keyed by site ID, then page ID.
	pages map[string]map[string]domain.Page
}

// NewPageStore creates a new in-memory page store.
func NewPageStore() *PageStore {
	return &PageStore{
		pages: make(map[string]map[string]domain.Page),
	}
}

// Save stores or updates a page.
func (s *PageStore) Save(_ context.Context, page domain.Page) error {
	if page.ID == "" || page.SiteID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.pages[page.SiteID]
	if !ok {
		site = make(map[string]domain.Page)
		s.pages[page.SiteID] = site
	}
	site[page.ID] = page.Clone()
	return nil
}

// Get retrieves a page.
func (s *PageStore) Get(_ context.Context, siteID, pageID string) (*domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[siteID][pageID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := page.Clone()
	return &out, nil
}

// Update applies a partial update to a stored page.
func (s *PageStore) Update(
	_ context.Context,
	siteID, pageID string,
	update domain.PageUpdate,
) (*domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	page, ok := s.pages[siteID][pageID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	page = update.ApplyTo(page)
	page.UpdatedAt = time.Now()
	s.pages[siteID][pageID] = page
	out := page.Clone()
	return &out, nil
}

// Delete removes a page.
func (s *PageStore) Delete(_ context.Context, siteID, pageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages[siteID], pageID)
	return nil
}

// ListBySite returns a site's pages sorted by order.
func (s *PageStore) ListBySite(_ context.Context, siteID string) ([]domain.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Page, 0, len(s.pages[siteID]))
	for _, page := range s.pages[siteID] {
		result = append(result, page.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
