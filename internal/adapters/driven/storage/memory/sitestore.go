package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// Ensure SiteStore implements the interface.
var _ driven.SiteStore = (*SiteStore)(nil)

// SiteStore is an in-memory implementation of driven.SiteStore.
// Sites are copied on the way in and out.
type SiteStore struct {
	mu    sync.RWMutex
	sites map[string]domain.Site
}

// NewSiteStore creates a new in-memory site store.
func NewSiteStore() *SiteStore {
	return &SiteStore{
		sites: make(map[string]domain.Site),
	}
}

// Save stores or updates a site.
func (s *SiteStore) Save(_ context.Context, site domain.Site) error {
	if site.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[site.ID] = site.Clone()
	return nil
}

// Get retrieves a site by ID.
func (s *SiteStore) Get(_ context.Context, id string) (*domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := site.Clone()
	return &out, nil
}

// SaveContent replaces the data record and theme overrides of a stored site.
func (s *SiteStore) SaveContent(
	_ context.Context,
	id string,
	data domain.DataRecord,
	overrides domain.ThemeOverrides,
) (*domain.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	site.Data = data.Clone()
	site.ThemeOverrides = overrides.Clone()
	site.UpdatedAt = time.Now()
	s.sites[id] = site
	out := site.Clone()
	return &out, nil
}

// Delete removes a site.
func (s *SiteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sites, id)
	return nil
}

// List returns all sites, oldest first.
func (s *SiteStore) List(_ context.Context) ([]domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Site, 0, len(s.sites))
	for _, site := range s.sites {
		result = append(result, site.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
