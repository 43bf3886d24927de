package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// Ensure NavigationStore implements the interface.
var _ driven.NavigationStore = (*NavigationStore)(nil)

// NavigationStore is an in-memory implementation of driven.NavigationStore.
type NavigationStore struct {
	mu    sync.RWMutex
	menus map[string]domain.NavigationMenu
}

// NewNavigationStore creates a new in-memory navigation store.
func NewNavigationStore() *NavigationStore {
	return &NavigationStore{
		menus: make(map[string]domain.NavigationMenu),
	}
}

// Save stores or replaces a site's menu.
func (s *NavigationStore) Save(_ context.Context, menu domain.NavigationMenu) error {
	if menu.SiteID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[menu.SiteID] = menu.Clone()
	return nil
}

// Get retrieves a site's menu.
func (s *NavigationStore) Get(_ context.Context, siteID string) (*domain.NavigationMenu, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	menu, ok := s.menus[siteID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := menu.Clone()
	return &out, nil
}
