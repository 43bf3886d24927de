package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore is an in-memory implementation of driven.TemplateStore.
type TemplateStore struct {
	mu        sync.RWMutex
	templates map[string]domain.Template
}

// NewTemplateStore creates a new in-memory template store.
func NewTemplateStore() *TemplateStore {
	return &TemplateStore{
		templates: make(map[string]domain.Template),
	}
}

// Save stores or updates a template.
func (s *TemplateStore) Save(_ context.Context, tmpl domain.Template) error {
	if tmpl.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.ID] = tmpl.Clone()
	return nil
}

// Get retrieves a template by ID.
func (s *TemplateStore) Get(_ context.Context, id string) (*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tmpl, ok := s.templates[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := tmpl.Clone()
	return &out, nil
}

// GetBySlug retrieves a template by slug.
func (s *TemplateStore) GetBySlug(_ context.Context, slug string) (*domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, tmpl := range s.templates {
		if tmpl.Slug == slug {
			out := tmpl.Clone()
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all templates sorted by name.
func (s *TemplateStore) List(_ context.Context) ([]domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Template, 0, len(s.templates))
	for _, tmpl := range s.templates {
		result = append(result, tmpl.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}
