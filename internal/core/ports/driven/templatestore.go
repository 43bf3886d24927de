package driven

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// TemplateStore persists site templates.
type TemplateStore interface {
	// Save stores or updates a template.
	Save(ctx context.Context, tmpl domain.Template) error

	// Get retrieves a template by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Template, error)

	// GetBySlug retrieves a template by slug. Returns domain.ErrNotFound if absent.
	GetBySlug(ctx context.Context, slug string) (*domain.Template, error)

	// List returns all templates.
	List(ctx context.Context) ([]domain.Template, error)
}
