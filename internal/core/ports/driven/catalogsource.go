package driven

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// BlockCatalogSource supplies the block type catalog from outside the process.
// Fetches may fail; the block library falls back to its built-in catalog.
type BlockCatalogSource interface {
	// FetchBlockTypeCatalog returns every block type definition the source knows.
	FetchBlockTypeCatalog(ctx context.Context) ([]domain.BlockTypeDefinition, error)
}
