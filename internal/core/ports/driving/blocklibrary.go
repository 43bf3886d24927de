package driving

import (
	"context"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// BlockLibrary is the catalog of block types and the factory for new blocks.
type BlockLibrary interface {
	// ListTypes returns the full catalog. The first call loads it from the
	// remote source, falling back to the built-in catalog. Never fails.
	ListTypes(ctx context.Context) []domain.BlockTypeDefinition

	// Definition returns the catalog entry for a type.
	Definition(ctx context.Context, blockType domain.BlockType) (domain.BlockTypeDefinition, error)

	// CreateInstance returns a new block with a fresh id and default properties.
	// Returns domain.ErrUnknownBlockType when the type is not in the catalog.
	CreateInstance(ctx context.Context, blockType domain.BlockType) (domain.Block, error)

	// CanHaveChildren reports whether the type is a container. Unknown types are not.
	CanHaveChildren(blockType domain.BlockType) bool

	// Validate returns one message per missing required field.
	Validate(ctx context.Context, block domain.Block) []string

	// RefreshCache reloads the catalog from the remote source.
	RefreshCache(ctx context.Context) error
}
