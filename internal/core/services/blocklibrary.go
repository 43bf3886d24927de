package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Ensure BlockLibrary implements the interface.
var _ driving.BlockLibrary = (*BlockLibrary)(nil)

// BlockLibrary is the process-wide block type catalog. It loads once, on
// first use, and only RefreshCache replaces it afterwards.
type BlockLibrary struct {
	source driven.BlockCatalogSource

	mu      sync.RWMutex
	loaded  bool
	catalog []domain.BlockTypeDefinition
	byType  map[domain.BlockType]domain.BlockTypeDefinition
}

// NewBlockLibrary creates a block library. A nil source means the built-in
// catalog is always used.
func NewBlockLibrary(source driven.BlockCatalogSource) *BlockLibrary {
	return &BlockLibrary{source: source}
}

// ListTypes returns a copy of the catalog, loading it on first call.
func (l *BlockLibrary) ListTypes(ctx context.Context) []domain.BlockTypeDefinition {
	l.ensureLoaded(ctx)

	l.mu.RLock()
	defer l.mu.RUnlock()
	return domain.CloneCatalog(l.catalog)
}

// Definition returns the catalog entry for a block type.
func (l *BlockLibrary) Definition(ctx context.Context, blockType domain.BlockType) (domain.BlockTypeDefinition, error) {
	l.ensureLoaded(ctx)

	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.byType[blockType]
	if !ok {
		return domain.BlockTypeDefinition{}, fmt.Errorf("%w: %s", domain.ErrUnknownBlockType, blockType)
	}
	return def.Clone(), nil
}

// CreateInstance returns a new block of the given type with a fresh id and
// a deep copy of the type's default properties.
func (l *BlockLibrary) CreateInstance(ctx context.Context, blockType domain.BlockType) (domain.Block, error) {
	def, err := l.Definition(ctx, blockType)
	if err != nil {
		return domain.Block{}, err
	}

	block := domain.Block{
		ID:         NewBlockID(blockType),
		Type:       blockType,
		Properties: domain.CloneProperties(def.DefaultProperties),
	}
	if block.Properties == nil {
		block.Properties = map[string]any{}
	}
	if l.CanHaveChildren(blockType) {
		block.Children = []domain.Block{}
	}
	return block, nil
}

// CanHaveChildren reports whether blocks of this type may hold children.
// Unknown types return false.
func (l *BlockLibrary) CanHaveChildren(blockType domain.BlockType) bool {
	return blockType.IsContainer()
}

// Validate returns one message per required field the block leaves empty.
// An unknown type yields a single message.
func (l *BlockLibrary) Validate(ctx context.Context, block domain.Block) []string {
	def, err := l.Definition(ctx, block.Type)
	if err != nil {
		return []string{fmt.Sprintf("Type de bloc inconnu: %s", block.Type)}
	}

	var messages []string
	for _, field := range def.EditableFields {
		if field.Required && domain.IsEmptyValue(block.Properties[field.Name]) {
			messages = append(messages, fmt.Sprintf("Le champ %q est requis pour le bloc %s", field.Label, def.Name))
		}
	}
	return messages
}

// RefreshCache reloads the catalog from the remote source. On failure the
// current catalog is kept and the error is returned.
func (l *BlockLibrary) RefreshCache(ctx context.Context) error {
	if l.source == nil {
		return domain.ErrNotImplemented
	}

	defs, err := l.fetch(ctx)
	if err != nil {
		l.ensureLoaded(ctx)
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.setCatalog(defs)
	logger.Info("block catalog refreshed: %d types", len(defs))
	return nil
}

func (l *BlockLibrary) ensureLoaded(ctx context.Context) {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return
	}

	defs, err := l.fetch(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotImplemented) {
			logger.Warn("%v, using built-in catalog", err)
		}
		defs = BuiltinCatalog()
	}
	l.setCatalog(defs)
}

// fetch reads the remote catalog and keeps only known block types.
func (l *BlockLibrary) fetch(ctx context.Context) ([]domain.BlockTypeDefinition, error) {
	if l.source == nil {
		return nil, domain.ErrNotImplemented
	}

	remote, err := l.source.FetchBlockTypeCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkDegraded, err)
	}

	defs := make([]domain.BlockTypeDefinition, 0, len(remote))
	seen := make(map[domain.BlockType]bool, len(remote))
	for _, def := range remote {
		if !def.Type.IsValid() {
			logger.Warn("block catalog: skipping unknown type %q", def.Type)
			continue
		}
		if seen[def.Type] {
			continue
		}
		seen[def.Type] = true
		def = def.Clone()
		def.CanHaveChildren = def.Type.IsContainer()
		defs = append(defs, def)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: remote catalog is empty", domain.ErrNetworkDegraded)
	}
	return defs, nil
}

// setCatalog must be called with mu held for writing.
func (l *BlockLibrary) setCatalog(defs []domain.BlockTypeDefinition) {
	l.catalog = defs
	l.byType = make(map[domain.BlockType]domain.BlockTypeDefinition, len(defs))
	for _, def := range defs {
		l.byType[def.Type] = def
	}
	l.loaded = true
}

// NewBlockID returns a fresh block id: the type followed by a time-ordered
// random UUID.
func NewBlockID(blockType domain.BlockType) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return fmt.Sprintf("%s-%s", blockType, id)
}
