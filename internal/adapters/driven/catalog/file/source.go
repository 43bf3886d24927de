// Package file reads the block type catalog from a YAML file on disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.BlockCatalogSource = (*Source)(nil)

// catalogDocument is the on-disk layout:
//
//	blocks:
//	  - type: hero
//	    name: Bannière
//	    ...
type catalogDocument struct {
	Blocks []domain.BlockTypeDefinition `yaml:"blocks"`
}

// Source reads the catalog from a YAML file. The file is re-read on every
// fetch, so edits are picked up by the next refresh.
type Source struct {
	path string
}

// New creates a file catalog source for path.
func New(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: catalog file path is required", domain.ErrInvalidInput)
	}
	return &Source{path: path}, nil
}

// Path returns the catalog file path.
func (s *Source) Path() string {
	return s.path
}

// FetchBlockTypeCatalog parses the catalog file.
func (s *Source) FetchBlockTypeCatalog(ctx context.Context) ([]domain.BlockTypeDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("catalog file %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", s.path, err)
	}

	for i, def := range doc.Blocks {
		if !def.Type.IsValid() {
			return nil, fmt.Errorf("catalog file %s: entry %d: %w: %q", s.path, i, domain.ErrUnknownBlockType, def.Type)
		}
		if doc.Blocks[i].DefaultProperties == nil {
			doc.Blocks[i].DefaultProperties = map[string]any{}
		}
	}
	return doc.Blocks, nil
}
