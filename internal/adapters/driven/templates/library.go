// Package templates provides the starter site templates.
//
// Templates ship embedded in the binary and can be extended or replaced by
// YAML files in a user directory (default ~/.sitesmith/templates). A user
// file whose slug matches an embedded template replaces it.
package templates

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

//go:embed defaults/*.yaml
var embedded embed.FS

// Library loads templates from the embedded set and a user directory.
//
// Loading is lazy: nothing touches the disk until the first call to Load.
type Library struct {
	dir string

	mu      sync.Mutex
	loaded  bool
	cache   []domain.Template
	loadErr error
}

// NewLibrary creates a template library. If dir is empty it defaults to
// ~/.sitesmith/templates.
func NewLibrary(dir string) (*Library, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		dir = filepath.Join(home, ".sitesmith", "templates")
	}
	return &Library{dir: dir}, nil
}

// Dir returns the user template directory.
func (l *Library) Dir() string {
	return l.dir
}

// Load returns every template, sorted by name. A missing user directory is
// not an error. Malformed user files are skipped with a warning.
func (l *Library) Load() ([]domain.Template, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.loaded {
		l.cache, l.loadErr = l.load()
		l.loaded = true
	}
	if l.loadErr != nil {
		return nil, l.loadErr
	}

	out := make([]domain.Template, len(l.cache))
	for i, t := range l.cache {
		out[i] = t.Clone()
	}
	return out, nil
}

// Reload discards the cache so the next Load reads from disk again.
func (l *Library) Reload() {
	l.mu.Lock()
	l.loaded = false
	l.cache = nil
	l.loadErr = nil
	l.mu.Unlock()
}

// Seed saves every template the store does not already hold and returns
// how many were added. Existing templates are left untouched.
func (l *Library) Seed(ctx context.Context, store driven.TemplateStore) (int, error) {
	tmpls, err := l.Load()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, t := range tmpls {
		_, err := store.Get(ctx, t.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return added, fmt.Errorf("checking template %q: %w", t.ID, err)
		}
		if err := store.Save(ctx, t); err != nil {
			return added, fmt.Errorf("seeding template %q: %w", t.ID, err)
		}
		added++
	}
	if added > 0 {
		logger.Debug("seeded %d template(s)", added)
	}
	return added, nil
}

func (l *Library) load() ([]domain.Template, error) {
	bySlug := make(map[string]domain.Template)

	entries, err := fs.ReadDir(embedded, "defaults")
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	for _, e := range entries {
		data, err := embedded.ReadFile(path.Join("defaults", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading embedded template %s: %w", e.Name(), err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("embedded template %s: %w", e.Name(), err)
		}
		bySlug[t.Slug] = t
	}

	userEntries, err := os.ReadDir(l.dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		logger.Warn("cannot read template directory %s: %v", l.dir, err)
	default:
		for _, e := range userEntries {
			if e.IsDir() || !isYAML(e.Name()) {
				continue
			}
			p := filepath.Join(l.dir, e.Name())
			data, err := os.ReadFile(p)
			if err != nil {
				logger.Warn("skipping template %s: %v", p, err)
				continue
			}
			t, err := Parse(data)
			if err != nil {
				logger.Warn("skipping template %s: %v", p, err)
				continue
			}
			if _, exists := bySlug[t.Slug]; exists {
				logger.Debug("template %s overrides built-in %q", p, t.Slug)
			}
			bySlug[t.Slug] = t
		}
	}

	out := make([]domain.Template, 0, len(bySlug))
	for _, t := range bySlug {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

// Parse decodes one YAML template and checks it is usable. A missing id
// defaults to the slug; a missing theme defaults to domain.DefaultTheme.
func Parse(data []byte) (domain.Template, error) {
	var t domain.Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return domain.Template{}, fmt.Errorf("%w: %v", domain.ErrMalformedTemplate, err)
	}

	if strings.TrimSpace(t.Slug) == "" {
		return domain.Template{}, fmt.Errorf("%w: slug is required", domain.ErrMalformedTemplate)
	}
	if strings.TrimSpace(t.Name) == "" {
		return domain.Template{}, fmt.Errorf("%w: name is required", domain.ErrMalformedTemplate)
	}
	if t.ID == "" {
		t.ID = t.Slug
	}
	if len(t.Structure) == 0 {
		return domain.Template{}, fmt.Errorf("%w: %s has no blocks", domain.ErrMalformedTemplate, t.Slug)
	}
	if err := checkBlocks(t.Structure, map[string]bool{}); err != nil {
		return domain.Template{}, fmt.Errorf("%s: %w", t.Slug, err)
	}
	t.DefaultTheme = t.DefaultTheme.Complete(domain.DefaultTheme())
	return t, nil
}

func checkBlocks(blocks []domain.Block, seen map[string]bool) error {
	for i := range blocks {
		b := &blocks[i]
		if b.ID == "" {
			return fmt.Errorf("%w: block without id", domain.ErrMalformedTemplate)
		}
		if seen[b.ID] {
			return fmt.Errorf("%w: block id %q appears more than once", domain.ErrMalformedTemplate, b.ID)
		}
		seen[b.ID] = true
		if !b.Type.IsValid() {
			return fmt.Errorf("%w: block %q: %w %q", domain.ErrMalformedTemplate, b.ID, domain.ErrUnknownBlockType, b.Type)
		}
		if b.Properties == nil {
			b.Properties = map[string]any{}
		}
		if len(b.Children) > 0 && !b.Type.IsContainer() {
			return fmt.Errorf("%w: block %q of type %s cannot have children", domain.ErrMalformedTemplate, b.ID, b.Type)
		}
		if err := checkBlocks(b.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
