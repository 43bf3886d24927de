package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// navigationStore implements driven.NavigationStore.
type navigationStore struct {
	store *Store
}

var _ driven.NavigationStore = (*navigationStore)(nil)

// Save stores or replaces a site's menu. The site must exist.
func (s *navigationStore) Save(ctx context.Context, menu domain.NavigationMenu) error {
	if menu.SiteID == "" {
		return domain.ErrInvalidInput
	}
	items := menu.Items
	if items == nil {
		items = []domain.MenuItem{}
	}
	itemsJSON, err := marshalColumn("menu items", items)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO navigation_menus (site_id, style, items)
		VALUES (?, ?, ?)
		ON CONFLICT(site_id) DO UPDATE SET
			style = excluded.style,
			items = excluded.items
	`, menu.SiteID, string(menu.Style), itemsJSON)
	if err != nil {
		return fmt.Errorf("saving menu: %w", err)
	}
	return nil
}

// Get retrieves a site's menu.
func (s *navigationStore) Get(ctx context.Context, siteID string) (*domain.NavigationMenu, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT site_id, style, items FROM navigation_menus WHERE site_id = ?`, siteID)

	var menu domain.NavigationMenu
	var style, items string
	if err := row.Scan(&menu.SiteID, &style, &items); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning menu: %w", err)
	}
	menu.Style = domain.MenuStyle(style)
	menu.Items = []domain.MenuItem{}
	if err := unmarshalColumn("menu items", items, &menu.Items); err != nil {
		return nil, err
	}
	return &menu, nil
}
