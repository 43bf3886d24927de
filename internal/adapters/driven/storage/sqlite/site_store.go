package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
)

// siteStore implements driven.SiteStore.
type siteStore struct {
	store *Store
}

var _ driven.SiteStore = (*siteStore)(nil)

const siteColumns = `id, template_id, couple_name, slug, couple_data, theme_overrides,
	mode, is_published, published_at, created_at, updated_at`

// Save stores or updates a site.
func (s *siteStore) Save(ctx context.Context, site domain.Site) error {
	if site.ID == "" {
		return domain.ErrInvalidInput
	}
	data, err := marshalColumn("couple data", site.Data)
	if err != nil {
		return err
	}
	overrides, err := marshalColumn("theme overrides", site.ThemeOverrides)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if site.CreatedAt.IsZero() {
		site.CreatedAt = now
	}
	if site.UpdatedAt.IsZero() {
		site.UpdatedAt = now
	}
	var publishedAt any
	if site.PublishedAt != nil {
		publishedAt = formatNullableTime(*site.PublishedAt)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO sites (`+siteColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			template_id = excluded.template_id,
			couple_name = excluded.couple_name,
			slug = excluded.slug,
			couple_data = excluded.couple_data,
			theme_overrides = excluded.theme_overrides,
			mode = excluded.mode,
			is_published = excluded.is_published,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at
	`, site.ID, site.TemplateID, site.CoupleName, site.Slug, data, overrides,
		string(site.Mode), boolToInt(site.IsPublished), publishedAt,
		formatNullableTime(site.CreatedAt), formatNullableTime(site.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving site: %w", err)
	}
	return nil
}

// Get retrieves a site by ID.
func (s *siteStore) Get(ctx context.Context, id string) (*domain.Site, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+siteColumns+` FROM sites WHERE id = ?`, id)
	return scanSite(row)
}

// SaveContent replaces a site's data record and theme overrides.
func (s *siteStore) SaveContent(
	ctx context.Context,
	id string,
	data domain.DataRecord,
	overrides domain.ThemeOverrides,
) (*domain.Site, error) {
	dataJSON, err := marshalColumn("couple data", data)
	if err != nil {
		return nil, err
	}
	overridesJSON, err := marshalColumn("theme overrides", overrides)
	if err != nil {
		return nil, err
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE sites SET couple_data = ?, theme_overrides = ?, updated_at = ?
		WHERE id = ?
	`, dataJSON, overridesJSON, formatNullableTime(time.Now()), id)
	if err != nil {
		return nil, fmt.Errorf("saving site content: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("saving site content: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a site. Its pages and menu go with it.
func (s *siteStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting site: %w", err)
	}
	return nil
}

// List returns all sites, oldest first.
func (s *siteStore) List(ctx context.Context) ([]domain.Site, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+siteColumns+` FROM sites ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("querying sites: %w", err)
	}
	defer rows.Close()

	var sites []domain.Site //nolint:prealloc // size unknown from query
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sites: %w", err)
	}
	return sites, nil
}

func scanSite(row rowScanner) (*domain.Site, error) {
	var site domain.Site
	var mode, data, overrides string
	var published int
	var publishedAt, createdAt, updatedAt sql.NullString

	if err := row.Scan(&site.ID, &site.TemplateID, &site.CoupleName, &site.Slug, &data, &overrides,
		&mode, &published, &publishedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning site: %w", err)
	}

	site.Data = domain.DataRecord{}
	if err := unmarshalColumn("couple data", data, &site.Data); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("theme overrides", overrides, &site.ThemeOverrides); err != nil {
		return nil, err
	}
	site.Mode = domain.SiteMode(mode)
	site.IsPublished = published != 0
	if t := parseNullableTime(publishedAt); !t.IsZero() {
		site.PublishedAt = &t
	}
	site.CreatedAt = parseNullableTime(createdAt)
	site.UpdatedAt = parseNullableTime(updatedAt)
	return &site, nil
}
