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

// pageStore implements driven.PageStore.
type pageStore struct {
	store *Store
}

var _ driven.PageStore = (*pageStore)(nil)

const pageColumns = `id, site_id, title, slug, description, page_order, structure, meta, created_at, updated_at`

// Save stores or updates a page. The site must exist.
func (s *pageStore) Save(ctx context.Context, page domain.Page) error {
	if page.ID == "" || page.SiteID == "" {
		return domain.ErrInvalidInput
	}
	structure, err := marshalColumn("structure", nonNilBlocks(page.Structure))
	if err != nil {
		return err
	}
	meta, err := marshalColumn("meta", page.Meta)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if page.CreatedAt.IsZero() {
		page.CreatedAt = now
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			slug = excluded.slug,
			description = excluded.description,
			page_order = excluded.page_order,
			structure = excluded.structure,
			meta = excluded.meta,
			updated_at = excluded.updated_at
	`, page.ID, page.SiteID, page.Title, page.Slug, nullString(page.Description), page.Order,
		structure, meta, formatNullableTime(page.CreatedAt), formatNullableTime(page.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving page: %w", err)
	}
	return nil
}

// Get retrieves a page.
func (s *pageStore) Get(ctx context.Context, siteID, pageID string) (*domain.Page, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE site_id = ? AND id = ?`, siteID, pageID)
	return scanPage(row)
}

// Update applies a partial update inside a transaction.
func (s *pageStore) Update(
	ctx context.Context,
	siteID, pageID string,
	update domain.PageUpdate,
) (*domain.Page, error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning page update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	current, err := scanPage(tx.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE site_id = ? AND id = ?`, siteID, pageID))
	if err != nil {
		return nil, err
	}

	page := update.ApplyTo(*current)
	page.UpdatedAt = time.Now().UTC()

	structure, err := marshalColumn("structure", nonNilBlocks(page.Structure))
	if err != nil {
		return nil, err
	}
	meta, err := marshalColumn("meta", page.Meta)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE pages SET title = ?, slug = ?, description = ?, page_order = ?,
			structure = ?, meta = ?, updated_at = ?
		WHERE site_id = ? AND id = ?
	`, page.Title, page.Slug, nullString(page.Description), page.Order, structure, meta,
		formatNullableTime(page.UpdatedAt), siteID, pageID); err != nil {
		return nil, fmt.Errorf("updating page: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing page update: %w", err)
	}
	return &page, nil
}

// Delete removes a page.
func (s *pageStore) Delete(ctx context.Context, siteID, pageID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM pages WHERE site_id = ? AND id = ?", siteID, pageID)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	return nil
}

// ListBySite returns a site's pages sorted by order.
func (s *pageStore) ListBySite(ctx context.Context, siteID string) ([]domain.Page, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE site_id = ? ORDER BY page_order, id`, siteID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	pages := []domain.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pages: %w", err)
	}
	return pages, nil
}

func scanPage(row rowScanner) (*domain.Page, error) {
	var page domain.Page
	var description, createdAt, updatedAt sql.NullString
	var structure, meta string

	if err := row.Scan(&page.ID, &page.SiteID, &page.Title, &page.Slug, &description, &page.Order,
		&structure, &meta, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning page: %w", err)
	}

	page.Structure = []domain.Block{}
	if err := unmarshalColumn("structure", structure, &page.Structure); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("meta", meta, &page.Meta); err != nil {
		return nil, err
	}
	page.Description = description.String
	page.CreatedAt = parseNullableTime(createdAt)
	page.UpdatedAt = parseNullableTime(updatedAt)
	return &page, nil
}

// nonNilBlocks keeps an empty tree encoded as [] rather than null.
func nonNilBlocks(blocks []domain.Block) []domain.Block {
	if blocks == nil {
		return []domain.Block{}
	}
	return blocks
}
