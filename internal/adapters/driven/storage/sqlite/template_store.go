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

// templateStore implements driven.TemplateStore.
type templateStore struct {
	store *Store
}

var _ driven.TemplateStore = (*templateStore)(nil)

const templateColumns = `id, name, slug, thumbnail, description, structure, default_theme,
	field_definitions, created_at, updated_at`

// Save stores or updates a template.
func (s *templateStore) Save(ctx context.Context, tmpl domain.Template) error {
	if tmpl.ID == "" {
		return domain.ErrInvalidInput
	}
	structure, err := marshalColumn("structure", nonNilBlocks(tmpl.Structure))
	if err != nil {
		return err
	}
	theme, err := marshalColumn("default theme", tmpl.DefaultTheme)
	if err != nil {
		return err
	}
	fields := tmpl.FieldDefinitions
	if fields == nil {
		fields = []domain.FieldDefinition{}
	}
	fieldsJSON, err := marshalColumn("field definitions", fields)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if tmpl.CreatedAt.IsZero() {
		tmpl.CreatedAt = now
	}
	if tmpl.UpdatedAt.IsZero() {
		tmpl.UpdatedAt = now
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO templates (`+templateColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			slug = excluded.slug,
			thumbnail = excluded.thumbnail,
			description = excluded.description,
			structure = excluded.structure,
			default_theme = excluded.default_theme,
			field_definitions = excluded.field_definitions,
			updated_at = excluded.updated_at
	`, tmpl.ID, tmpl.Name, tmpl.Slug, nullString(tmpl.Thumbnail), nullString(tmpl.Description),
		structure, theme, fieldsJSON, formatNullableTime(tmpl.CreatedAt), formatNullableTime(tmpl.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving template: %w", err)
	}
	return nil
}

// Get retrieves a template by ID.
func (s *templateStore) Get(ctx context.Context, id string) (*domain.Template, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	return scanTemplate(row)
}

// GetBySlug retrieves a template by slug.
func (s *templateStore) GetBySlug(ctx context.Context, slug string) (*domain.Template, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM templates WHERE slug = ?`, slug)
	return scanTemplate(row)
}

// List returns all templates sorted by name.
func (s *templateStore) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.Template //nolint:prealloc // size unknown from query
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

func scanTemplate(row rowScanner) (*domain.Template, error) {
	var tmpl domain.Template
	var thumbnail, description, createdAt, updatedAt sql.NullString
	var structure, theme, fields string

	if err := row.Scan(&tmpl.ID, &tmpl.Name, &tmpl.Slug, &thumbnail, &description,
		&structure, &theme, &fields, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning template: %w", err)
	}

	if err := unmarshalColumn("structure", structure, &tmpl.Structure); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("default theme", theme, &tmpl.DefaultTheme); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("field definitions", fields, &tmpl.FieldDefinitions); err != nil {
		return nil, err
	}
	tmpl.Thumbnail = thumbnail.String
	tmpl.Description = description.String
	tmpl.CreatedAt = parseNullableTime(createdAt)
	tmpl.UpdatedAt = parseNullableTime(updatedAt)
	return &tmpl, nil
}
