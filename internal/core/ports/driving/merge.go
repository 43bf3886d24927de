package driving

import "github.com/custodia-labs/sitesmith/internal/core/domain"

// MergeEngine resolves template slots against a data record.
type MergeEngine interface {
	// Merge produces a renderable tree. Missing data never fails the merge;
	// only a structurally malformed template does.
	Merge(tmpl *domain.Template, data domain.DataRecord, theme domain.Theme) (*domain.MergedSite, error)

	// MergePage merges one page's own tree for rendering.
	MergePage(page domain.Page, data domain.DataRecord, theme domain.Theme, menu *domain.NavigationMenu) (*domain.MergedPage, error)

	// PreviewBlock merges a single block.
	PreviewBlock(block domain.Block, data domain.DataRecord) (domain.Block, error)

	// ValidateRequiredFields returns one message per missing required field.
	ValidateRequiredFields(tmpl domain.Template, data domain.DataRecord) []string

	// ListSlotNames returns the sorted set of fields referenced by slots.
	ListSlotNames(tmpl domain.Template) []string

	// HasAllRequiredSlots reports whether every required slot is filled.
	HasAllRequiredSlots(tmpl domain.Template, data domain.DataRecord) bool
}
