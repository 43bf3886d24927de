package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Ensure MergeEngine implements the interface.
var _ driving.MergeEngine = (*MergeEngine)(nil)

// maxTreeDepth bounds recursion into a block tree.
const maxTreeDepth = 64

// Person bio defaults for synthesised couple section children.
const (
	brideRole        = "La Mariée"
	groomRole        = "Le Marié"
	brideBorderColor = "#D4AF37"
	groomBorderColor = "#8B7355"
)

// MergeEngine resolves template slots against a data record. It is stateless.
type MergeEngine struct{}

// NewMergeEngine creates a merge engine.
func NewMergeEngine() *MergeEngine {
	return &MergeEngine{}
}

// Merge resolves every slot of the template and materialises dynamic children.
// Missing data resolves to empty values; only a malformed template fails.
func (e *MergeEngine) Merge(tmpl *domain.Template, data domain.DataRecord, theme domain.Theme) (*domain.MergedSite, error) {
	if tmpl == nil {
		return nil, fmt.Errorf("%w: no template", domain.ErrMalformedTemplate)
	}
	if err := checkTree(tmpl.Structure); err != nil {
		return nil, fmt.Errorf("template %s: %w", tmpl.ID, err)
	}

	coupleName := data.String(domain.FieldCoupleName)
	merged := &domain.MergedSite{
		Structure: mergeBlocks(tmpl.Structure, data),
		Theme:     theme.Complete(tmpl.DefaultTheme.Complete(domain.DefaultTheme())),
		Metadata: domain.MergedMetadata{
			CoupleName:  coupleName,
			WeddingDate: data.String(domain.FieldWeddingDate),
			Slug:        Slugify(coupleName),
		},
	}
	logger.Debug("merged template %s: %d top-level blocks", tmpl.ID, len(merged.Structure))
	return merged, nil
}

// MergePage merges one page's tree. Pages normally hold literal content, but
// slots are resolved the same way when present.
func (e *MergeEngine) MergePage(
	page domain.Page,
	data domain.DataRecord,
	theme domain.Theme,
	menu *domain.NavigationMenu,
) (*domain.MergedPage, error) {
	if err := checkTree(page.Structure); err != nil {
		return nil, fmt.Errorf("page %s: %w", page.ID, err)
	}

	merged := &domain.MergedPage{
		Page:      page.Clone(),
		Structure: mergeBlocks(page.Structure, data),
		Theme:     theme.Complete(domain.DefaultTheme()),
	}
	if menu != nil {
		nav := menu.Clone()
		merged.Navigation = &nav
	}
	return merged, nil
}

// PreviewBlock merges a single block and its descendants.
func (e *MergeEngine) PreviewBlock(block domain.Block, data domain.DataRecord) (domain.Block, error) {
	if err := checkTree([]domain.Block{block}); err != nil {
		return domain.Block{}, err
	}
	return mergeBlock(block, data), nil
}

// ValidateRequiredFields returns one message per required field that is
// absent or empty.
func (e *MergeEngine) ValidateRequiredFields(tmpl domain.Template, data domain.DataRecord) []string {
	var messages []string
	for _, name := range tmpl.RequiredFields() {
		value, _ := data.Lookup(name)
		switch {
		case isEmptyList(value):
			messages = append(messages, fmt.Sprintf("Le champ %q doit contenir au moins un élément", name))
		case domain.IsEmptyValue(value):
			messages = append(messages, fmt.Sprintf("Le champ %q est requis", name))
		}
	}
	return messages
}

// ListSlotNames returns the sorted set of data fields referenced by slots
// anywhere in the template, nested property objects included.
func (e *MergeEngine) ListSlotNames(tmpl domain.Template) []string {
	set := make(map[string]bool)
	var walk func(blocks []domain.Block, depth int)
	walk = func(blocks []domain.Block, depth int) {
		if depth > maxTreeDepth {
			return
		}
		for i := range blocks {
			collectSlots(blocks[i].Properties, set)
			walk(blocks[i].Children, depth+1)
		}
	}
	walk(tmpl.Structure, 0)

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasAllRequiredSlots reports whether every slot that names a required field
// is filled.
func (e *MergeEngine) HasAllRequiredSlots(tmpl domain.Template, data domain.DataRecord) bool {
	for _, name := range e.ListSlotNames(tmpl) {
		field, ok := tmpl.Field(name)
		if !ok || !field.Required {
			continue
		}
		if data.IsEmpty(name) {
			return false
		}
	}
	return true
}

func mergeBlocks(blocks []domain.Block, data domain.DataRecord) []domain.Block {
	if blocks == nil {
		return nil
	}
	out := make([]domain.Block, len(blocks))
	for i := range blocks {
		out[i] = mergeBlock(blocks[i], data)
	}
	return out
}

func mergeBlock(block domain.Block, data domain.DataRecord) domain.Block {
	out := domain.Block{
		ID:         block.ID,
		Type:       block.Type,
		Properties: resolveSlots(block.Properties, data),
		Order:      block.Order,
	}

	// Literal children and synthesised children are mutually exclusive.
	switch {
	case len(block.Children) > 0:
		out.Children = mergeBlocks(block.Children, data)
	case block.Type == domain.BlockFAQSection:
		out.Children = faqChildren(block.ID, data)
	case block.Type == domain.BlockCoupleSection:
		out.Children = coupleChildren(block.ID, data)
	default:
		out.Children = domain.CloneBlocks(block.Children)
	}
	return out
}

// resolveSlots is the only place that interprets the slot suffix. A key
// "titleSlot" holding "faq_title" becomes "title" holding data["faq_title"],
// or "" when the record has no such field. Resolved slots win over a literal
// key of the same name.
func resolveSlots(props map[string]any, data domain.DataRecord) map[string]any {
	out := make(map[string]any, len(props))

	for key, value := range props {
		if _, ok := slotTarget(key, value); ok {
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			out[key] = resolveSlots(nested, data)
			continue
		}
		out[key] = domain.CloneValue(value)
	}

	for key, value := range props {
		target, ok := slotTarget(key, value)
		if !ok {
			continue
		}
		field := value.(string)
		resolved, found := data.Lookup(field)
		if !found || resolved == nil {
			out[target] = ""
			continue
		}
		out[target] = domain.CloneValue(resolved)
	}
	return out
}

// slotTarget returns the output key for a slot property.
func slotTarget(key string, value any) (string, bool) {
	if _, isString := value.(string); !isString {
		return "", false
	}
	if len(key) <= len(domain.SlotSuffix) || !strings.HasSuffix(key, domain.SlotSuffix) {
		return "", false
	}
	return strings.TrimSuffix(key, domain.SlotSuffix), true
}

func collectSlots(props map[string]any, set map[string]bool) {
	for key, value := range props {
		if _, ok := slotTarget(key, value); ok {
			set[value.(string)] = true
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			collectSlots(nested, set)
		}
	}
}

func faqChildren(parentID string, data domain.DataRecord) []domain.Block {
	faqs := data.FAQs()
	children := make([]domain.Block, 0, len(faqs))
	for i, faq := range faqs {
		children = append(children, domain.Block{
			ID:   fmt.Sprintf("%s-faq-item-%d", parentID, i),
			Type: domain.BlockAccordionItem,
			Properties: map[string]any{
				"question": faq.Question,
				"answer":   faq.Answer,
				"open":     faq.Open,
			},
			Order: i + 1,
		})
	}
	return children
}

func coupleChildren(parentID string, data domain.DataRecord) []domain.Block {
	children := make([]domain.Block, 0, 2)
	if !data.IsEmpty(domain.FieldBrideName) {
		children = append(children, personBio(parentID+"-bride-bio", brideRole, brideBorderColor, "left",
			data.String(domain.FieldBrideName), data.String(domain.FieldBrideImage), data.String(domain.FieldBrideBio)))
	}
	if !data.IsEmpty(domain.FieldGroomName) {
		children = append(children, personBio(parentID+"-groom-bio", groomRole, groomBorderColor, "right",
			data.String(domain.FieldGroomName), data.String(domain.FieldGroomImage), data.String(domain.FieldGroomBio)))
	}
	for i := range children {
		children[i].Order = i + 1
	}
	return children
}

func personBio(id, role, borderColor, imagePosition, name, image, bio string) domain.Block {
	if image == "" {
		image = defaultAvatar
	}
	return domain.Block{
		ID:   id,
		Type: domain.BlockPersonBio,
		Properties: map[string]any{
			"name":          name,
			"role":          role,
			"image":         image,
			"bio":           bio,
			"borderColor":   borderColor,
			"imagePosition": imagePosition,
		},
	}
}

// checkTree rejects trees a merge cannot make sense of: blank ids, an id
// repeated anywhere in the tree (which is how a cycle shows up in a value
// tree) and nesting deeper than maxTreeDepth.
func checkTree(blocks []domain.Block) error {
	seen := make(map[string]bool)
	var walk func(blocks []domain.Block, depth int) error
	walk = func(blocks []domain.Block, depth int) error {
		if depth > maxTreeDepth {
			return fmt.Errorf("%w: nesting deeper than %d", domain.ErrMalformedTemplate, maxTreeDepth)
		}
		for i := range blocks {
			id := blocks[i].ID
			if id == "" {
				return fmt.Errorf("%w: block without id", domain.ErrMalformedTemplate)
			}
			if seen[id] {
				return fmt.Errorf("%w: block id %q appears more than once", domain.ErrMalformedTemplate, id)
			}
			seen[id] = true
			if err := walk(blocks[i].Children, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(blocks, 0)
}

func isEmptyList(v any) bool {
	switch val := v.(type) {
	case []any:
		return len(val) == 0
	case []map[string]any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case []domain.FAQ:
		return len(val) == 0
	default:
		return false
	}
}
