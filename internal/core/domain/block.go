package domain

// BlockType identifies a kind of content block. The set is closed.
type BlockType string

// Block types. The first group exists since the single-template editor,
// the second group was added with multi-page sites.
const (
	BlockNavigation     BlockType = "navigation"
	BlockHero           BlockType = "hero"
	BlockInvitationCard BlockType = "invitation_card"
	BlockCountdown      BlockType = "countdown"
	BlockCoupleSection  BlockType = "couple_section"
	BlockPersonBio      BlockType = "person_bio"
	BlockFAQSection     BlockType = "faq_section"
	BlockAccordionItem  BlockType = "accordion_item"
	BlockRSVPForm       BlockType = "rsvp_form"

	BlockTextSection BlockType = "text_section"
	BlockFormCustom  BlockType = "form_custom"
	BlockFAQCustom   BlockType = "faq_custom"
	BlockGallery     BlockType = "gallery"
	BlockTestimonial BlockType = "testimonials"
	BlockSchedule    BlockType = "schedule"
	BlockGuestList   BlockType = "guest_list"
	BlockButton      BlockType = "button"
	BlockDivider     BlockType = "divider"
	BlockContactForm BlockType = "contact_form"
)

// AllBlockTypes returns every block type in declaration order.
func AllBlockTypes() []BlockType {
	return []BlockType{
		BlockNavigation, BlockHero, BlockInvitationCard, BlockCountdown,
		BlockCoupleSection, BlockPersonBio, BlockFAQSection, BlockAccordionItem,
		BlockRSVPForm, BlockTextSection, BlockFormCustom, BlockFAQCustom,
		BlockGallery, BlockTestimonial, BlockSchedule, BlockGuestList,
		BlockButton, BlockDivider, BlockContactForm,
	}
}

// IsValid returns true if the block type is part of the closed set.
func (t BlockType) IsValid() bool {
	for _, known := range AllBlockTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// IsContainer returns true for the small fixed set of types that may hold children.
func (t BlockType) IsContainer() bool {
	switch t {
	case BlockHero, BlockCoupleSection, BlockFAQSection:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t BlockType) String() string {
	return string(t)
}

// Block is one node of a block tree. Children are owned by value.
type Block struct {
	// ID is unique within a tree and stable across edits.
	ID string `json:"id" yaml:"id"`

	// Type tags the block with its kind.
	Type BlockType `json:"type" yaml:"type"`

	// Properties holds JSON-like values. In templates, keys ending with
	// SlotSuffix hold the name of a data-record field.
	Properties map[string]any `json:"properties" yaml:"properties"`

	// Children is only ever non-empty for container types.
	Children []Block `json:"children,omitempty" yaml:"children,omitempty"`

	// Order is the sibling position when storage is not positional.
	Order int `json:"order,omitempty" yaml:"order,omitempty"`
}

// Clone returns a deep copy of the block and all descendants.
func (b Block) Clone() Block {
	out := Block{
		ID:         b.ID,
		Type:       b.Type,
		Properties: CloneProperties(b.Properties),
		Order:      b.Order,
	}
	if b.Children != nil {
		out.Children = CloneBlocks(b.Children)
	}
	return out
}

// CloneBlocks deep-copies a block forest. A nil input stays nil.
func CloneBlocks(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i := range blocks {
		out[i] = blocks[i].Clone()
	}
	return out
}

// CloneProperties deep-copies a property bag.
func CloneProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = CloneValue(v)
	}
	return out
}

// CloneValue deep-copies a JSON-like value (maps, slices, scalars).
// Unrecognised types are returned as-is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return CloneProperties(val)
	case []any:
		out := make([]any, len(val))
		for i := range val {
			out[i] = CloneValue(val[i])
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(val))
		for i := range val {
			out[i] = CloneProperties(val[i])
		}
		return out
	case []string:
		return append(make([]string, 0, len(val)), val...)
	case []FAQ:
		return append(make([]FAQ, 0, len(val)), val...)
	default:
		return v
	}
}

// FindBlock searches a forest depth-first and returns a copy of the first
// block with the given id.
func FindBlock(blocks []Block, id string) (Block, bool) {
	for i := range blocks {
		if blocks[i].ID == id {
			return blocks[i].Clone(), true
		}
		if found, ok := FindBlock(blocks[i].Children, id); ok {
			return found, true
		}
	}
	return Block{}, false
}
