package domain

// BlockCategory groups block types in the library panel.
type BlockCategory string

// Block categories.
const (
	CategoryContent    BlockCategory = "content"
	CategoryForm       BlockCategory = "form"
	CategorySocial     BlockCategory = "social"
	CategoryMedia      BlockCategory = "media"
	CategoryNavigation BlockCategory = "navigation"
	CategoryLayout     BlockCategory = "layout"
)

// FieldKind describes the value a field holds, used to pick an input widget.
type FieldKind string

// Field kinds.
const (
	FieldText       FieldKind = "text"
	FieldTextarea   FieldKind = "textarea"
	FieldDate       FieldKind = "date"
	FieldImage      FieldKind = "image"
	FieldList       FieldKind = "faq_list"
	FieldRSVPFields FieldKind = "rsvp_fields"
	FieldURL        FieldKind = "url"
	FieldEmail      FieldKind = "email"
	FieldTel        FieldKind = "tel"
)

// FieldDefinition describes one editable field, either on a block type or
// on a template's data record.
type FieldDefinition struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Section     string    `json:"section,omitempty" yaml:"section,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string    `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
}

// BlockTypeDefinition is the catalog entry for one block type.
// Definitions are loaded once and never mutated afterwards.
type BlockTypeDefinition struct {
	Type              BlockType         `json:"type" yaml:"type"`
	Name              string            `json:"name" yaml:"name"`
	Description       string            `json:"description,omitempty" yaml:"description,omitempty"`
	Category          BlockCategory     `json:"category" yaml:"category"`
	Icon              string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	DefaultProperties map[string]any    `json:"defaultProperties" yaml:"defaultProperties"`
	EditableFields    []FieldDefinition `json:"editableFields" yaml:"editableFields"`
	CanHaveChildren   bool              `json:"canHaveChildren" yaml:"canHaveChildren"`
	RequiresConfig    bool              `json:"requiresConfig" yaml:"requiresConfig"`
}

// Clone returns a deep copy of the definition.
func (d BlockTypeDefinition) Clone() BlockTypeDefinition {
	out := d
	out.DefaultProperties = CloneProperties(d.DefaultProperties)
	if d.EditableFields != nil {
		out.EditableFields = make([]FieldDefinition, len(d.EditableFields))
		for i, f := range d.EditableFields {
			f.Default = CloneValue(f.Default)
			out.EditableFields[i] = f
		}
	}
	return out
}

// CloneCatalog deep-copies a catalog.
func CloneCatalog(defs []BlockTypeDefinition) []BlockTypeDefinition {
	if defs == nil {
		return nil
	}
	out := make([]BlockTypeDefinition, len(defs))
	for i := range defs {
		out[i] = defs[i].Clone()
	}
	return out
}
