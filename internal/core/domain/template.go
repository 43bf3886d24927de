package domain

import "time"

// SlotSuffix marks a template property whose value names a data-record field.
const SlotSuffix = "Slot"

// Template is a reusable block tree whose properties may be slot references.
type Template struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Thumbnail   string `json:"thumbnail,omitempty" yaml:"thumbnail,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Structure is the template block forest.
	Structure []Block `json:"structure" yaml:"structure"`

	// DefaultTheme supplies every theme role before site overrides.
	DefaultTheme Theme `json:"default_theme" yaml:"default_theme"`

	// FieldDefinitions describes the data record fields the template reads.
	FieldDefinitions []FieldDefinition `json:"fieldDefinitions" yaml:"fieldDefinitions"`

	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	out.Structure = CloneBlocks(t.Structure)
	if t.FieldDefinitions != nil {
		out.FieldDefinitions = make([]FieldDefinition, len(t.FieldDefinitions))
		for i, f := range t.FieldDefinitions {
			f.Default = CloneValue(f.Default)
			out.FieldDefinitions[i] = f
		}
	}
	return out
}

// RequiredFields returns the names of fields marked required, in definition order.
func (t Template) RequiredFields() []string {
	var names []string
	for _, f := range t.FieldDefinitions {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Field looks up a field definition by name.
func (t Template) Field(name string) (FieldDefinition, bool) {
	for _, f := range t.FieldDefinitions {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// MergedMetadata summarises the merged site for listings and URLs.
type MergedMetadata struct {
	CoupleName  string `json:"couple_name,omitempty"`
	WeddingDate string `json:"wedding_date,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// MergedSite is a template with every slot resolved and dynamic children
// materialised. It is what the rendering collaborator consumes.
type MergedSite struct {
	Structure []Block        `json:"structure"`
	Theme     Theme          `json:"theme"`
	Metadata  MergedMetadata `json:"metadata"`
}

// MergedPage is one page of a multi-page site, merged for rendering.
type MergedPage struct {
	Page       Page            `json:"page"`
	Structure  []Block         `json:"structure"`
	Theme      Theme           `json:"theme"`
	Navigation *NavigationMenu `json:"navigation,omitempty"`
}
