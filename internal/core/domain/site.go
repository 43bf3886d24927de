package domain

import "time"

// SiteMode selects between a single implicit page (the template) and explicit pages.
type SiteMode string

// Site modes.
const (
	ModeTemplate SiteMode = "template"
	ModePages    SiteMode = "pages"
)

// IsValid returns true if the mode is recognised.
func (m SiteMode) IsValid() bool {
	return m == ModeTemplate || m == ModePages
}

// Site is a user's site: a template reference, its data record and theme overrides.
type Site struct {
	ID             string         `json:"id"`
	TemplateID     string         `json:"template_id"`
	CoupleName     string         `json:"couple_name"`
	Slug           string         `json:"slug"`
	Data           DataRecord     `json:"couple_data"`
	ThemeOverrides ThemeOverrides `json:"theme_overrides"`
	Mode           SiteMode       `json:"mode"`
	IsPublished    bool           `json:"is_published"`
	PublishedAt    *time.Time     `json:"published_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Clone returns a deep copy of the site.
func (s Site) Clone() Site {
	out := s
	out.Data = s.Data.Clone()
	out.ThemeOverrides = s.ThemeOverrides.Clone()
	if s.PublishedAt != nil {
		t := *s.PublishedAt
		out.PublishedAt = &t
	}
	return out
}
