package domain

import "time"

// PageSEO holds optional search-engine metadata.
type PageSEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PageMeta holds page flags used by navigation.
type PageMeta struct {
	ShowInMenu bool     `json:"showInMenu"`
	IsHomepage bool     `json:"isHomepage"`
	Icon       string   `json:"icon,omitempty"`
	SEO        *PageSEO `json:"seo,omitempty"`
}

// Page is one page of a multi-page site. It owns its block tree.
type Page struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"site_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Order       int       `json:"order"`
	Structure   []Block   `json:"structure"`
	Meta        PageMeta  `json:"meta"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the page.
func (p Page) Clone() Page {
	out := p
	out.Structure = CloneBlocks(p.Structure)
	if p.Meta.SEO != nil {
		seo := *p.Meta.SEO
		out.Meta.SEO = &seo
	}
	return out
}

// ClonePages deep-copies a page list.
func ClonePages(pages []Page) []Page {
	if pages == nil {
		return nil
	}
	out := make([]Page, len(pages))
	for i := range pages {
		out[i] = pages[i].Clone()
	}
	return out
}

// NextPageOrder returns max(order)+1, or 1 when there are no pages.
func NextPageOrder(pages []Page) int {
	maxOrder := 0
	for i := range pages {
		if pages[i].Order > maxOrder {
			maxOrder = pages[i].Order
		}
	}
	return maxOrder + 1
}

// PageUpdate is a partial page update. Nil fields are left unchanged.
type PageUpdate struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Description *string   `json:"description,omitempty"`
	Order       *int      `json:"order,omitempty"`
	Structure   []Block   `json:"structure,omitempty"`
	Meta        *PageMeta `json:"meta,omitempty"`
}

// ApplyTo returns a copy of page with the update applied.
// A non-nil Structure replaces the whole tree.
func (u PageUpdate) ApplyTo(page Page) Page {
	out := page.Clone()
	if u.Title != nil {
		out.Title = *u.Title
	}
	if u.Slug != nil {
		out.Slug = *u.Slug
	}
	if u.Description != nil {
		out.Description = *u.Description
	}
	if u.Order != nil {
		out.Order = *u.Order
	}
	if u.Structure != nil {
		out.Structure = CloneBlocks(u.Structure)
	}
	if u.Meta != nil {
		out.Meta = *u.Meta
		if u.Meta.SEO != nil {
			seo := *u.Meta.SEO
			out.Meta.SEO = &seo
		}
	}
	return out
}
