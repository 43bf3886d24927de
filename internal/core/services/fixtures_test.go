package services

import "github.com/custodia-labs/sitesmith/internal/core/domain"

// testTemplate returns a small wedding template exercising slots, nested
// slots, literal children and both dynamic-children container types.
func testTemplate() domain.Template {
	return domain.Template{
		ID:   "tmpl-1",
		Name: "Mariage Élégant",
		Slug: "mariage-elegant",
		Structure: []domain.Block{
			{
				ID:   "hero-1",
				Type: domain.BlockHero,
				Properties: map[string]any{
					"backgroundImageSlot": "hero_image",
					"overlay":             map[string]any{"color": "rgba(0,0,0,0.3)", "captionSlot": "invitation_text"},
					"minHeight":           "700px",
				},
				Children: []domain.Block{
					{
						ID:   "invitation-1",
						Type: domain.BlockInvitationCard,
						Properties: map[string]any{
							"nameSlot": "couple_name",
							"dateSlot": "wedding_date",
							"opacity":  0.95,
						},
					},
				},
			},
			{
				ID:   "couple-section-1",
				Type: domain.BlockCoupleSection,
				Properties: map[string]any{
					"titleSlot": "couple_section_title",
				},
				Children: []domain.Block{},
			},
			{
				ID:   "faq-section-1",
				Type: domain.BlockFAQSection,
				Properties: map[string]any{
					"titleSlot": "faq_title",
				},
			},
			{
				ID:   "rsvp-form-1",
				Type: domain.BlockRSVPForm,
				Properties: map[string]any{
					"titleSlot": "rsvp_title",
					"fields":    []any{map[string]any{"name": "email"}},
				},
			},
		},
		DefaultTheme: domain.DefaultTheme(),
		FieldDefinitions: []domain.FieldDefinition{
			{Name: "couple_name", Label: "Nom du Couple", Kind: domain.FieldText, Required: true},
			{Name: "wedding_date", Label: "Date du Mariage", Kind: domain.FieldDate, Required: true},
			{Name: "hero_image", Label: "Image Hero", Kind: domain.FieldImage},
			{Name: "faqs", Label: "Liste des FAQs", Kind: domain.FieldList, Required: true},
			{Name: "couple_section_title", Label: "Titre Section Couple", Kind: domain.FieldText},
		},
	}
}

func testData() domain.DataRecord {
	return domain.DataRecord{
		"couple_name":  "Marie & Jean",
		"wedding_date": "2027-06-12",
		"bride_name":   "Marie",
		"groom_name":   "Jean",
		"groom_image":  "/uploads/jean.jpg",
		"faq_title":    "Questions",
		"faqs": []any{
			map[string]any{"question": "Où ?", "answer": "Au château"},
			map[string]any{"question": "Quand ?", "answer": "En juin", "open": true},
		},
	}
}
