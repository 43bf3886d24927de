package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func findMerged(t *testing.T, blocks []domain.Block, id string) domain.Block {
	t.Helper()
	block, ok := domain.FindBlock(blocks, id)
	require.True(t, ok, "block %s not found", id)
	return block
}

func TestMergeEngine_Merge_ResolvesSlots(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()
	data := testData()

	merged, err := engine.Merge(&tmpl, data, domain.DefaultTheme())
	require.NoError(t, err)

	invitation := findMerged(t, merged.Structure, "invitation-1")
	assert.Equal(t, "Marie & Jean", invitation.Properties["name"])
	assert.Equal(t, "2027-06-12", invitation.Properties["date"])
	assert.Equal(t, 0.95, invitation.Properties["opacity"])
	assert.NotContains(t, invitation.Properties, "nameSlot")
	assert.NotContains(t, invitation.Properties, "dateSlot")

	hero := findMerged(t, merged.Structure, "hero-1")
	assert.Equal(t, "", hero.Properties["backgroundImage"], "missing field resolves to empty string")
	overlay := hero.Properties["overlay"].(map[string]any)
	assert.Equal(t, "", overlay["caption"], "nested slots are resolved")
	assert.Equal(t, "rgba(0,0,0,0.3)", overlay["color"])

	rsvp := findMerged(t, merged.Structure, "rsvp-form-1")
	assert.Equal(t, []any{map[string]any{"name": "email"}}, rsvp.Properties["fields"])
}

// TestMergeEngine_Merge_SlotProperty tests that every slot k+Slot naming f
// yields k equal to D[f] or "" when absent.
func TestMergeEngine_Merge_SlotProperty(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()

	records := []domain.DataRecord{
		{},
		testData(),
		{"couple_section_title": "Notre Histoire", "hero_image": "/hero.jpg"},
	}

	for _, data := range records {
		merged, err := engine.Merge(&tmpl, data, domain.DefaultTheme())
		require.NoError(t, err)

		var check func(template, out []domain.Block)
		check = func(template, out []domain.Block) {
			for i := range template {
				got := findMerged(t, out, template[i].ID)
				for key, value := range template[i].Properties {
					field, ok := value.(string)
					if !ok || len(key) <= len(domain.SlotSuffix) || key[len(key)-len(domain.SlotSuffix):] != domain.SlotSuffix {
						continue
					}
					target := key[:len(key)-len(domain.SlotSuffix)]
					want, present := data[field]
					if !present {
						want = ""
					}
					assert.Equal(t, want, got.Properties[target], "%s.%s", template[i].ID, target)
				}
				check(template[i].Children, out)
			}
		}
		check(tmpl.Structure, merged.Structure)
	}
}

// TestMergeEngine_Merge_EmptyRecord tests that a slot resolves to an empty
// string rather than disappearing.
func TestMergeEngine_Merge_EmptyRecord(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := domain.Template{
		ID: "t",
		Structure: []domain.Block{
			{ID: "couple-1", Type: domain.BlockCoupleSection, Properties: map[string]any{"titleSlot": "couple_section_title"}},
		},
	}

	merged, err := engine.Merge(&tmpl, domain.DataRecord{}, domain.Theme{})

	require.NoError(t, err)
	require.Len(t, merged.Structure, 1)
	assert.Equal(t, map[string]any{"title": ""}, merged.Structure[0].Properties)
	assert.NotNil(t, merged.Structure[0].Children)
	assert.Empty(t, merged.Structure[0].Children)
}

func TestMergeEngine_Merge_NilRecord(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()

	merged, err := engine.Merge(&tmpl, nil, domain.DefaultTheme())

	require.NoError(t, err)
	faq := findMerged(t, merged.Structure, "faq-section-1")
	assert.Empty(t, faq.Children)
}

func TestMergeEngine_Merge_FAQChildren(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()
	data := testData()

	merged, err := engine.Merge(&tmpl, data, domain.DefaultTheme())
	require.NoError(t, err)

	faq := findMerged(t, merged.Structure, "faq-section-1")
	faqs := data.FAQs()
	require.Len(t, faq.Children, len(faqs))
	for i, child := range faq.Children {
		assert.Equal(t, domain.BlockAccordionItem, child.Type)
		assert.Equal(t, faqs[i].Question, child.Properties["question"])
		assert.Equal(t, faqs[i].Answer, child.Properties["answer"])
		assert.Equal(t, faqs[i].Open, child.Properties["open"])
	}
	assert.Equal(t, false, faq.Children[0].Properties["open"], "open defaults to false")
	assert.Equal(t, true, faq.Children[1].Properties["open"])
}

func TestMergeEngine_Merge_FAQChildrenOnePerEntry(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()
	data := testData()
	data["faqs"] = []any{
		map[string]any{"question": "Parking ?", "answer": "Oui"},
		"pas une question",
		42,
	}

	merged, err := engine.Merge(&tmpl, data, domain.DefaultTheme())
	require.NoError(t, err)

	faq := findMerged(t, merged.Structure, "faq-section-1")
	require.Len(t, faq.Children, 3)
	assert.Equal(t, "Parking ?", faq.Children[0].Properties["question"])
	assert.Equal(t, "", faq.Children[1].Properties["question"])
	assert.Equal(t, "", faq.Children[2].Properties["answer"])
}

func TestMergeEngine_Merge_CoupleChildren(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()

	tests := []struct {
		name  string
		data  domain.DataRecord
		roles []string
	}{
		{"both partners", domain.DataRecord{"bride_name": "Marie", "groom_name": "Jean"}, []string{brideRole, groomRole}},
		{"bride only", domain.DataRecord{"bride_name": "Marie"}, []string{brideRole}},
		{"groom only", domain.DataRecord{"groom_name": "Jean", "bride_name": ""}, []string{groomRole}},
		{"nobody", domain.DataRecord{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := engine.Merge(&tmpl, tt.data, domain.DefaultTheme())
			require.NoError(t, err)

			section := findMerged(t, merged.Structure, "couple-section-1")
			roles := []string{}
			for _, child := range section.Children {
				assert.Equal(t, domain.BlockPersonBio, child.Type)
				roles = append(roles, child.Properties["role"].(string))
			}
			assert.Equal(t, tt.roles, roles)
		})
	}
}

func TestMergeEngine_Merge_CoupleChildDefaults(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()

	merged, err := engine.Merge(&tmpl, testData(), domain.DefaultTheme())
	require.NoError(t, err)

	section := findMerged(t, merged.Structure, "couple-section-1")
	require.Len(t, section.Children, 2)
	bride, groom := section.Children[0], section.Children[1]
	assert.Equal(t, defaultAvatar, bride.Properties["image"])
	assert.Equal(t, "left", bride.Properties["imagePosition"])
	assert.Equal(t, "/uploads/jean.jpg", groom.Properties["image"])
	assert.Equal(t, "right", groom.Properties["imagePosition"])
	assert.NotEqual(t, bride.ID, groom.ID)
}

func TestMergeEngine_Merge_LiteralChildrenWin(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := domain.Template{
		ID: "t",
		Structure: []domain.Block{{
			ID:   "faq-1",
			Type: domain.BlockFAQSection,
			Children: []domain.Block{
				{ID: "q-1", Type: domain.BlockAccordionItem, Properties: map[string]any{"questionSlot": "custom_q"}},
			},
		}},
	}

	merged, err := engine.Merge(&tmpl, testData(), domain.DefaultTheme())

	require.NoError(t, err)
	children := merged.Structure[0].Children
	require.Len(t, children, 1)
	assert.Equal(t, "q-1", children[0].ID)
	assert.Equal(t, "", children[0].Properties["question"])
}

func TestMergeEngine_Merge_SlotWinsOverLiteral(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := domain.Template{
		ID: "t",
		Structure: []domain.Block{{
			ID:         "text-1",
			Type:       domain.BlockTextSection,
			Properties: map[string]any{"title": "literal", "titleSlot": "couple_name"},
		}},
	}

	merged, err := engine.Merge(&tmpl, testData(), domain.DefaultTheme())

	require.NoError(t, err)
	assert.Equal(t, "Marie & Jean", merged.Structure[0].Properties["title"])
}

func TestMergeEngine_Merge_DoesNotMutateInputs(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()
	data := testData()
	before := tmpl.Clone()

	merged, err := engine.Merge(&tmpl, data, domain.DefaultTheme())
	require.NoError(t, err)
	merged.Structure[0].Properties["minHeight"] = "1px"

	assert.Equal(t, before, tmpl)
}

func TestMergeEngine_Merge_ThemeAndMetadata(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()
	theme := domain.Theme{Colors: domain.ThemeColors{Primary: "#000000"}}

	merged, err := engine.Merge(&tmpl, testData(), theme)

	require.NoError(t, err)
	assert.Equal(t, "#000000", merged.Theme.Colors.Primary)
	assert.Equal(t, domain.DefaultTheme().Colors.Secondary, merged.Theme.Colors.Secondary)
	assert.Equal(t, domain.DefaultTheme().Fonts.Heading, merged.Theme.Fonts.Heading)
	assert.Equal(t, "Marie & Jean", merged.Metadata.CoupleName)
	assert.Equal(t, "2027-06-12", merged.Metadata.WeddingDate)
	assert.Equal(t, "marie-jean", merged.Metadata.Slug)
}

func TestMergeEngine_Merge_Malformed(t *testing.T) {
	engine := NewMergeEngine()

	deep := domain.Block{ID: "leaf", Type: domain.BlockHero}
	for i := 0; i <= maxTreeDepth+1; i++ {
		deep = domain.Block{ID: "hero-" + string(rune('a'+i%26)) + "-" + string(rune('0'+i/26)), Type: domain.BlockHero, Children: []domain.Block{deep}}
	}

	tests := []struct {
		name string
		tmpl *domain.Template
	}{
		{"nil template", nil},
		{"blank id", &domain.Template{Structure: []domain.Block{{Type: domain.BlockDivider}}}},
		{"repeated id along the tree", &domain.Template{Structure: []domain.Block{
			{ID: "hero-1", Type: domain.BlockHero, Children: []domain.Block{{ID: "hero-1", Type: domain.BlockHero}}},
		}}},
		{"duplicate sibling ids", &domain.Template{Structure: []domain.Block{
			{ID: "a", Type: domain.BlockDivider}, {ID: "a", Type: domain.BlockDivider},
		}}},
		{"too deep", &domain.Template{Structure: []domain.Block{deep}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Merge(tt.tmpl, domain.DataRecord{}, domain.DefaultTheme())
			assert.ErrorIs(t, err, domain.ErrMalformedTemplate)
		})
	}
}

func TestMergeEngine_MergePage(t *testing.T) {
	engine := NewMergeEngine()
	page := domain.Page{
		ID:    "page-1",
		Title: "Accueil",
		Structure: []domain.Block{
			{ID: "text-1", Type: domain.BlockTextSection, Properties: map[string]any{"content": "Bienvenue"}},
			{ID: "faq-1", Type: domain.BlockFAQSection, Properties: map[string]any{"title": "FAQ"}},
		},
	}
	menu := &domain.NavigationMenu{SiteID: "site-1", Items: []domain.MenuItem{{ID: "m1", PageID: "page-1"}}}

	merged, err := engine.MergePage(page, testData(), domain.Theme{}, menu)

	require.NoError(t, err)
	assert.Equal(t, "Bienvenue", merged.Structure[0].Properties["content"])
	assert.Len(t, merged.Structure[1].Children, 2)
	assert.Equal(t, domain.DefaultTheme(), merged.Theme)
	require.NotNil(t, merged.Navigation)
	assert.Equal(t, *menu, *merged.Navigation)

	menu.Items[0].Label = "changed"
	assert.Empty(t, merged.Navigation.Items[0].Label)
}

func TestMergeEngine_PreviewBlock(t *testing.T) {
	engine := NewMergeEngine()
	block := domain.Block{ID: "countdown-1", Type: domain.BlockCountdown, Properties: map[string]any{"dateSlot": "wedding_date"}}

	preview, err := engine.PreviewBlock(block, testData())

	require.NoError(t, err)
	assert.Equal(t, "2027-06-12", preview.Properties["date"])
	assert.Equal(t, "wedding_date", block.Properties["dateSlot"])
}

func TestMergeEngine_ValidateRequiredFields(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()

	tests := []struct {
		name string
		data domain.DataRecord
		want []string
	}{
		{
			name: "all present",
			data: testData(),
			want: nil,
		},
		{
			name: "empty record reports every required field",
			data: domain.DataRecord{},
			want: []string{
				`Le champ "couple_name" est requis`,
				`Le champ "wedding_date" est requis`,
				`Le champ "faqs" est requis`,
			},
		},
		{
			name: "empty list",
			data: domain.DataRecord{"couple_name": "A & B", "wedding_date": "2027-01-01", "faqs": []any{}},
			want: []string{`Le champ "faqs" doit contenir au moins un élément`},
		},
		{
			name: "empty string counts as missing",
			data: domain.DataRecord{"couple_name": "", "wedding_date": "2027-01-01", "faqs": []any{map[string]any{}}},
			want: []string{`Le champ "couple_name" est requis`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.ValidateRequiredFields(tmpl, tt.data))
		})
	}
}

func TestMergeEngine_ListSlotNames(t *testing.T) {
	engine := NewMergeEngine()

	names := engine.ListSlotNames(testTemplate())

	assert.Equal(t, []string{
		"couple_name",
		"couple_section_title",
		"faq_title",
		"hero_image",
		"invitation_text",
		"rsvp_title",
		"wedding_date",
	}, names)
}

func TestMergeEngine_HasAllRequiredSlots(t *testing.T) {
	engine := NewMergeEngine()
	tmpl := testTemplate()

	assert.True(t, engine.HasAllRequiredSlots(tmpl, testData()))
	assert.False(t, engine.HasAllRequiredSlots(tmpl, domain.DataRecord{"couple_name": "A & B"}))
	// faqs is required but referenced by no slot.
	assert.True(t, engine.HasAllRequiredSlots(tmpl, domain.DataRecord{"couple_name": "A & B", "wedding_date": "2027-01-01"}))
}
