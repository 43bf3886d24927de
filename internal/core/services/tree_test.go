package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func sampleTree() []domain.Block {
	return []domain.Block{
		{ID: "text-1", Type: domain.BlockTextSection, Properties: map[string]any{"title": "Bienvenue", "content": "..."}, Order: 1},
		{ID: "faq-1", Type: domain.BlockFAQSection, Properties: map[string]any{"title": "FAQ"}, Order: 2, Children: []domain.Block{
			{ID: "q-1", Type: domain.BlockAccordionItem, Properties: map[string]any{"question": "Où ?"}, Order: 1},
			{ID: "q-2", Type: domain.BlockAccordionItem, Properties: map[string]any{"question": "Quand ?"}, Order: 2},
		}},
		{ID: "divider-1", Type: domain.BlockDivider, Properties: map[string]any{"height": "2px"}, Order: 3},
	}
}

func TestAddBlock(t *testing.T) {
	block := domain.Block{ID: "button-1", Type: domain.BlockButton}

	tests := []struct {
		name string
		at   int
		want []string
	}{
		{"insert at start", 0, []string{"button-1", "text-1", "faq-1", "divider-1"}},
		{"insert in middle", 2, []string{"text-1", "faq-1", "button-1", "divider-1"}},
		{"append when index is len", 3, []string{"text-1", "faq-1", "divider-1", "button-1"}},
		{"append when index out of range", 42, []string{"text-1", "faq-1", "divider-1", "button-1"}},
		{"append when no index", -1, []string{"text-1", "faq-1", "divider-1", "button-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := sampleTree()
			out, err := AddBlock(tree, block, tt.at)

			require.NoError(t, err)
			ids := make([]string, len(out))
			for i := range out {
				ids[i] = out[i].ID
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, sampleTree(), tree, "input must not change")
		})
	}
}

func TestAddBlock_RejectsDuplicateIDs(t *testing.T) {
	tree := sampleTree()

	_, err := AddBlock(tree, domain.Block{ID: "q-2", Type: domain.BlockDivider}, -1)
	assert.ErrorIs(t, err, domain.ErrDuplicateBlockID)

	nested := domain.Block{ID: "faq-2", Type: domain.BlockFAQSection, Children: []domain.Block{{ID: "text-1", Type: domain.BlockAccordionItem}}}
	_, err = AddBlock(tree, nested, -1)
	assert.ErrorIs(t, err, domain.ErrDuplicateBlockID)
}

func TestAddBlock_RejectsChildrenOnLeafType(t *testing.T) {
	block := domain.Block{ID: "divider-2", Type: domain.BlockDivider, Children: []domain.Block{{ID: "x", Type: domain.BlockButton}}}

	_, err := AddBlock(sampleTree(), block, -1)

	assert.ErrorIs(t, err, domain.ErrNotContainer)
}

func TestAddBlock_RequiresID(t *testing.T) {
	_, err := AddBlock(nil, domain.Block{Type: domain.BlockDivider}, -1)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddBlock_CopiesInsertedBlock(t *testing.T) {
	block := domain.Block{ID: "button-1", Type: domain.BlockButton, Properties: map[string]any{"text": "Go"}}

	out, err := AddBlock(nil, block, -1)
	require.NoError(t, err)
	block.Properties["text"] = "changed"

	assert.Equal(t, "Go", out[0].Properties["text"])
}

func TestAddChildBlock(t *testing.T) {
	tree := sampleTree()
	child := domain.Block{ID: "q-3", Type: domain.BlockAccordionItem}

	out, err := AddChildBlock(tree, "faq-1", child, 0)

	require.NoError(t, err)
	faq, ok := FindBlock(out, "faq-1")
	require.True(t, ok)
	assert.Equal(t, []string{"faq-1", "q-3", "q-1", "q-2"}, CollectBlockIDs([]domain.Block{faq}))
	assert.Len(t, tree[1].Children, 2, "input must not change")
}

func TestAddChildBlock_Errors(t *testing.T) {
	tree := sampleTree()

	_, err := AddChildBlock(tree, "missing", domain.Block{ID: "x", Type: domain.BlockButton}, -1)
	assert.ErrorIs(t, err, domain.ErrBlockNotFound)

	_, err = AddChildBlock(tree, "divider-1", domain.Block{ID: "x", Type: domain.BlockButton}, -1)
	assert.ErrorIs(t, err, domain.ErrNotContainer)

	_, err = AddChildBlock(tree, "faq-1", domain.Block{ID: "q-1", Type: domain.BlockAccordionItem}, -1)
	assert.ErrorIs(t, err, domain.ErrDuplicateBlockID)
}

func TestUpdateBlockProperties_Nested(t *testing.T) {
	tree := sampleTree()

	out, err := UpdateBlockProperties(tree, "q-2", map[string]any{"answer": "En juin"})

	require.NoError(t, err)
	q2, _ := FindBlock(out, "q-2")
	assert.Equal(t, map[string]any{"question": "Quand ?", "answer": "En juin"}, q2.Properties)
	original, _ := FindBlock(tree, "q-2")
	assert.NotContains(t, original.Properties, "answer")
}

// TestUpdateBlockProperties_Cumulative tests that back-to-back updates on the
// same block accumulate.
func TestUpdateBlockProperties_Cumulative(t *testing.T) {
	tree := sampleTree()

	out, err := UpdateBlockProperties(tree, "text-1", map[string]any{"title": "Bonjour"})
	require.NoError(t, err)
	out, err = UpdateBlockProperties(out, "text-1", map[string]any{"alignment": "center"})
	require.NoError(t, err)

	block, _ := FindBlock(out, "text-1")
	assert.Equal(t, map[string]any{"title": "Bonjour", "content": "...", "alignment": "center"}, block.Properties)
}

func TestUpdateBlockProperties_Missing(t *testing.T) {
	tree := sampleTree()

	out, err := UpdateBlockProperties(tree, "missing", map[string]any{"x": 1})

	assert.ErrorIs(t, err, domain.ErrBlockNotFound)
	assert.Equal(t, tree, out)
}

func TestUpdateBlockProperties_NilProperties(t *testing.T) {
	tree := []domain.Block{{ID: "d", Type: domain.BlockDivider}}

	out, err := UpdateBlockProperties(tree, "d", map[string]any{"color": "#000"})

	require.NoError(t, err)
	assert.Equal(t, "#000", out[0].Properties["color"])
}

func TestRemoveBlock(t *testing.T) {
	tree := sampleTree()

	out, err := RemoveBlock(tree, "q-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"text-1", "faq-1", "q-2", "divider-1"}, CollectBlockIDs(out))

	out, err = RemoveBlock(out, "faq-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"text-1", "divider-1"}, CollectBlockIDs(out))

	assert.Equal(t, sampleTree(), tree, "input must not change")
}

func TestRemoveBlock_Missing(t *testing.T) {
	tree := sampleTree()

	out, err := RemoveBlock(tree, "missing")

	assert.ErrorIs(t, err, domain.ErrBlockNotFound)
	assert.Equal(t, tree, out)
}

func TestReorderSiblings(t *testing.T) {
	tree := sampleTree()

	out := ReorderSiblings(tree, []string{"divider-1", "unknown", "text-1"})

	require.Len(t, out, 2)
	assert.Equal(t, "divider-1", out[0].ID)
	assert.Equal(t, 1, out[0].Order)
	assert.Equal(t, "text-1", out[1].ID)
	assert.Equal(t, 2, out[1].Order)
	assert.Equal(t, 3, tree[2].Order, "input must not change")
}

func TestReorderSiblings_Idempotent(t *testing.T) {
	ids := []string{"faq-1", "divider-1", "text-1"}

	once := ReorderSiblings(sampleTree(), ids)
	twice := ReorderSiblings(once, ids)

	assert.Equal(t, once, twice)
}

func TestReorderSiblings_RepeatedID(t *testing.T) {
	out := ReorderSiblings(sampleTree(), []string{"text-1", "text-1", "faq-1"})

	assert.Equal(t, "text-1", out[0].ID)
	assert.Len(t, out, 2)
	assert.Equal(t, 2, out[1].Order)
}

func TestReorderBlocks_Children(t *testing.T) {
	out, err := ReorderBlocks(sampleTree(), "faq-1", []string{"q-2", "q-1"})

	require.NoError(t, err)
	faq, _ := FindBlock(out, "faq-1")
	assert.Equal(t, "q-2", faq.Children[0].ID)
	assert.Equal(t, 1, faq.Children[0].Order)

	_, err = ReorderBlocks(sampleTree(), "missing", nil)
	assert.ErrorIs(t, err, domain.ErrBlockNotFound)
}

func TestCloneTree_Independent(t *testing.T) {
	tree := sampleTree()

	clone := CloneTree(tree)
	clone[1].Children[0].Properties["question"] = "changed"

	assert.Equal(t, "Où ?", tree[1].Children[0].Properties["question"])
}
