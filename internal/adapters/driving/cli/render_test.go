package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

func TestRenderTree(t *testing.T) {
	blocks := []domain.Block{
		{
			ID:         "hero-1",
			Type:       domain.BlockHero,
			Properties: map[string]any{"minHeight": "700px", "backgroundImageSlot": "hero_image"},
			Children: []domain.Block{
				{ID: "card-1", Type: domain.BlockInvitationCard},
			},
		},
		{ID: "div-1", Type: domain.BlockDivider},
	}

	buf := new(bytes.Buffer)
	renderTree(buf, blocks)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "├── hero [hero-1]", lines[0])
	assert.Equal(t, `│     backgroundImageSlot = "hero_image"`, lines[1])
	assert.Equal(t, `│     minHeight = "700px"`, lines[2])
	assert.Equal(t, "│   └── invitation_card [card-1]", lines[3])
	assert.Equal(t, "└── divider [div-1]", lines[4])
}

func TestRenderTree_NestedProperties(t *testing.T) {
	buf := new(bytes.Buffer)
	renderTree(buf, []domain.Block{{
		ID:         "cd-1",
		Type:       domain.BlockCountdown,
		Properties: map[string]any{"labels": map[string]any{"days": "Jours"}},
	}})
	assert.Contains(t, buf.String(), `labels = {"days":"Jours"}`)
}

func TestSummarise(t *testing.T) {
	assert.Equal(t, `"texte"`, summarise("texte"))
	assert.Equal(t, "null", summarise(nil))
	assert.Equal(t, "3", summarise(3))
	assert.Equal(t, `["a","b"]`, summarise([]any{"a", "b"}))

	long := summarise(strings.Repeat("x", 100))
	assert.Equal(t, maxValueWidth, len([]rune(long)))
	assert.True(t, strings.HasSuffix(long, "…"))
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(map[string]any{"c": 1, "a": 2, "b": 3}))
	assert.Empty(t, sortedKeys(nil))
}

func TestWriteJSON_KeepsHTMLCharacters(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, writeJSON(buf, map[string]string{"couple": "Marie & Jean"}))
	assert.Equal(t, "{\n  \"couple\": \"Marie & Jean\"\n}\n", buf.String())
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, isTerminal(new(bytes.Buffer)))
}
