package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"quit", km.Quit.Keys(), "q"},
		{"help", km.Help.Keys(), "?"},
		{"back", km.Back.Keys(), "esc"},
		{"up", km.Up.Keys(), "k"},
		{"down", km.Down.Keys(), "j"},
		{"select", km.Select.Keys(), "enter"},
		{"move up", km.MoveUp.Keys(), "K"},
		{"move down", km.MoveDown.Keys(), "J"},
		{"add", km.Add.Keys(), "a"},
		{"delete", km.Delete.Keys(), "d"},
		{"toggle", km.Toggle.Keys(), "h"},
		{"save", km.Save.Keys(), "s"},
		{"menu", km.Menu.Keys(), "m"},
		{"refresh", km.Refresh.Keys(), "r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.keys, tt.want)
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()
	assert.Len(t, km.ShortHelp(), 2)
}

func TestKeyMap_PagesHelp(t *testing.T) {
	km := DefaultKeyMap()
	help := km.PagesHelp()
	require.Len(t, help, 6)
	assert.Equal(t, "move up", help[0].Help().Desc)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()
	groups := km.FullHelp()
	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("K", km.MoveUp))
	assert.True(t, Matches("ctrl+s", km.Save))
	assert.False(t, Matches("k", km.MoveUp))
	assert.False(t, Matches("x", km.Delete))
}
