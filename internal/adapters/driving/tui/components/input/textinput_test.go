package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestPrompt_StartsBlurred(t *testing.T) {
	p := NewPrompt(nil, "Titre", "Nouvelle page")

	assert.False(t, p.Focused())
	assert.Empty(t, p.Value())
	assert.Contains(t, p.View(), "Titre")
}

func TestPrompt_TypingWhenFocused(t *testing.T) {
	p := NewPrompt(nil, "Titre", "")
	p.Focus()

	for _, r := range "Galerie" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "Galerie", p.Value())
}

func TestPrompt_ValueIsTrimmed(t *testing.T) {
	p := NewPrompt(nil, "Titre", "")
	p.SetValue("  Programme  ")
	assert.Equal(t, "Programme", p.Value())
}

func TestPrompt_Reset(t *testing.T) {
	p := NewPrompt(nil, "Titre", "")
	p.Focus()
	p.SetValue("Infos")

	p.Reset()
	assert.Empty(t, p.Value())
	assert.False(t, p.Focused())
}

func TestPrompt_SetWidth(t *testing.T) {
	p := NewPrompt(nil, "Titre", "")
	p.SetWidth(10)
	assert.Equal(t, 20, p.textinput.Width)

	p.SetWidth(100)
	assert.Equal(t, 100-len("Titre")-8, p.textinput.Width)
}
