// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// Bar shows the open site, its save status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	bindings []key.Binding
	site     string
	status   domain.SaveStatus
	message  string
	errText  string
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	if b.errText != "" {
		return b.styles.Error.Render("Erreur: " + b.errText)
	}

	parts := make([]string, 0, 3)
	if b.site != "" {
		parts = append(parts, b.styles.Normal.Render(b.site))
	}
	if b.status != "" {
		parts = append(parts, b.styles.ForStatus(b.status).Render(statusLabel(b.status)))
	}
	if b.message != "" {
		parts = append(parts, b.styles.Muted.Render(b.message))
	}
	if len(parts) == 0 {
		return b.styles.Muted.Render("Prêt")
	}
	return strings.Join(parts, " · ")
}

func (b *Bar) renderRight() string {
	bindings := b.bindings
	if len(bindings) == 0 {
		bindings = b.keymap.ShortHelp()
	}
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

func statusLabel(status domain.SaveStatus) string {
	switch status {
	case domain.StatusClean:
		return "enregistré"
	case domain.StatusDirty:
		return "modifié"
	case domain.StatusSaving:
		return "enregistrement…"
	case domain.StatusError:
		return "échec de l'enregistrement"
	default:
		return string(status)
	}
}

// SetSnapshot takes the site name and save status from an editor snapshot.
// The editor's save error, if any, is shown in place of everything else.
func (b *Bar) SetSnapshot(snapshot domain.EditorSnapshot) {
	b.site = ""
	if snapshot.Site != nil {
		b.site = snapshot.Site.CoupleName
	}
	b.status = snapshot.Status()
	b.errText = snapshot.Error
}

// SetBindings sets the hints shown on the right. Nil restores the defaults.
func (b *Bar) SetBindings(bindings []key.Binding) {
	b.bindings = bindings
}

// SetMessage sets a transient message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetError shows err until cleared. A nil error clears it.
func (b *Bar) SetError(err error) {
	if err == nil {
		b.errText = ""
		return
	}
	b.errText = err.Error()
}

// Status returns the save status last seen.
func (b *Bar) Status() domain.SaveStatus {
	return b.status
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear forgets the site and any message or error.
func (b *Bar) Clear() {
	b.site = ""
	b.status = ""
	b.message = ""
	b.errText = ""
	b.bindings = nil
}
