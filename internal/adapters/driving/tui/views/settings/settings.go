// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the view has no settings service.
var ErrNoSettingsService = errors.New("settings service not available")

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionStorage
	SectionMenuStyle
	SectionCatalog
)

// Overview rows.
const (
	rowStorage = iota
	rowMenuStyle
	rowAutosave
	rowCatalog
	rowCount
)

const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	section  Section
	selected int

	// Catalog inputs; focusedField 0 is the URL, 1 the file.
	urlInput     textinput.Model
	fileInput    textinput.Model
	focusedField int

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	urlInput := textinput.New()
	urlInput.Placeholder = "https://example.com/api/block-types"
	urlInput.CharLimit = 512

	fileInput := textinput.New()
	fileInput.Placeholder = "~/.sitesmith/blocks.yaml"
	fileInput.CharLimit = 512

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		urlInput:        urlInput,
		fileInput:       fileInput,
	}
}

// Init loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err == nil {
			v.section = SectionOverview
			return v, v.loadSettings()
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.section = SectionOverview
		v.urlInput.Blur()
		v.fileInput.Blur()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionStorage:
		return v.handleChoiceKeys(msg, len(domain.AllStorageBackends()), func(i int) tea.Cmd {
			return v.update(func(s *domain.AppSettings) { s.Storage.Backend = domain.AllStorageBackends()[i] })
		})
	case SectionMenuStyle:
		return v.handleChoiceKeys(msg, len(domain.AllMenuStyles()), func(i int) tea.Cmd {
			return v.update(func(s *domain.AppSettings) { s.Editor.MenuStyle = domain.AllMenuStyles()[i] })
		})
	case SectionCatalog:
		return v.handleCatalogKeys(msg)
	}
	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < rowCount-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case rowStorage:
			v.section = SectionStorage
			v.selected = indexOf(domain.AllStorageBackends(), v.settings.Storage.Backend)
		case rowMenuStyle:
			v.section = SectionMenuStyle
			v.selected = indexOf(domain.AllMenuStyles(), v.settings.Editor.MenuStyle)
		case rowAutosave:
			return v, v.update(func(s *domain.AppSettings) { s.Autosave.Enabled = !s.Autosave.Enabled })
		case rowCatalog:
			v.section = SectionCatalog
			v.urlInput.SetValue(v.settings.Catalog.URL)
			v.fileInput.SetValue(v.settings.Catalog.File)
			v.focusedField = 0
			return v, v.urlInput.Focus()
		}
	}
	return v, nil
}

func (v *View) handleChoiceKeys(msg tea.KeyMsg, count int, choose func(int) tea.Cmd) (*View, tea.Cmd) {
	switch msg.String() {
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < count-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < count {
			return v, choose(v.selected)
		}
	}
	return v, nil
}

func (v *View) handleCatalogKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyTab, "shift+tab":
		if v.focusedField == 0 {
			v.focusedField = 1
			v.urlInput.Blur()
			return v, v.fileInput.Focus()
		}
		v.focusedField = 0
		v.fileInput.Blur()
		return v, v.urlInput.Focus()
	case keyEnter:
		return v, v.setCatalog(strings.TrimSpace(v.urlInput.Value()), strings.TrimSpace(v.fileInput.Value()))
	}

	var cmd tea.Cmd
	if v.focusedField == 0 {
		v.urlInput, cmd = v.urlInput.Update(msg)
	} else {
		v.fileInput, cmd = v.fileInput.Update(msg)
	}
	return v, cmd
}

// update applies fn to a copy of the loaded settings and saves it.
func (v *View) update(fn func(*domain.AppSettings)) tea.Cmd {
	svc := v.settingsService
	if v.settings == nil {
		return nil
	}
	next := *v.settings
	fn(&next)
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.Save(&next)}
	}
}

func (v *View) setCatalog(url, file string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: svc.SetCatalogSource(url, file)}
	}
}

func indexOf[T comparable](values []T, want T) int {
	for i, v := range values {
		if v == want {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Erreur: " + v.err.Error()))
		b.WriteString("\n\n")
	}
	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Chargement..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		v.renderOverview(&b)
	case SectionStorage:
		renderChoices(v, &b, "Storage backend", domain.AllStorageBackends(), v.settings.Storage.Backend,
			func(s domain.StorageBackend) string { return s.Description() })
	case SectionMenuStyle:
		renderChoices(v, &b, "Menu style", domain.AllMenuStyles(), v.settings.Editor.MenuStyle,
			func(s domain.MenuStyle) string { return string(s) })
	case SectionCatalog:
		v.renderCatalog(&b)
	}
	return b.String()
}

func (v *View) renderOverview(b *strings.Builder) {
	s := v.settings
	autosave := "off"
	if s.Autosave.Enabled {
		autosave = fmt.Sprintf("on (%s)", s.Autosave.Delay)
	}
	catalog := "built-in"
	switch {
	case s.Catalog.URL != "":
		catalog = s.Catalog.URL
	case s.Catalog.File != "":
		catalog = s.Catalog.File
	}

	rows := [rowCount][2]string{
		rowStorage:   {"Storage", s.Storage.Backend.Description()},
		rowMenuStyle: {"Menu style", string(s.Editor.MenuStyle)},
		rowAutosave:  {"Autosave", autosave},
		rowCatalog:   {"Block catalog", catalog},
	}
	for i, row := range rows {
		label := fmt.Sprintf("%-14s", row[0])
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + label))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
		}
		b.WriteString(" " + v.styles.Muted.Render(row[1]) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Change  [Esc] Back"))
}

func renderChoices[T comparable](v *View, b *strings.Builder, title string, values []T, current T, describe func(T) string) {
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")
	for i, val := range values {
		marker := "  "
		if val == current {
			marker = "* "
		}
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + marker + describe(val)))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + marker + describe(val)))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [Esc] Back"))
}

func (v *View) renderCatalog(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("Block catalog"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render("URL:  "))
	b.WriteString(v.styles.InputField.Render(v.urlInput.View()))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("File: "))
	b.WriteString(v.styles.InputField.Render(v.fileInput.View()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Leave both empty for the built-in catalog. Changes apply on next start."))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[Tab] Switch field  [Enter] Save  [Esc] Back"))
}

// Reset returns to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.focusedField = 0
	v.urlInput.Blur()
	v.fileInput.Blur()
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
