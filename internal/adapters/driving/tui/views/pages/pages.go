// Package pages provides the page organiser for the open site: reorder,
// add, remove and hide pages, rebuild the menu and save.
package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// ErrTemplateMode is reported for page edits on a single-page site.
var ErrTemplateMode = errors.New("le site est en mode modèle: l'organisation des pages nécessite le mode pages")

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirmDelete
)

// View organises the pages of the site open in the editor.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.SessionService
	editor  driving.Editor

	snapshot domain.EditorSnapshot
	list     *list.List
	prompt   *input.Prompt
	mode     mode

	// focusID is selected once the next snapshot arrives.
	focusID string
	notice  string
	err     error

	width  int
	height int
}

// NewView creates a page organiser.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.SessionService, editor driving.Editor) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		session: session,
		editor:  editor,
		list:    list.New(s, "Aucune page"),
		prompt:  input.NewPrompt(s, "Titre", "Nouvelle page"),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for saves.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSnapshot shows an editor state.
func (v *View) SetSnapshot(snapshot domain.EditorSnapshot) {
	v.snapshot = snapshot
	items := make([]list.Item, 0, len(snapshot.Pages))
	for _, page := range snapshot.Pages {
		items = append(items, list.Item{
			ID:     page.ID,
			Title:  page.Title,
			Badge:  pageBadge(page),
			Detail: fmt.Sprintf("/%s · %d blocs", page.Slug, len(page.Structure)),
		})
	}
	v.list.SetItems(items)

	switch {
	case v.focusID != "":
		v.list.SelectByID(v.focusID)
		v.focusID = ""
	case snapshot.CurrentPageID != "":
		v.list.SelectByID(snapshot.CurrentPageID)
	}
}

func pageBadge(page domain.Page) string {
	var parts []string
	if page.Meta.IsHomepage {
		parts = append(parts, "accueil")
	}
	if !page.Meta.ShowInMenu {
		parts = append(parts, "masquée")
	}
	return strings.Join(parts, ", ")
}

// Snapshot returns the state being shown.
func (v *View) Snapshot() domain.EditorSnapshot {
	return v.snapshot
}

// Init refreshes from the editor.
func (v *View) Init() tea.Cmd {
	return v.edit(func() error { return nil })
}

// edit runs fn against the editor and reports the resulting snapshot.
func (v *View) edit(fn func() error) tea.Cmd {
	editor := v.editor
	return func() tea.Msg {
		if editor == nil {
			return messages.PagesChanged{Err: domain.ErrNoSession}
		}
		err := fn()
		return messages.PagesChanged{Snapshot: editor.Snapshot(), Err: err}
	}
}

func (v *View) save() tea.Cmd {
	ctx := v.ctx
	session := v.session
	return func() tea.Msg {
		if session == nil {
			return messages.SiteSaved{Err: domain.ErrNoSession}
		}
		site, err := session.Commit(ctx)
		return messages.SiteSaved{Site: site, Err: err}
	}
}

// Update handles messages for the organiser.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.PagesChanged:
		v.err = msg.Err
		if msg.Snapshot.Site != nil {
			v.SetSnapshot(msg.Snapshot)
		}

	case messages.SiteSaved:
		v.err = msg.Err
		if msg.Err == nil {
			v.notice = "Site enregistré"
			return v, v.edit(func() error { return nil })
		}

	case tea.KeyMsg:
		switch v.mode {
		case modeAdd:
			return v.handleAddKeys(msg)
		case modeConfirmDelete:
			return v.handleConfirmKeys(msg)
		case modeBrowse:
			return v.handleBrowseKeys(msg)
		}
	}
	return v, nil
}

func (v *View) handleBrowseKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	v.notice = ""

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSites} }
	case keymap.Matches(k, v.keymap.Save):
		v.notice = "Enregistrement..."
		return v, v.save()
	}

	if v.snapshot.Mode != domain.ModePages {
		if isEditKey(k, v.keymap) {
			v.err = ErrTemplateMode
		}
		return v, nil
	}

	selected, ok := v.list.SelectedItem()
	switch {
	case keymap.Matches(k, v.keymap.MoveUp):
		if ok {
			return v, v.move(selected.ID, -1)
		}
	case keymap.Matches(k, v.keymap.MoveDown):
		if ok {
			return v, v.move(selected.ID, 1)
		}
	case keymap.Matches(k, v.keymap.Add):
		v.mode = modeAdd
		v.prompt.Reset()
		return v, v.prompt.Focus()
	case keymap.Matches(k, v.keymap.Delete):
		if ok {
			v.mode = modeConfirmDelete
		}
	case keymap.Matches(k, v.keymap.Toggle):
		if ok {
			return v, v.toggleMenu(selected.ID)
		}
	case keymap.Matches(k, v.keymap.Menu):
		editor := v.editor
		v.notice = "Menu régénéré"
		return v, v.edit(func() error { return editor.RegenerateNavigation() })
	case keymap.Matches(k, v.keymap.Select):
		if ok {
			editor := v.editor
			id := selected.ID
			return v, v.edit(func() error { return editor.SetCurrentPage(id) })
		}
	default:
		v.list, _ = v.list.Update(msg)
	}
	return v, nil
}

func isEditKey(k string, km *keymap.KeyMap) bool {
	for _, b := range []key.Binding{km.MoveUp, km.MoveDown, km.Add, km.Delete, km.Toggle, km.Menu} {
		if keymap.Matches(k, b) {
			return true
		}
	}
	return false
}

func (v *View) handleAddKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // only enter and esc are special while typing
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = modeBrowse
		v.prompt.Reset()
		return v, nil
	case tea.KeyEnter:
		title := v.prompt.Value()
		v.mode = modeBrowse
		v.prompt.Reset()
		if title == "" {
			return v, nil
		}
		editor := v.editor
		return v, v.edit(func() error {
			_, err := editor.CreatePage(title)
			return err
		})
	}
	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) handleConfirmKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.mode = modeBrowse
	if msg.String() != "y" {
		return v, nil
	}
	selected, ok := v.list.SelectedItem()
	if !ok {
		return v, nil
	}
	editor := v.editor
	return v, v.edit(func() error { return editor.RemovePage(selected.ID) })
}

// move shifts a page by delta positions and renumbers all pages.
func (v *View) move(pageID string, delta int) tea.Cmd {
	ids := make([]string, len(v.snapshot.Pages))
	from := -1
	for i, page := range v.snapshot.Pages {
		ids[i] = page.ID
		if page.ID == pageID {
			from = i
		}
	}
	to := from + delta
	if from < 0 || to < 0 || to >= len(ids) {
		return nil
	}
	ids[from], ids[to] = ids[to], ids[from]

	v.focusID = pageID
	editor := v.editor
	return v.edit(func() error {
		editor.ReorderPages(ids)
		return nil
	})
}

func (v *View) toggleMenu(pageID string) tea.Cmd {
	page, ok := v.snapshot.Page(pageID)
	if !ok {
		return nil
	}
	meta := page.Meta
	meta.ShowInMenu = !meta.ShowInMenu

	v.focusID = pageID
	editor := v.editor
	return v.edit(func() error {
		return editor.UpdatePage(pageID, domain.PageUpdate{Meta: &meta})
	})
}

// View renders the organiser.
func (v *View) View() string {
	var b strings.Builder

	title := "Pages"
	if v.snapshot.Site != nil {
		title += " · " + v.snapshot.Site.CoupleName
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if v.snapshot.Mode == domain.ModeTemplate {
		b.WriteString(v.styles.Warning.Render("Site en mode modèle (une seule page)."))
		b.WriteString("\n\n")
	}

	b.WriteString(v.list.View())
	b.WriteString("\n\n")

	if page, ok := v.selectedPage(); ok {
		b.WriteString(v.renderOutline(page))
		b.WriteString("\n")
	}
	if menu := v.renderMenu(); menu != "" {
		b.WriteString(menu)
		b.WriteString("\n")
	}

	switch v.mode {
	case modeAdd:
		b.WriteString("\n")
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
	case modeConfirmDelete:
		if item, ok := v.list.SelectedItem(); ok {
			b.WriteString("\n")
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Supprimer « %s » ? [y/N]", item.Title)))
			b.WriteString("\n")
		}
	case modeBrowse:
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Erreur: " + v.err.Error()))
		b.WriteString("\n")
	} else if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) selectedPage() (domain.Page, bool) {
	item, ok := v.list.SelectedItem()
	if !ok {
		return domain.Page{}, false
	}
	return v.snapshot.Page(item.ID)
}

func (v *View) renderOutline(page domain.Page) string {
	types := make([]string, 0, len(page.Structure))
	for _, block := range page.Structure {
		types = append(types, string(block.Type))
	}
	if len(types) == 0 {
		return v.styles.Muted.Render("Blocs: aucun")
	}
	return v.styles.Muted.Render("Blocs: " + strings.Join(types, ", "))
}

func (v *View) renderMenu() string {
	menu := v.snapshot.Menu
	if menu == nil {
		return ""
	}
	labels := make([]string, 0, len(menu.Items))
	for _, item := range menu.Items {
		if item.IsVisible {
			labels = append(labels, item.Label)
		}
	}
	return v.styles.Subtitle.Render(fmt.Sprintf("Menu (%s): ", menu.Style)) +
		v.styles.Normal.Render(strings.Join(labels, " · "))
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Adding reports whether the title prompt is open.
func (v *View) Adding() bool {
	return v.mode == modeAdd
}

// Confirming reports whether a delete awaits confirmation.
func (v *View) Confirming() bool {
	return v.mode == modeConfirmDelete
}

// SelectedID returns the id of the selected page.
func (v *View) SelectedID() string {
	item, _ := v.list.SelectedItem()
	return item.ID
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-12)
	v.prompt.SetWidth(width)
}
