// Package sites lists stored sites and opens one for editing.
package sites

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// ErrNoSession is reported when the view has no session service.
var ErrNoSession = errors.New("session service not available")

// View lists sites. Enter opens the selected one.
type View struct {
	ctx     context.Context
	styles  *styles.Styles
	session driving.SessionService
	editor  driving.Editor

	list    *list.List
	sites   []domain.Site
	loading bool
	err     error

	width  int
	height int
}

// NewView creates a sites view.
func NewView(s *styles.Styles, session driving.SessionService, editor driving.Editor) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:     context.Background(),
		styles:  s,
		session: session,
		editor:  editor,
		list:    list.New(s, "Aucun site. Créez-en un avec `sitesmith site create`."),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the sites.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadSites()
}

func (v *View) loadSites() tea.Cmd {
	ctx := v.ctx
	session := v.session
	return func() tea.Msg {
		if session == nil {
			return messages.SitesLoaded{Err: ErrNoSession}
		}
		sites, err := session.ListSites(ctx)
		return messages.SitesLoaded{Sites: sites, Err: err}
	}
}

func (v *View) openSite(id string) tea.Cmd {
	ctx := v.ctx
	session := v.session
	editor := v.editor
	return func() tea.Msg {
		if session == nil || editor == nil {
			return messages.SiteOpened{Err: ErrNoSession}
		}
		if err := session.Open(ctx, id); err != nil {
			return messages.SiteOpened{Err: fmt.Errorf("opening site %s: %w", id, err)}
		}
		return messages.SiteOpened{Snapshot: editor.Snapshot()}
	}
}

// Update handles messages for the sites view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SitesLoaded:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.SetSites(msg.Sites)
		}

	case messages.SiteOpened:
		v.err = msg.Err

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case "r":
			v.loading = true
			return v, v.loadSites()
		case "enter":
			item, ok := v.list.SelectedItem()
			if !ok {
				return v, nil
			}
			return v, v.openSite(item.ID)
		default:
			v.list, _ = v.list.Update(msg)
		}
	}
	return v, nil
}

// View renders the sites list.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Sites"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Chargement..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Erreur: " + v.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(v.list.View())
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Open  [r] Refresh  [Esc] Back"))
	return b.String()
}

// SetSites replaces the listed sites.
func (v *View) SetSites(sites []domain.Site) {
	v.sites = sites
	items := make([]list.Item, 0, len(sites))
	for _, site := range sites {
		badge := string(site.Mode)
		if site.IsPublished {
			badge += ", publié"
		}
		items = append(items, list.Item{
			ID:     site.ID,
			Title:  site.CoupleName,
			Badge:  badge,
			Detail: fmt.Sprintf("%s · modèle %s", site.Slug, site.TemplateID),
		})
	}
	v.list.SetItems(items)
}

// Sites returns the listed sites.
func (v *View) Sites() []domain.Site {
	return v.sites
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
}
