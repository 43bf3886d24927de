package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/views/pages"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/views/sites"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView     *menu.View
	sitesView    *sites.View
	pagesView    *pages.View
	settingsView *settings.View
	statusBar    *status.Bar

	currentView messages.ViewType

	// err holds the last error that reached the app.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		menuView:     menu.NewView(s),
		sitesView:    sites.NewView(s, ports.Session, ports.Editor),
		pagesView:    pages.NewView(s, km, ports.Session, ports.Editor),
		settingsView: settings.NewView(s, ports.Settings),
		statusBar:    status.NewBar(s, km),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.sitesView.WithContext(ctx)
	a.pagesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sitesmith"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SitesLoaded:
		a.sitesView, cmd = a.sitesView.Update(msg)
		return a, cmd

	case messages.SiteOpened:
		if msg.Err != nil {
			a.err = msg.Err
			a.sitesView, cmd = a.sitesView.Update(msg)
			return a, cmd
		}
		a.err = nil
		a.pagesView.SetSnapshot(msg.Snapshot)
		a.statusBar.SetSnapshot(msg.Snapshot)
		a.currentView = messages.ViewPages
		a.statusBar.SetBindings(a.keymap.PagesHelp())
		return a, nil

	case messages.PagesChanged:
		if msg.Snapshot.Site != nil {
			a.statusBar.SetSnapshot(msg.Snapshot)
		}
		a.pagesView, cmd = a.pagesView.Update(msg)
		return a, cmd

	case messages.SiteSaved:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.pagesView, cmd = a.pagesView.Update(msg)
		return a, cmd

	case messages.SnapshotUpdated:
		a.statusBar.SetSnapshot(msg.Snapshot)
		return a, nil

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		if keymap.Matches(msg.String(), a.keymap.Help) {
			a.currentView = messages.ViewHelp
			return a, nil
		}
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSites:
		a.sitesView, cmd = a.sitesView.Update(msg)
	case messages.ViewPages:
		a.pagesView, cmd = a.pagesView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Quit) {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

// switchTo activates a view and runs its initial command.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	switch view {
	case messages.ViewSites:
		a.statusBar.SetBindings(nil)
		return a.sitesView.Init()
	case messages.ViewPages:
		a.statusBar.SetBindings(a.keymap.PagesHelp())
		return a.pagesView.Init()
	case messages.ViewSettings:
		a.statusBar.SetBindings(nil)
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
		a.statusBar.SetBindings(nil)
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewSites:
		body = a.sitesView.View()
	case messages.ViewPages:
		body = a.pagesView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Sites:
  j/k, ↑/↓    Navigate
  enter       Open site
  r           Refresh

Pages (multi-page sites):
  K / J       Move page up / down
  a           Add page
  d           Delete page (asks first)
  h           Show or hide in the menu
  enter       Make current page
  m           Rebuild the menu from the pages
  s           Save

[esc] back to menu`
}

// Run starts the TUI application. Editor changes made by background saves
// are forwarded to the status bar while it runs.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))

	unsubscribe := a.forwardSnapshots(p.Send)
	defer unsubscribe()

	_, err := p.Run()
	return err
}

// forwardSnapshots sends every editor snapshot to send as SnapshotUpdated.
// Editor mutations run in commands, off the event loop, so send may block.
func (a *App) forwardSnapshots(send func(tea.Msg)) (unsubscribe func()) {
	return a.ports.Editor.Subscribe(func(snapshot domain.EditorSnapshot) {
		send(messages.SnapshotUpdated{Snapshot: snapshot})
	})
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// leave two lines for the status bar
	a.menuView.SetDimensions(width, height-2)
	a.sitesView.SetDimensions(width, height-2)
	a.pagesView.SetDimensions(width, height-2)
	a.settingsView.SetDimensions(width, height-2)
	a.statusBar.SetWidth(width)
}
