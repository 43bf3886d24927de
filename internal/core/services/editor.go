package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Ensure Editor implements the interface.
var _ driving.Editor = (*Editor)(nil)

// Editor owns the state of one editing session. Every mutation builds a new
// snapshot from a copy of the current one, so a snapshot is never changed
// after it has been published.
//
// Subscribers are called synchronously, one snapshot at a time, in version
// order. A mutation made from inside a subscriber is applied immediately but
// its snapshot is queued behind the one being delivered.
type Editor struct {
	library driving.BlockLibrary
	merge   driving.MergeEngine
	nav     driving.NavigationSynchronizer
	now     func() time.Time

	mu    sync.Mutex
	state domain.EditorSnapshot

	listeners    []listenerEntry
	nextListener uint64
	queue        []domain.EditorSnapshot
	delivering   bool
}

type listenerEntry struct {
	id uint64
	fn driving.SnapshotListener
}

// NewEditor creates an editor. The library is only needed by AddBlockOfType
// and Validate in pages mode.
func NewEditor(
	library driving.BlockLibrary,
	merge driving.MergeEngine,
	nav driving.NavigationSynchronizer,
) *Editor {
	if merge == nil {
		merge = NewMergeEngine()
	}
	if nav == nil {
		nav = NewNavigationService(domain.MenuHorizontal)
	}
	return &Editor{
		library: library,
		merge:   merge,
		nav:     nav,
		now:     time.Now,
		state:   domain.EditorSnapshot{Mode: domain.ModeTemplate, Data: domain.DataRecord{}, Theme: domain.DefaultTheme(), BaseTheme: domain.DefaultTheme()},
	}
}

// transition applies fn to a copy of the state and publishes the result.
// A content transition bumps the revision and marks the session dirty.
// When fn fails nothing is published.
func (e *Editor) transition(content bool, fn func(next *domain.EditorSnapshot) error) error {
	e.mu.Lock()
	next := e.state.Clone()
	if err := fn(&next); err != nil {
		e.mu.Unlock()
		return err
	}
	next.Version = e.state.Version + 1
	if content {
		next.Revision = e.state.Revision + 1
		next.IsDirty = true
	}
	e.state = next
	e.queue = append(e.queue, next.Clone())
	e.mu.Unlock()

	e.deliver()
	return nil
}

// deliver drains the snapshot queue. Only one caller drains at a time; others
// leave their snapshots for it.
func (e *Editor) deliver() {
	e.mu.Lock()
	if e.delivering {
		e.mu.Unlock()
		return
	}
	e.delivering = true

	for len(e.queue) > 0 {
		snapshot := e.queue[0]
		e.queue = e.queue[1:]
		listeners := append([]listenerEntry(nil), e.listeners...)
		e.mu.Unlock()

		for _, l := range listeners {
			l.fn(snapshot.Clone())
		}

		e.mu.Lock()
	}

	e.delivering = false
	e.mu.Unlock()
}

// Subscribe registers a listener for every later transition.
func (e *Editor) Subscribe(listener driving.SnapshotListener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextListener++
	id := e.nextListener
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: listener})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a deep copy of the current state.
func (e *Editor) Snapshot() domain.EditorSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Theme returns the current theme.
func (e *Editor) Theme() domain.Theme {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Theme
}

// CurrentPage returns a copy of the page being edited.
func (e *Editor) CurrentPage() (domain.Page, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentPage()
}

// CurrentBlock returns a copy of the selected block.
func (e *Editor) CurrentBlock() (domain.Block, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentBlock()
}

// ========================
// Session lifecycle
// ========================

// InitTemplateMode starts a session editing a site through its template.
func (e *Editor) InitTemplateMode(site domain.Site, tmpl domain.Template) {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		base := tmpl.DefaultTheme.Complete(domain.DefaultTheme())
		siteCopy := site.Clone()
		tmplCopy := tmpl.Clone()

		*next = domain.EditorSnapshot{
			Revision:  next.Revision,
			Mode:      domain.ModeTemplate,
			Site:      &siteCopy,
			Template:  &tmplCopy,
			Data:      site.Data.Clone(),
			Theme:     base.Apply(site.ThemeOverrides),
			BaseTheme: base,
		}
		return nil
	})
	logger.Debug("editor: template session for site %s (template %s)", site.ID, tmpl.ID)
}

// InitPagesMode starts a multi-page session. Pages are sorted by order and
// the first one becomes the current page. The site's overrides are layered on
// base; roles base leaves empty come from the default theme.
func (e *Editor) InitPagesMode(
	site domain.Site,
	pages []domain.Page,
	catalog []domain.BlockTypeDefinition,
	menu *domain.NavigationMenu,
	base domain.Theme,
) {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		base := base.Complete(domain.DefaultTheme())
		siteCopy := site.Clone()
		sorted := domain.ClonePages(pages)
		if sorted == nil {
			sorted = []domain.Page{}
		}
		sortPages(sorted)

		*next = domain.EditorSnapshot{
			Revision:     next.Revision,
			Mode:         domain.ModePages,
			Site:         &siteCopy,
			Data:         site.Data.Clone(),
			Theme:        base.Apply(site.ThemeOverrides),
			BaseTheme:    base,
			Pages:        sorted,
			BlockLibrary: domain.CloneCatalog(catalog),
		}
		if len(sorted) > 0 {
			next.CurrentPageID = sorted[0].ID
		}
		if menu != nil {
			m := menu.Clone()
			next.Menu = &m
		}
		return nil
	})
	logger.Debug("editor: pages session for site %s (%d pages)", site.ID, len(pages))
}

// Reset discards the session. Listeners stay subscribed.
func (e *Editor) Reset() {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		*next = domain.EditorSnapshot{
			Revision:  next.Revision,
			Mode:      domain.ModeTemplate,
			Data:      domain.DataRecord{},
			Theme:     domain.DefaultTheme(),
			BaseTheme: domain.DefaultTheme(),
		}
		return nil
	})
}

// SetMode switches between template and pages mode.
func (e *Editor) SetMode(mode domain.SiteMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}
	return e.transition(false, func(next *domain.EditorSnapshot) error {
		next.Mode = mode
		return nil
	})
}

// SetBaseTheme changes the theme overrides are layered on. Overrides already
// made against the previous base are kept.
func (e *Editor) SetBaseTheme(theme domain.Theme) {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		overrides := next.Theme.Diff(next.BaseTheme)
		next.BaseTheme = theme.Complete(domain.DefaultTheme())
		next.Theme = next.BaseTheme.Apply(overrides)
		return nil
	})
}

// SetBlockLibrary replaces the catalog offered in pages mode.
func (e *Editor) SetBlockLibrary(catalog []domain.BlockTypeDefinition) {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		next.BlockLibrary = domain.CloneCatalog(catalog)
		return nil
	})
}

// ========================
// Data record and theme
// ========================

// UpdateData replaces the whole data record.
func (e *Editor) UpdateData(data domain.DataRecord) {
	_ = e.transition(true, func(next *domain.EditorSnapshot) error {
		next.Data = data.Clone()
		return nil
	})
}

// UpdateDataField sets one field of the data record.
func (e *Editor) UpdateDataField(field string, value any) {
	_ = e.transition(true, func(next *domain.EditorSnapshot) error {
		next.Data[field] = domain.CloneValue(value)
		return nil
	})
}

// UpdateDataFields sets several fields at once, keeping the others.
func (e *Editor) UpdateDataFields(fields domain.DataRecord) {
	_ = e.transition(true, func(next *domain.EditorSnapshot) error {
		for field, value := range fields {
			next.Data[field] = domain.CloneValue(value)
		}
		return nil
	})
}

// UpdateTheme replaces the theme. Empty roles fall back to the base theme.
func (e *Editor) UpdateTheme(theme domain.Theme) {
	_ = e.transition(true, func(next *domain.EditorSnapshot) error {
		next.Theme = theme.Complete(next.BaseTheme)
		return nil
	})
}

// SetColor sets one colour role.
func (e *Editor) SetColor(role domain.ColorRole, value string) error {
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		theme, err := next.Theme.WithColor(role, value)
		if err != nil {
			return err
		}
		next.Theme = theme.Complete(next.BaseTheme)
		return nil
	})
}

// SetFont sets one font role.
func (e *Editor) SetFont(role domain.FontRole, value string) error {
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		theme, err := next.Theme.WithFont(role, value)
		if err != nil {
			return err
		}
		next.Theme = theme.Complete(next.BaseTheme)
		return nil
	})
}

// ========================
// Save lifecycle
// ========================

// StartSaving marks a save in flight and returns the revision being saved.
func (e *Editor) StartSaving() uint64 {
	var revision uint64
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		next.IsSaving = true
		next.Error = ""
		revision = next.Revision
		return nil
	})
	return revision
}

// FinishSaving ends a successful save. The session only becomes clean when
// nothing was edited since revision was handed out by StartSaving.
func (e *Editor) FinishSaving(site *domain.Site, revision uint64) {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		next.IsSaving = false
		next.Error = ""
		if site != nil {
			saved := site.Clone()
			next.Site = &saved
		}
		if next.Revision == revision {
			next.IsDirty = false
		}
		return nil
	})
}

// FailSaving ends a failed save. The session stays dirty so a retry is safe.
func (e *Editor) FailSaving(err error) {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		next.IsSaving = false
		if err != nil {
			next.Error = err.Error()
		} else {
			next.Error = "save failed"
		}
		return nil
	})
}

// ClearError dismisses the last save error.
func (e *Editor) ClearError() {
	_ = e.transition(false, func(next *domain.EditorSnapshot) error {
		next.Error = ""
		return nil
	})
}

// ========================
// Pages
// ========================

// CreatePage appends a new page titled title and makes it current.
func (e *Editor) CreatePage(title string) (domain.Page, error) {
	if title == "" {
		return domain.Page{}, fmt.Errorf("%w: page title is required", domain.ErrInvalidInput)
	}

	var created domain.Page
	err := e.transition(true, func(next *domain.EditorSnapshot) error {
		if err := requirePagesSession(next); err != nil {
			return err
		}
		created = NewPage(next.Site.ID, title, next.Pages, e.now())
		next.Pages = append(next.Pages, created.Clone())
		next.CurrentPageID = created.ID
		next.CurrentBlockID = ""
		e.repairMenu(next)
		return nil
	})
	if err != nil {
		return domain.Page{}, err
	}
	return created, nil
}

// AddPage appends an existing page. Ids must be unique; a missing slug is
// derived from the title.
func (e *Editor) AddPage(page domain.Page) error {
	if page.ID == "" {
		return fmt.Errorf("%w: page id is required", domain.ErrInvalidInput)
	}
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		if err := requirePagesSession(next); err != nil {
			return err
		}
		if _, exists := next.Page(page.ID); exists {
			return fmt.Errorf("%w: page %s", domain.ErrAlreadyExists, page.ID)
		}

		added := page.Clone()
		added.SiteID = next.Site.ID
		if added.Slug == "" {
			added.Slug = uniquePageSlug(next.Pages, Slugify(added.Title), "")
		}
		if added.Order <= 0 {
			added.Order = domain.NextPageOrder(next.Pages)
		}
		if added.Structure == nil {
			added.Structure = []domain.Block{}
		}
		if len(next.Pages) == 0 {
			added.Meta.IsHomepage = true
		}
		next.Pages = append(next.Pages, added)
		sortPages(next.Pages)
		e.repairMenu(next)
		return nil
	})
}

// UpdatePage applies a partial update. A new title without a new slug
// re-derives the slug.
func (e *Editor) UpdatePage(pageID string, update domain.PageUpdate) error {
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		i, err := pageIndex(next, pageID)
		if err != nil {
			return err
		}

		page := update.ApplyTo(next.Pages[i])
		if update.Title != nil && update.Slug == nil {
			page.Slug = uniquePageSlug(next.Pages, Slugify(page.Title), page.ID)
		}
		page.UpdatedAt = e.now()
		next.Pages[i] = page

		if update.Order != nil {
			sortPages(next.Pages)
		}
		if next.CurrentBlockID != "" && next.CurrentPageID == pageID {
			if _, ok := domain.FindBlock(page.Structure, next.CurrentBlockID); !ok {
				next.CurrentBlockID = ""
			}
		}
		e.repairMenu(next)
		return nil
	})
}

// RemovePage deletes a page. When it was current, the first remaining page
// becomes current; when it was the homepage, the first remaining page
// becomes the homepage.
func (e *Editor) RemovePage(pageID string) error {
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		i, err := pageIndex(next, pageID)
		if err != nil {
			return err
		}

		removed := next.Pages[i]
		next.Pages = append(next.Pages[:i:i], next.Pages[i+1:]...)

		if removed.Meta.IsHomepage && len(next.Pages) > 0 {
			next.Pages[0].Meta.IsHomepage = true
		}
		if next.CurrentPageID == pageID {
			next.CurrentPageID = ""
			next.CurrentBlockID = ""
			if len(next.Pages) > 0 {
				next.CurrentPageID = next.Pages[0].ID
			}
		}
		e.repairMenu(next)
		return nil
	})
}

// ReorderPages renumbers pages 1..n in the order of pageIDs. Pages not named
// are dropped and unknown ids ignored.
func (e *Editor) ReorderPages(pageIDs []string) {
	_ = e.transition(true, func(next *domain.EditorSnapshot) error {
		byID := make(map[string]domain.Page, len(next.Pages))
		for _, page := range next.Pages {
			byID[page.ID] = page
		}

		reordered := make([]domain.Page, 0, len(pageIDs))
		for _, id := range pageIDs {
			page, ok := byID[id]
			if !ok {
				continue
			}
			delete(byID, id)
			page.Order = len(reordered) + 1
			reordered = append(reordered, page)
		}
		next.Pages = reordered

		if _, ok := next.Page(next.CurrentPageID); !ok {
			next.CurrentPageID = ""
			next.CurrentBlockID = ""
		}
		e.repairMenu(next)
		return nil
	})
}

// SetCurrentPage selects a page, or clears the selection when pageID is
// empty. The block selection is cleared either way.
func (e *Editor) SetCurrentPage(pageID string) error {
	return e.transition(false, func(next *domain.EditorSnapshot) error {
		if pageID != "" {
			if _, err := pageIndex(next, pageID); err != nil {
				return err
			}
		}
		next.CurrentPageID = pageID
		next.CurrentBlockID = ""
		return nil
	})
}

// SetCurrentBlock selects a block of the active tree, or clears the selection
// when blockID is empty.
func (e *Editor) SetCurrentBlock(blockID string) error {
	return e.transition(false, func(next *domain.EditorSnapshot) error {
		if blockID == "" {
			next.CurrentBlockID = ""
			return nil
		}
		tree, err := activeTree(next, "")
		if err != nil {
			return err
		}
		if _, ok := domain.FindBlock(tree, blockID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrBlockNotFound, blockID)
		}
		next.CurrentBlockID = blockID
		return nil
	})
}

// ========================
// Blocks
// ========================

// AddBlock inserts block into the top level of a tree at index at, or
// appends it when at is out of range.
func (e *Editor) AddBlock(pageID string, block domain.Block, at int) error {
	return e.editTree(pageID, func(tree []domain.Block) ([]domain.Block, error) {
		return AddBlock(tree, block, at)
	})
}

// AddBlockOfType creates a block from the library and inserts it.
func (e *Editor) AddBlockOfType(ctx context.Context, pageID string, blockType domain.BlockType, at int) (domain.Block, error) {
	if e.library == nil {
		return domain.Block{}, domain.ErrNotImplemented
	}
	block, err := e.library.CreateInstance(ctx, blockType)
	if err != nil {
		return domain.Block{}, err
	}
	if err := e.AddBlock(pageID, block, at); err != nil {
		return domain.Block{}, err
	}
	return block, nil
}

// AddChildBlock nests block under parentID.
func (e *Editor) AddChildBlock(pageID, parentID string, block domain.Block, at int) error {
	return e.editTree(pageID, func(tree []domain.Block) ([]domain.Block, error) {
		return AddChildBlock(tree, parentID, block, at)
	})
}

// UpdateBlockProperties shallow-merges props into a block. A missing block
// is a no-op.
func (e *Editor) UpdateBlockProperties(pageID, blockID string, props map[string]any) error {
	err := e.editTree(pageID, func(tree []domain.Block) ([]domain.Block, error) {
		return UpdateBlockProperties(tree, blockID, props)
	})
	return ignoreMissingBlock(err, "update")
}

// RemoveBlock removes a block and its children. A missing block is a no-op.
func (e *Editor) RemoveBlock(pageID, blockID string) error {
	err := e.editTree(pageID, func(tree []domain.Block) ([]domain.Block, error) {
		return RemoveBlock(tree, blockID)
	})
	return ignoreMissingBlock(err, "remove")
}

// ReorderBlocks reorders the top level of a tree, or the children of
// parentID. A missing parent is a no-op.
func (e *Editor) ReorderBlocks(pageID, parentID string, blockIDs []string) error {
	err := e.editTree(pageID, func(tree []domain.Block) ([]domain.Block, error) {
		return ReorderBlocks(tree, parentID, blockIDs)
	})
	return ignoreMissingBlock(err, "reorder")
}

// MoveBlock moves a top-level or nested block to the top level of another
// page, in a single transition. Moving within one page is allowed.
func (e *Editor) MoveBlock(fromPageID, toPageID, blockID string, at int) error {
	err := e.transition(true, func(next *domain.EditorSnapshot) error {
		if err := requirePagesSession(next); err != nil {
			return err
		}
		from, err := pageIndex(next, fromPageID)
		if err != nil {
			return err
		}
		to, err := pageIndex(next, toPageID)
		if err != nil {
			return err
		}

		block, ok := domain.FindBlock(next.Pages[from].Structure, blockID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrBlockNotFound, blockID)
		}
		source, err := RemoveBlock(next.Pages[from].Structure, blockID)
		if err != nil {
			return err
		}
		next.Pages[from].Structure = source

		target, err := AddBlock(next.Pages[to].Structure, block, at)
		if err != nil {
			return err
		}
		next.Pages[to].Structure = target

		now := e.now()
		next.Pages[from].UpdatedAt = now
		next.Pages[to].UpdatedAt = now
		if next.CurrentBlockID == blockID {
			next.CurrentBlockID = ""
		}
		return nil
	})
	return ignoreMissingBlock(err, "move")
}

// editTree runs a structural edit on the tree addressed by pageID: the
// template working copy in template mode, otherwise the page (or the current
// page when pageID is empty).
func (e *Editor) editTree(pageID string, edit func(tree []domain.Block) ([]domain.Block, error)) error {
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		if next.Mode == domain.ModeTemplate {
			if next.Template == nil {
				return domain.ErrNoActiveTree
			}
			tree, err := edit(next.Template.Structure)
			if err != nil {
				return err
			}
			next.Template.Structure = tree
			dropStaleBlockSelection(next, tree)
			return nil
		}

		if pageID == "" {
			pageID = next.CurrentPageID
		}
		if pageID == "" {
			return domain.ErrNoActiveTree
		}
		i, err := pageIndex(next, pageID)
		if err != nil {
			return err
		}
		tree, err := edit(next.Pages[i].Structure)
		if err != nil {
			return err
		}
		next.Pages[i].Structure = tree
		next.Pages[i].UpdatedAt = e.now()
		if pageID == next.CurrentPageID {
			dropStaleBlockSelection(next, tree)
		}
		return nil
	})
}

// ========================
// Navigation
// ========================

// SetNavigationMenu replaces the menu.
func (e *Editor) SetNavigationMenu(menu domain.NavigationMenu) {
	_ = e.transition(true, func(next *domain.EditorSnapshot) error {
		m := menu.Clone()
		next.Menu = &m
		return nil
	})
}

// UpdateNavigationMenu replaces the menu items and, when style is not empty,
// the style.
func (e *Editor) UpdateNavigationMenu(items []domain.MenuItem, style domain.MenuStyle) error {
	if style != "" && !style.IsValid() {
		return fmt.Errorf("%w: unknown menu style %q", domain.ErrInvalidInput, style)
	}
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		if next.Menu == nil {
			return fmt.Errorf("navigation menu: %w", domain.ErrNotFound)
		}
		if items != nil {
			next.Menu.Items = append([]domain.MenuItem{}, items...)
		}
		if style != "" {
			next.Menu.Style = style
		}
		return nil
	})
}

// RegenerateNavigation rebuilds the menu from the pages, discarding manual
// edits but keeping the style.
func (e *Editor) RegenerateNavigation() error {
	return e.transition(true, func(next *domain.EditorSnapshot) error {
		if err := requirePagesSession(next); err != nil {
			return err
		}
		menu := e.nav.GenerateFromPages(next.Site.ID, next.Pages)
		if next.Menu != nil && next.Menu.Style.IsValid() {
			menu.Style = next.Menu.Style
		}
		next.Menu = &menu
		return nil
	})
}

// repairMenu keeps the menu in step with the pages within the same transition.
func (e *Editor) repairMenu(next *domain.EditorSnapshot) {
	if next.Site == nil {
		return
	}
	menu := e.nav.Repair(next.Site.ID, next.Menu, next.Pages)
	next.Menu = &menu
}

// ========================
// Derived views
// ========================

// Preview merges the template in template mode, or the current page in
// pages mode.
func (e *Editor) Preview() (*domain.MergedSite, error) {
	snapshot := e.Snapshot()

	if snapshot.Mode == domain.ModeTemplate {
		if snapshot.Template == nil {
			return nil, domain.ErrNoSession
		}
		return e.merge.Merge(snapshot.Template, snapshot.Data, snapshot.Theme)
	}

	page, ok := snapshot.CurrentPage()
	if !ok {
		return nil, domain.ErrNoActiveTree
	}
	merged, err := e.merge.MergePage(page, snapshot.Data, snapshot.Theme, snapshot.Menu)
	if err != nil {
		return nil, err
	}
	coupleName := snapshot.Data.String(domain.FieldCoupleName)
	return &domain.MergedSite{
		Structure: merged.Structure,
		Theme:     merged.Theme,
		Metadata: domain.MergedMetadata{
			CoupleName:  coupleName,
			WeddingDate: snapshot.Data.String(domain.FieldWeddingDate),
			Slug:        Slugify(coupleName),
		},
	}, nil
}

// PreviewPage merges one page with the session's data, theme and menu.
func (e *Editor) PreviewPage(pageID string) (*domain.MergedPage, error) {
	snapshot := e.Snapshot()
	page, ok := snapshot.Page(pageID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, pageID)
	}
	return e.merge.MergePage(page, snapshot.Data, snapshot.Theme, snapshot.Menu)
}

// Validate returns every problem at once: missing required fields in template
// mode, and every block's missing required properties in pages mode.
func (e *Editor) Validate(ctx context.Context) []string {
	snapshot := e.Snapshot()

	if snapshot.Mode == domain.ModeTemplate {
		if snapshot.Template == nil {
			return nil
		}
		return e.merge.ValidateRequiredFields(*snapshot.Template, snapshot.Data)
	}

	if e.library == nil {
		return nil
	}
	var messages []string
	for _, page := range snapshot.Pages {
		var walk func(blocks []domain.Block)
		walk = func(blocks []domain.Block) {
			for i := range blocks {
				for _, msg := range e.library.Validate(ctx, blocks[i]) {
					messages = append(messages, fmt.Sprintf("%s: %s", page.Title, msg))
				}
				walk(blocks[i].Children)
			}
		}
		walk(page.Structure)
	}
	return messages
}

// ========================
// Helpers
// ========================

func requirePagesSession(s *domain.EditorSnapshot) error {
	if s.Site == nil {
		return domain.ErrNoSession
	}
	if s.Mode != domain.ModePages {
		return fmt.Errorf("%w: site is not in pages mode", domain.ErrInvalidInput)
	}
	return nil
}

func pageIndex(s *domain.EditorSnapshot, pageID string) (int, error) {
	for i := range s.Pages {
		if s.Pages[i].ID == pageID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", domain.ErrPageNotFound, pageID)
}

// activeTree returns the tree block selection applies to.
func activeTree(s *domain.EditorSnapshot, pageID string) ([]domain.Block, error) {
	if s.Mode == domain.ModeTemplate {
		if s.Template == nil {
			return nil, domain.ErrNoActiveTree
		}
		return s.Template.Structure, nil
	}
	if pageID == "" {
		pageID = s.CurrentPageID
	}
	if pageID == "" {
		return nil, domain.ErrNoActiveTree
	}
	i, err := pageIndex(s, pageID)
	if err != nil {
		return nil, err
	}
	return s.Pages[i].Structure, nil
}

func dropStaleBlockSelection(s *domain.EditorSnapshot, tree []domain.Block) {
	if s.CurrentBlockID == "" {
		return
	}
	if _, ok := domain.FindBlock(tree, s.CurrentBlockID); !ok {
		s.CurrentBlockID = ""
	}
}

func sortPages(pages []domain.Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Order < pages[j].Order
	})
}

// ignoreMissingBlock turns edits aimed at a block that is gone into no-ops.
func ignoreMissingBlock(err error, op string) error {
	if errors.Is(err, domain.ErrBlockNotFound) {
		logger.Debug("editor: %s ignored: %v", op, err)
		return nil
	}
	return err
}
