package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// homepageTitle is the title of the page a new multi-page site starts with.
const homepageTitle = "Accueil"

const tracerName = "github.com/custodia-labs/sitesmith/internal/core/services"

// SessionService loads sites into the editor and writes them back.
type SessionService struct {
	sites     driven.SiteStore
	pages     driven.PageStore
	templates driven.TemplateStore
	menus     driven.NavigationStore

	editor  driving.Editor
	library driving.BlockLibrary
	merge   driving.MergeEngine
	nav     driving.NavigationSynchronizer

	tracer trace.Tracer
	now    func() time.Time
}

// SessionStores groups the persistence collaborators of a session.
type SessionStores struct {
	Sites     driven.SiteStore
	Pages     driven.PageStore
	Templates driven.TemplateStore
	Menus     driven.NavigationStore
}

// NewSessionService creates a session service driving editor.
func NewSessionService(
	stores SessionStores,
	editor driving.Editor,
	library driving.BlockLibrary,
	merge driving.MergeEngine,
	nav driving.NavigationSynchronizer,
) *SessionService {
	if merge == nil {
		merge = NewMergeEngine()
	}
	if nav == nil {
		nav = NewNavigationService(domain.MenuHorizontal)
	}
	return &SessionService{
		sites:     stores.Sites,
		pages:     stores.Pages,
		templates: stores.Templates,
		menus:     stores.Menus,
		editor:    editor,
		library:   library,
		merge:     merge,
		nav:       nav,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// CreateSite creates a site from a template. The data record starts from
// the template's field defaults with the couple name filled in.
func (s *SessionService) CreateSite(
	ctx context.Context,
	templateID, coupleName string,
	mode domain.SiteMode,
) (site *domain.Site, err error) {
	ctx, span := s.tracer.Start(ctx, "session.CreateSite",
		trace.WithAttributes(attribute.String("template.id", templateID)))
	defer func() { endSpan(span, err) }()

	if s.sites == nil || s.templates == nil {
		return nil, domain.ErrNotImplemented
	}
	if coupleName == "" {
		return nil, fmt.Errorf("%w: couple name is required", domain.ErrInvalidInput)
	}
	if mode == "" {
		mode = domain.ModeTemplate
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: unknown site mode %q", domain.ErrInvalidInput, mode)
	}

	tmpl, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, persistenceError("load template", err)
	}

	data := domain.DataRecord{}
	for _, f := range tmpl.FieldDefinitions {
		if f.Default != nil {
			data[f.Name] = domain.CloneValue(f.Default)
		}
	}
	data["couple_name"] = coupleName

	now := s.now()
	created := domain.Site{
		ID:         uuid.NewString(),
		TemplateID: tmpl.ID,
		CoupleName: coupleName,
		Slug:       Slugify(coupleName),
		Data:       data,
		Mode:       mode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	span.SetAttributes(attribute.String("site.id", created.ID))

	// Page trees hold literal content, so the homepage starts from the
	// template merged with the initial record.
	var homeStructure []domain.Block
	if mode == domain.ModePages {
		merged, err := s.merge.Merge(tmpl, data, tmpl.DefaultTheme)
		if err != nil {
			return nil, err
		}
		homeStructure = merged.Structure
	}

	if err := s.sites.Save(ctx, created); err != nil {
		return nil, persistenceError("save site", err)
	}

	if mode == domain.ModePages {
		if s.pages == nil || s.menus == nil {
			return nil, domain.ErrNotImplemented
		}
		home := NewPage(created.ID, homepageTitle, nil, now)
		home.Structure = homeStructure
		if err := s.pages.Save(ctx, home); err != nil {
			return nil, persistenceError("save homepage", err)
		}
		menu := s.nav.GenerateFromPages(created.ID, []domain.Page{home})
		if err := s.menus.Save(ctx, menu); err != nil {
			return nil, persistenceError("save menu", err)
		}
	}

	logger.Info("created site %s (%s) from template %s", created.ID, created.Slug, tmpl.ID)
	return &created, nil
}

// OpenTemplateSession loads a site and its template into the editor.
func (s *SessionService) OpenTemplateSession(ctx context.Context, siteID string) (err error) {
	ctx, span := s.tracer.Start(ctx, "session.OpenTemplateSession",
		trace.WithAttributes(attribute.String("site.id", siteID)))
	defer func() { endSpan(span, err) }()

	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return err
	}
	tmpl, err := s.templates.Get(ctx, site.TemplateID)
	if err != nil {
		return persistenceError("load template", err)
	}

	s.editor.InitTemplateMode(*site, *tmpl)
	logger.Debug("opened template session for site %s", siteID)
	return nil
}

// OpenPagesSession loads a site, its pages, the block catalog and the menu
// into the editor. A missing menu is generated from the pages; an existing
// one is repaired against them.
func (s *SessionService) OpenPagesSession(ctx context.Context, siteID string) (err error) {
	ctx, span := s.tracer.Start(ctx, "session.OpenPagesSession",
		trace.WithAttributes(attribute.String("site.id", siteID)))
	defer func() { endSpan(span, err) }()

	if s.pages == nil || s.menus == nil {
		return domain.ErrNotImplemented
	}

	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return err
	}
	pages, err := s.pages.ListBySite(ctx, siteID)
	if err != nil {
		return persistenceError("list pages", err)
	}
	span.SetAttributes(attribute.Int("pages.count", len(pages)))

	var catalog []domain.BlockTypeDefinition
	if s.library != nil {
		catalog = s.library.ListTypes(ctx)
	}

	menu, err := s.menus.Get(ctx, siteID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		generated := s.nav.GenerateFromPages(siteID, pages)
		menu = &generated
	case err != nil:
		return persistenceError("load menu", err)
	default:
		repaired := s.nav.Repair(siteID, menu, pages)
		menu = &repaired
	}

	base := domain.DefaultTheme()
	if site.TemplateID != "" && s.templates != nil {
		tmpl, err := s.templates.Get(ctx, site.TemplateID)
		switch {
		case err == nil:
			base = tmpl.DefaultTheme
		case errors.Is(err, domain.ErrNotFound):
			logger.Warn("template %s of site %s not found, using default theme", site.TemplateID, siteID)
		default:
			return persistenceError("load template", err)
		}
	}

	s.editor.InitPagesMode(*site, pages, catalog, menu, base)

	logger.Debug("opened pages session for site %s with %d pages", siteID, len(pages))
	return nil
}

// Open loads a site in the mode it was created with.
func (s *SessionService) Open(ctx context.Context, siteID string) error {
	site, err := s.loadSite(ctx, siteID)
	if err != nil {
		return err
	}
	if site.Mode == domain.ModePages {
		return s.OpenPagesSession(ctx, siteID)
	}
	return s.OpenTemplateSession(ctx, siteID)
}

// Save persists a snapshot. The theme is stored as overrides of the
// snapshot's base theme. In pages mode every session page is upserted,
// stored pages missing from the session are deleted and the menu is saved.
func (s *SessionService) Save(ctx context.Context, snapshot domain.EditorSnapshot) (site *domain.Site, err error) {
	if snapshot.Site == nil {
		return nil, domain.ErrNoSession
	}
	siteID := snapshot.Site.ID

	ctx, span := s.tracer.Start(ctx, "session.Save", trace.WithAttributes(
		attribute.String("site.id", siteID),
		attribute.String("site.mode", string(snapshot.Mode)),
		attribute.Int64("editor.revision", int64(snapshot.Revision)), //nolint:gosec // revisions stay far below MaxInt64
	))
	defer func() { endSpan(span, err) }()

	if s.sites == nil {
		return nil, domain.ErrNotImplemented
	}

	overrides := snapshot.Theme.Diff(snapshot.BaseTheme)
	site, err = s.sites.SaveContent(ctx, siteID, snapshot.Data, overrides)
	if err != nil {
		return nil, persistenceError("save site content", err)
	}

	if snapshot.Mode != domain.ModePages {
		return site, nil
	}
	if s.pages == nil || s.menus == nil {
		return nil, domain.ErrNotImplemented
	}

	stored, err := s.pages.ListBySite(ctx, siteID)
	if err != nil {
		return nil, persistenceError("list pages", err)
	}
	kept := make(map[string]bool, len(snapshot.Pages))
	now := s.now()
	for _, page := range snapshot.Pages {
		page.SiteID = siteID
		page.UpdatedAt = now
		if page.CreatedAt.IsZero() {
			page.CreatedAt = now
		}
		if err := s.pages.Save(ctx, page); err != nil {
			return nil, persistenceError("save page "+page.ID, err)
		}
		kept[page.ID] = true
	}
	for _, page := range stored {
		if kept[page.ID] {
			continue
		}
		if err := s.pages.Delete(ctx, siteID, page.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, persistenceError("delete page "+page.ID, err)
		}
	}

	if snapshot.Menu != nil {
		menu := snapshot.Menu.Clone()
		menu.SiteID = siteID
		if err := s.menus.Save(ctx, menu); err != nil {
			return nil, persistenceError("save menu", err)
		}
	}

	logger.Debug("saved site %s: %d pages", siteID, len(snapshot.Pages))
	return site, nil
}

// Commit saves the editor's current state through its save lifecycle.
func (s *SessionService) Commit(ctx context.Context) (*domain.Site, error) {
	return SaveEditor(ctx, s.editor, s)
}

// CreatePage adds a page to a stored site and repairs its menu.
func (s *SessionService) CreatePage(ctx context.Context, siteID, title string) (page *domain.Page, err error) {
	ctx, span := s.tracer.Start(ctx, "session.CreatePage",
		trace.WithAttributes(attribute.String("site.id", siteID)))
	defer func() { endSpan(span, err) }()

	if s.pages == nil || s.menus == nil {
		return nil, domain.ErrNotImplemented
	}
	if title == "" {
		return nil, fmt.Errorf("%w: page title is required", domain.ErrInvalidInput)
	}
	if _, err := s.loadSite(ctx, siteID); err != nil {
		return nil, err
	}

	pages, err := s.pages.ListBySite(ctx, siteID)
	if err != nil {
		return nil, persistenceError("list pages", err)
	}
	created := NewPage(siteID, title, pages, s.now())
	if err := s.pages.Save(ctx, created); err != nil {
		return nil, persistenceError("save page", err)
	}
	pages = append(pages, created)

	menu, err := s.menus.Get(ctx, siteID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, persistenceError("load menu", err)
	}
	repaired := s.nav.Repair(siteID, menu, pages)
	if err := s.menus.Save(ctx, repaired); err != nil {
		return nil, persistenceError("save menu", err)
	}

	return &created, nil
}

// Publish marks a site as published. Every required template field must
// be filled.
func (s *SessionService) Publish(ctx context.Context, siteID string) (site *domain.Site, err error) {
	ctx, span := s.tracer.Start(ctx, "session.Publish",
		trace.WithAttributes(attribute.String("site.id", siteID)))
	defer func() { endSpan(span, err) }()

	site, err = s.loadSite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	tmpl, err := s.templates.Get(ctx, site.TemplateID)
	if err != nil {
		return nil, persistenceError("load template", err)
	}
	if err := domain.NewValidationError(s.merge.ValidateRequiredFields(*tmpl, site.Data)); err != nil {
		return nil, err
	}

	now := s.now()
	site.IsPublished = true
	site.PublishedAt = &now
	site.UpdatedAt = now
	if err := s.sites.Save(ctx, *site); err != nil {
		return nil, persistenceError("save site", err)
	}
	logger.Info("published site %s", siteID)
	return site, nil
}

// ListSites returns all sites.
func (s *SessionService) ListSites(ctx context.Context) ([]domain.Site, error) {
	if s.sites == nil {
		return nil, domain.ErrNotImplemented
	}
	sites, err := s.sites.List(ctx)
	if err != nil {
		return nil, persistenceError("list sites", err)
	}
	return sites, nil
}

// ListTemplates returns all templates.
func (s *SessionService) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	if s.templates == nil {
		return nil, domain.ErrNotImplemented
	}
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, persistenceError("list templates", err)
	}
	return templates, nil
}

func (s *SessionService) loadSite(ctx context.Context, siteID string) (*domain.Site, error) {
	if s.sites == nil || s.templates == nil {
		return nil, domain.ErrNotImplemented
	}
	site, err := s.sites.Get(ctx, siteID)
	if err != nil {
		return nil, persistenceError("load site", err)
	}
	return site, nil
}

// persistenceError keeps ErrNotFound visible and files every other store
// failure under ErrPersistence.
func persistenceError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
