// Command sitesmith builds and edits wedding websites from block templates.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	catalogfile "github.com/custodia-labs/sitesmith/internal/adapters/driven/catalog/file"
	"github.com/custodia-labs/sitesmith/internal/adapters/driven/catalog/remote"
	configfile "github.com/custodia-labs/sitesmith/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sitesmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesmith/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sitesmith/internal/adapters/driven/templates"
	"github.com/custodia-labs/sitesmith/internal/adapters/driving/cli"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
	"github.com/custodia-labs/sitesmith/internal/core/services"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		// cobra has already printed command errors
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configStore, err := configfile.NewConfigStore("")
	if err != nil {
		return fail("loading config", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fail("reading settings", err)
	}

	stores, closeStores, err := openStores(settings.Storage)
	if err != nil {
		return fail("opening storage", err)
	}
	defer closeStores()

	library, err := templates.NewLibrary("")
	if err != nil {
		return fail("loading templates", err)
	}
	if n, err := library.Seed(ctx, stores.Templates); err != nil {
		logger.Warn("seeding templates: %v", err)
	} else if n > 0 {
		logger.Info("installed %d templates", n)
	}

	source, err := catalogSource(settings.Catalog)
	if err != nil {
		return fail("configuring block catalog", err)
	}
	blockLibrary := services.NewBlockLibrary(source)

	if settings.Catalog.File != "" {
		watcher, err := catalogfile.NewWatcher(settings.Catalog.File, blockLibrary.RefreshCache, 0)
		if err != nil {
			logger.Warn("watching %s: %v", settings.Catalog.File, err)
		} else {
			watcher.Start()
			defer func() { _ = watcher.Stop() }()
		}
	}

	nav := services.NewNavigationService(settings.Editor.MenuStyle)
	editor := services.NewEditor(blockLibrary, nil, nav)
	session := services.NewSessionService(stores, editor, blockLibrary, nil, nav)

	if settings.Autosave.Enabled {
		cli.SetTUIConfig(&cli.TUIConfig{
			Autosaver: services.NewAutosaver(editor, session, settings.Autosave.Delay),
		})
	}

	cli.SetServices(cli.Services{
		Session:  session,
		Editor:   editor,
		Library:  blockLibrary,
		Settings: settingsService,
	})
	cli.SetVersion(version)

	return cli.ExecuteContext(ctx)
}

// openStores returns the stores for the configured backend and a function
// that releases them.
func openStores(cfg domain.StorageSettings) (services.SessionStores, func(), error) {
	if cfg.Backend == domain.StorageMemory {
		return services.SessionStores{
			Sites:     memory.NewSiteStore(),
			Pages:     memory.NewPageStore(),
			Templates: memory.NewTemplateStore(),
			Menus:     memory.NewNavigationStore(),
		}, func() {}, nil
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return services.SessionStores{}, nil, err
	}
	logger.Debug("using database %s", store.Path())
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}
	return services.SessionStores{
		Sites:     store.SiteStore(),
		Pages:     store.PageStore(),
		Templates: store.TemplateStore(),
		Menus:     store.NavigationStore(),
	}, closeStore, nil
}

// catalogSource picks the remote or file catalog. Nil means the built-in one.
func catalogSource(cfg domain.CatalogSettings) (driven.BlockCatalogSource, error) {
	switch {
	case cfg.URL != "":
		remoteCfg := remote.DefaultConfig(cfg.URL)
		remoteCfg.RequestsPerSecond = cfg.RequestsPerSecond
		remoteCfg.Timeout = cfg.Timeout
		return remote.New(remoteCfg)
	case cfg.File != "":
		return catalogfile.New(cfg.File)
	default:
		return nil, nil
	}
}

func fail(what string, err error) error {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", what, err)
	return err
}
