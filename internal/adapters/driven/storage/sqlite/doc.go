// Package sqlite provides a unified SQLite-based implementation of the site
// persistence ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements every store interface
// through a single database connection:
//
//   - SiteStore: sites, their data records and theme overrides
//   - PageStore: pages of multi-page sites
//   - TemplateStore: site templates
//   - NavigationStore: one navigation menu per site
//
// Block trees, data records, themes and menu items are stored as JSON text.
// JSON numbers come back as float64 and typed lists (for example FAQ entries)
// come back as generic lists of objects; the domain accessors read both.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.sitesmith/data/sites.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
