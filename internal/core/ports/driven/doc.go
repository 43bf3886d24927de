// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SiteStore: Site persistence (data record, theme overrides)
//   - PageStore: Page persistence for multi-page sites
//   - TemplateStore: Template persistence
//   - NavigationStore: Navigation menu persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - BlockCatalogSource: Remote block catalog. Without it, the built-in catalog is used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
