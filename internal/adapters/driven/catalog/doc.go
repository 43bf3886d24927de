// Package catalog holds the adapters that supply the block type catalog.
//
// Subpackages:
//   - remote: fetches the catalog from an HTTP endpoint, rate limited and retried
//   - file: reads the catalog from a YAML file and watches it for changes
//
// Both implement driven.BlockCatalogSource. Failures are returned to the
// block library, which falls back to its built-in catalog.
package catalog
