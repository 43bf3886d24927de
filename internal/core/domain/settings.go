package domain

import "time"

// unknownDescription is returned for unrecognised enum values.
const unknownDescription = "Unknown"

// StorageBackend selects where sites are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists sites in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps sites in memory for the lifetime of the process.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (persistent, single file)"
	case StorageMemory:
		return "Memory (lost on exit)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	Backend StorageBackend

	// DataDir holds the database. Empty means ~/.sitesmith/data.
	DataDir string
}

// CatalogSettings configures where the block type catalog comes from.
// With neither URL nor File set, the built-in catalog is used.
type CatalogSettings struct {
	// URL of a remote catalog endpoint returning JSON.
	URL string

	// File is a local YAML catalog, watched for changes.
	File string

	// RequestsPerSecond limits remote catalog fetches.
	RequestsPerSecond float64

	// Timeout bounds a single remote fetch.
	Timeout time.Duration
}

// AutosaveSettings configures the background autosaver.
type AutosaveSettings struct {
	Enabled bool

	// Delay is the quiet period after the last edit.
	Delay time.Duration
}

// EditorSettings holds editing defaults.
type EditorSettings struct {
	// MenuStyle is the style of generated navigation menus.
	MenuStyle MenuStyle
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage  StorageSettings
	Catalog  CatalogSettings
	Autosave AutosaveSettings
	Editor   EditorSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Catalog: CatalogSettings{
			RequestsPerSecond: 2,
			Timeout:           10 * time.Second,
		},
		Autosave: AutosaveSettings{
			Enabled: true,
			Delay:   2 * time.Second,
		},
		Editor: EditorSettings{
			MenuStyle: MenuHorizontal,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageMemory}
}
