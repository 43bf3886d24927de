package driving

import "github.com/custodia-labs/sitesmith/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetStorageBackend selects the persistence backend.
	SetStorageBackend(backend domain.StorageBackend) error

	// SetCatalogSource points the block library at a remote URL or a local
	// file. Empty values clear the setting.
	SetCatalogSource(url, file string) error

	// Validate checks the stored settings.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
