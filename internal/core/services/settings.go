package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driven"
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend   = "storage.backend"
	keyStorageDataDir   = "storage.data_dir"
	keyCatalogURL       = "catalog.url"
	keyCatalogFile      = "catalog.file"
	keyCatalogRPS       = "catalog.requests_per_second"
	keyCatalogTimeout   = "catalog.timeout"
	keyAutosaveEnabled  = "autosave.enabled"
	keyAutosaveDelayMS  = "autosave.delay_ms"
	keyEditorMenuStyle  = "editor.default_style"
	maxAutosaveDelay    = 10 * time.Minute
	maxCatalogRateLimit = 100
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Unset or invalid values
// fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Catalog: domain.CatalogSettings{
			URL:               s.configStore.GetString(keyCatalogURL),
			File:              s.configStore.GetString(keyCatalogFile),
			RequestsPerSecond: s.getFloat(keyCatalogRPS, defaults.Catalog.RequestsPerSecond),
			Timeout:           s.getDuration(keyCatalogTimeout, defaults.Catalog.Timeout),
		},
		Autosave: domain.AutosaveSettings{
			Enabled: s.getBool(keyAutosaveEnabled, defaults.Autosave.Enabled),
			Delay:   s.getMillis(keyAutosaveDelayMS, defaults.Autosave.Delay),
		},
		Editor: domain.EditorSettings{
			MenuStyle: s.getMenuStyle(defaults.Editor.MenuStyle),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyCatalogURL, settings.Catalog.URL},
		{keyCatalogFile, settings.Catalog.File},
		{keyCatalogRPS, settings.Catalog.RequestsPerSecond},
		{keyCatalogTimeout, settings.Catalog.Timeout.String()},
		{keyAutosaveEnabled, settings.Autosave.Enabled},
		{keyAutosaveDelayMS, settings.Autosave.Delay.Milliseconds()},
		{keyEditorMenuStyle, string(settings.Editor.MenuStyle)},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("saving %s: %w", v.key, err)
		}
	}
	return nil
}

// SetStorageBackend selects the persistence backend.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}
	return s.configStore.Set(keyStorageBackend, backend.String())
}

// SetCatalogSource sets the remote catalog URL and the local catalog file.
func (s *SettingsService) SetCatalogSource(url, file string) error {
	if url != "" && file != "" {
		return fmt.Errorf("%w: catalog url and file are mutually exclusive", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(keyCatalogURL, url); err != nil {
		return err
	}
	return s.configStore.Set(keyCatalogFile, file)
}

// Validate checks the raw stored values, reporting the first bad one.
func (s *SettingsService) Validate() error {
	if v := s.configStore.GetString(keyStorageBackend); v != "" && !domain.StorageBackend(v).IsValid() {
		return fmt.Errorf("%w: %s: unknown storage backend %q", domain.ErrInvalidInput, keyStorageBackend, v)
	}
	if v := s.configStore.GetString(keyEditorMenuStyle); v != "" && !domain.MenuStyle(v).IsValid() {
		return fmt.Errorf("%w: %s: unknown menu style %q", domain.ErrInvalidInput, keyEditorMenuStyle, v)
	}
	if s.configStore.GetString(keyCatalogURL) != "" && s.configStore.GetString(keyCatalogFile) != "" {
		return fmt.Errorf("%w: catalog url and file are mutually exclusive", domain.ErrInvalidInput)
	}
	if rps := s.configStore.GetFloat(keyCatalogRPS); rps < 0 || rps > maxCatalogRateLimit {
		return fmt.Errorf("%w: %s must be between 0 and %d", domain.ErrInvalidInput, keyCatalogRPS, maxCatalogRateLimit)
	}
	if v := s.configStore.GetString(keyCatalogTimeout); v != "" {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, keyCatalogTimeout, err)
		}
	}
	delay := time.Duration(s.configStore.GetInt(keyAutosaveDelayMS)) * time.Millisecond
	if delay < 0 || delay > maxAutosaveDelay {
		return fmt.Errorf("%w: %s must be between 0 and %s", domain.ErrInvalidInput, keyAutosaveDelayMS, maxAutosaveDelay)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	ms := s.configStore.GetInt(key)
	if ms <= 0 {
		return defaultVal
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getMenuStyle(defaultVal domain.MenuStyle) domain.MenuStyle {
	style := domain.MenuStyle(s.configStore.GetString(keyEditorMenuStyle))
	if !style.IsValid() {
		return defaultVal
	}
	return style
}
