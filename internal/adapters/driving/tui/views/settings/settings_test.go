package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	args := m.Called(backend)
	return args.Error(0)
}

func (m *MockSettingsService) SetCatalogSource(url, file string) error {
	args := m.Called(url, file)
	return args.Error(0)
}

func (m *MockSettingsService) Validate() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	return &s
}

func loaded(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	v := NewView(nil, svc)
	v.SetDimensions(100, 40)
	v.Update(messages.SettingsLoaded{Settings: testSettings()})
	require.NotNil(t, v.Settings())
	return v
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_InitLoadsSettings(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(testSettings(), nil)

	v := NewView(nil, svc)
	msg := v.Init()()

	got, ok := msg.(messages.SettingsLoaded)
	require.True(t, ok)
	require.NoError(t, got.Err)
	assert.Equal(t, domain.StorageSQLite, got.Settings.Storage.Backend)
	svc.AssertExpectations(t)
}

func TestView_InitWithoutService(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.Init()().(messages.SettingsLoaded)
	assert.ErrorIs(t, msg.Err, ErrNoSettingsService)

	v.Update(msg)
	assert.Contains(t, v.View(), "settings service not available")
}

func TestView_OverviewRendersValues(t *testing.T) {
	v := loaded(t, new(MockSettingsService))

	out := v.View()
	assert.Contains(t, out, "SQLite")
	assert.Contains(t, out, "horizontal")
	assert.Contains(t, out, "on (2s)")
	assert.Contains(t, out, "built-in")
}

func TestView_ChooseStorageBackend(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Save", mock.MatchedBy(func(s *domain.AppSettings) bool {
		return s.Storage.Backend == domain.StorageMemory
	})).Return(nil)

	v := loaded(t, svc)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionStorage, v.Section())
	assert.Contains(t, v.View(), "Memory")

	v.Update(keyRunes("j"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd().(messages.SettingsSaved)
	require.NoError(t, msg.Err)
	svc.AssertExpectations(t)

	svc.On("Get").Return(testSettings(), nil)
	_, reload := v.Update(msg)
	assert.Equal(t, SectionOverview, v.Section())
	assert.NotNil(t, reload)
}

func TestView_ChooseMenuStyle(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Save", mock.MatchedBy(func(s *domain.AppSettings) bool {
		return s.Editor.MenuStyle == domain.MenuDropdown
	})).Return(nil)

	v := loaded(t, svc)
	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionMenuStyle, v.Section())

	v.Update(keyRunes("j"))
	v.Update(keyRunes("j"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.NoError(t, cmd().(messages.SettingsSaved).Err)
	svc.AssertExpectations(t)
}

func TestView_ToggleAutosave(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Save", mock.MatchedBy(func(s *domain.AppSettings) bool {
		return !s.Autosave.Enabled
	})).Return(nil)

	v := loaded(t, svc)
	v.Update(keyRunes("j"))
	v.Update(keyRunes("j"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.NoError(t, cmd().(messages.SettingsSaved).Err)
	assert.True(t, v.Settings().Autosave.Enabled, "loaded settings are not mutated before reload")
	svc.AssertExpectations(t)
}

func TestView_CatalogSource(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetCatalogSource", "", "/tmp/blocks.yaml").Return(nil)

	v := loaded(t, svc)
	v.selected = rowCatalog
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionCatalog, v.Section())

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "/tmp/blocks.yaml" {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.NoError(t, cmd().(messages.SettingsSaved).Err)
	svc.AssertExpectations(t)
}

func TestView_SaveErrorStays(t *testing.T) {
	v := loaded(t, new(MockSettingsService))
	v.section = SectionStorage

	_, cmd := v.Update(messages.SettingsSaved{Err: errors.New("read-only config")})
	assert.Nil(t, cmd)
	assert.Equal(t, SectionStorage, v.Section())
	assert.Contains(t, v.View(), "read-only config")
}

func TestView_EscNavigation(t *testing.T) {
	v := loaded(t, new(MockSettingsService))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionStorage, v.Section())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, SectionOverview, v.Section())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Reset(t *testing.T) {
	v := loaded(t, new(MockSettingsService))
	v.section = SectionCatalog
	v.selected = 2
	v.err = errors.New("x")

	v.Reset()
	assert.Equal(t, SectionOverview, v.Section())
	assert.Equal(t, 0, v.selected)
	assert.NoError(t, v.Err())
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, indexOf(domain.AllMenuStyles(), domain.MenuVertical))
	assert.Equal(t, 0, indexOf(domain.AllMenuStyles(), domain.MenuStyle("nope")))
}
