package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, the block catalog source, autosave and editor defaults.

Use subcommands to change specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [backend]",
	Short: "Select the storage backend",
	Long: `Select where sites are stored.

Available backends:
  sqlite - SQLite database on disk (default)
  memory - In-memory, lost when the process exits`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsStorage,
}

var settingsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Set the block catalog source",
	Long: `Point the block library at a remote endpoint or a local YAML file.

With neither flag the built-in catalog is used.`,
	RunE: runSettingsCatalog,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var (
	catalogURL  string
	catalogFile string
)

func init() {
	settingsCatalogCmd.Flags().StringVar(&catalogURL, "url", "", "Catalog endpoint returning a JSON array of block types")
	settingsCatalogCmd.Flags().StringVar(&catalogFile, "file", "", "YAML catalog file, reloaded when it changes")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	settingsCmd.AddCommand(settingsCatalogCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}
	cmd.Println()

	cmd.Println("[Catalog]")
	switch {
	case settings.Catalog.URL != "":
		cmd.Printf("  Source: %s\n", settings.Catalog.URL)
		cmd.Printf("  Rate limit: %.1f req/s\n", settings.Catalog.RequestsPerSecond)
		cmd.Printf("  Timeout: %s\n", settings.Catalog.Timeout)
	case settings.Catalog.File != "":
		cmd.Printf("  Source: %s (watched)\n", settings.Catalog.File)
	default:
		cmd.Println("  Source: built-in")
	}
	cmd.Println()

	cmd.Println("[Autosave]")
	if settings.Autosave.Enabled {
		cmd.Printf("  Enabled, after %s of inactivity\n", settings.Autosave.Delay)
	} else {
		cmd.Println("  Disabled")
	}
	cmd.Println()

	cmd.Println("[Editor]")
	cmd.Printf("  Menu style: %s\n", settings.Editor.MenuStyle)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Configuration warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(args[0])
	if err := settingsService.SetStorageBackend(backend); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Storage backend set to: %s\n", backend.Description())
	return nil
}

func runSettingsCatalog(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetCatalogSource(catalogURL, catalogFile); err != nil {
		return fmt.Errorf("failed to set catalog source: %w", err)
	}

	switch {
	case catalogURL != "":
		cmd.Printf("Block catalog will be fetched from %s\n", catalogURL)
	case catalogFile != "":
		cmd.Printf("Block catalog will be read from %s\n", catalogFile)
	default:
		cmd.Println("Block catalog reset to the built-in one.")
	}
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("sitesmith Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Storage")
	cmd.Println("---------------")
	backends := domain.AllStorageBackends()
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	settings.Storage.Backend = backends[parseChoice(readLine(reader), len(backends), 1)-1]
	cmd.Println()

	cmd.Println("Step 2: Block catalog")
	cmd.Println("---------------------")
	cmd.Print("Catalog URL (empty for none): ")
	settings.Catalog.URL = readLine(reader)
	settings.Catalog.File = ""
	if settings.Catalog.URL == "" {
		cmd.Print("Catalog YAML file (empty for built-in): ")
		settings.Catalog.File = readLine(reader)
	}
	cmd.Println()

	cmd.Println("Step 3: Autosave")
	cmd.Println("----------------")
	cmd.Printf("Autosave delay in milliseconds, 0 to disable [%d]: ", settings.Autosave.Delay.Milliseconds())
	if input := readLine(reader); input != "" {
		ms, err := strconv.Atoi(input)
		if err != nil || ms < 0 {
			return fmt.Errorf("%w: invalid delay %q", domain.ErrInvalidInput, input)
		}
		settings.Autosave.Enabled = ms > 0
		if ms > 0 {
			settings.Autosave.Delay = time.Duration(ms) * time.Millisecond
		}
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}
	return nil
}

// readLine reads a trimmed line; EOF yields what was read so far.
func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}

// parseChoice returns a 1-based choice, or def when input is empty or out of range.
func parseChoice(input string, limit, def int) int {
	if input == "" {
		return def
	}
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > limit {
		return def
	}
	return n
}
