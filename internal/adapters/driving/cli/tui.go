package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/tui"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Autosaver saves the editor in the background while the TUI runs.
type Autosaver interface {
	Start()
	Stop()
	Flush(ctx context.Context) error
}

// TUIConfig holds what the TUI needs beyond the core services.
type TUIConfig struct {
	// Autosaver is optional. Without it edits are saved only with the save key.
	Autosaver Autosaver
}

var tuiConfig *TUIConfig

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive page organiser",
	Long: `Launch the interactive terminal UI.

Open a site to reorder, add, hide and remove its pages, rebuild its
navigation menu and save it. Settings can be changed from the menu.

Controls:
  ↑/k, ↓/j - Navigate
  K / J    - Move page up / down
  a / d    - Add / delete page
  s        - Save
  Esc      - Back
  ?        - Help
  q        - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Session:  sessionService,
		Editor:   editor,
		Library:  blockLibrary,
		Settings: settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	ctx := contextOf(cmd)
	app.WithContext(ctx)

	if tuiConfig != nil && tuiConfig.Autosaver != nil {
		saver := tuiConfig.Autosaver
		saver.Start()
		defer func() {
			if err := saver.Flush(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("saving pending edits: %v", err)
			}
			saver.Stop()
		}()
	}

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
