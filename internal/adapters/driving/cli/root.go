// Package cli provides the sitesmith command line interface.
//
// Every editing command follows the same cycle: open the site into the
// editor, apply one change, then commit the session back to storage.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=...".
var version = "dev"

var (
	sessionService  driving.SessionService
	editor          driving.Editor
	blockLibrary    driving.BlockLibrary
	settingsService driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sitesmith",
	Short: "Build wedding websites from block templates",
	Long: `sitesmith edits wedding websites built from blocks.

A site starts from a template. In template mode you fill in the couple's
details and the template's slots are resolved against them. In pages mode
the site is a set of pages, each with its own block tree and a navigation
menu kept in step with the pages.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
}

// Services holds the core services the commands drive.
type Services struct {
	Session  driving.SessionService
	Editor   driving.Editor
	Library  driving.BlockLibrary
	Settings driving.SettingsService
}

// SetServices wires the core services into the command tree.
func SetServices(s Services) {
	sessionService = s.Session
	editor = s.Editor
	blockLibrary = s.Library
	settingsService = s.Settings
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx available to every command.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
