// Package tui provides an interactive terminal organiser for sites and pages.
// It is a driving adapter: every edit goes through the editor port and is
// persisted through the session service.
package tui

import (
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI talks to.
type Ports struct {
	// Session opens, saves and lists sites.
	Session driving.SessionService

	// Editor holds the open site.
	Editor driving.Editor

	// Library is the block catalog. Optional.
	Library driving.BlockLibrary

	// Settings manages application settings. Optional; the settings view
	// reports an error without it.
	Settings driving.SettingsService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}
