package mcp

import (
	"github.com/custodia-labs/sitesmith/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Session loads sites into the editor and saves them back.
	Session driving.SessionService

	// Editor holds the session being edited.
	Editor driving.Editor

	// Library is the block catalog. Optional: without it block tools and
	// the catalog resource are not registered.
	Library driving.BlockLibrary
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}
