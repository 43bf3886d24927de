// Package mcp provides an MCP (Model Context Protocol) server adapter for sitesmith.
// It lets AI assistants create wedding sites, fill in their details and edit
// their pages through the same editor the CLI uses.
package mcp

import "errors"

var (
	// ErrMissingSessionService is returned when the session service is not provided.
	ErrMissingSessionService = errors.New("mcp: session service is required")

	// ErrMissingEditor is returned when the editor is not provided.
	ErrMissingEditor = errors.New("mcp: editor is required")
)
