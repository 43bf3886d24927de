package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

const uriScheme = "sitesmith://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "templates",
		Name:        "templates",
		Description: "Site templates with their structure and field definitions",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	if s.ports.Library != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "blocks",
			Name:        "block-catalog",
			Description: "Every block type with its default properties and editable fields",
			MIMEType:    "application/json",
		}, s.handleBlocksResource)
	}

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sites/{siteId}/preview",
		Name:        "site-preview",
		Description: "The merged, renderable block tree of a site",
		MIMEType:    "application/json",
	}, s.handlePreviewResource)
}

func (s *Server) handleTemplatesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tmpls, err := s.ports.Session.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return jsonResource(req.Params.URI, tmpls)
}

func (s *Server) handleBlocksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Library.ListTypes(ctx))
}

func (s *Server) handlePreviewResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	siteID := extractSiteID(req.Params.URI)
	if siteID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var merged *domain.MergedSite
	_, err := s.withSite(ctx, siteID, func(domain.EditorSnapshot) error {
		m, err := s.ports.Editor.Preview()
		merged = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, merged)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	// '&' and '<' are written as-is.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     strings.TrimSuffix(buf.String(), "\n"),
		}},
	}, nil
}

// extractSiteID extracts the site ID from a URI like sitesmith://sites/{siteId}/preview.
func extractSiteID(uri string) string {
	const prefix = uriScheme + "sites/"
	const suffix = "/preview"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
}
