package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
)

// SiteRef names a site.
type SiteRef struct {
	SiteID string `json:"site_id" jsonschema:"the id of the site"`
}

// SiteSummary describes a site.
type SiteSummary struct {
	ID          string `json:"id"`
	CoupleName  string `json:"couple_name"`
	Slug        string `json:"slug"`
	TemplateID  string `json:"template_id"`
	Mode        string `json:"mode"`
	IsPublished bool   `json:"is_published"`
}

func summariseSite(site domain.Site) SiteSummary {
	return SiteSummary{
		ID:          site.ID,
		CoupleName:  site.CoupleName,
		Slug:        site.Slug,
		TemplateID:  site.TemplateID,
		Mode:        string(site.Mode),
		IsPublished: site.IsPublished,
	}
}

// ListSitesOutput is the output of list_sites.
type ListSitesOutput struct {
	Sites []SiteSummary `json:"sites"`
	Count int           `json:"count"`
}

// TemplateSummary describes a template.
type TemplateSummary struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	RequiredFields []string `json:"required_fields,omitempty"`
}

// ListTemplatesOutput is the output of list_templates.
type ListTemplatesOutput struct {
	Templates []TemplateSummary `json:"templates"`
}

// CreateSiteInput is the input of create_site.
type CreateSiteInput struct {
	TemplateID string `json:"template_id" jsonschema:"the template to start from"`
	CoupleName string `json:"couple_name" jsonschema:"the couple's names, e.g. Marie & Jean"`
	Mode       string `json:"mode,omitempty" jsonschema:"template (default) or pages"`
}

// SiteStateOutput describes the state of a site after a tool call.
type SiteStateOutput struct {
	Site    SiteSummary    `json:"site"`
	Data    map[string]any `json:"data,omitempty"`
	Theme   domain.Theme   `json:"theme"`
	Pages   []PageSummary  `json:"pages,omitempty"`
	Missing []string       `json:"missing,omitempty"`
}

// PageSummary describes one page.
type PageSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Order      int    `json:"order"`
	IsHomepage bool   `json:"is_homepage"`
	Blocks     int    `json:"blocks"`
}

// SetDataInput is the input of set_site_data.
type SetDataInput struct {
	SiteID string         `json:"site_id" jsonschema:"the id of the site"`
	Fields map[string]any `json:"fields" jsonschema:"data fields to set, e.g. bride_name or faqs"`
}

// SetThemeInput is the input of set_theme.
type SetThemeInput struct {
	SiteID string            `json:"site_id" jsonschema:"the id of the site"`
	Colors map[string]string `json:"colors,omitempty" jsonschema:"colour roles to set: primary, secondary, text, background"`
	Fonts  map[string]string `json:"fonts,omitempty" jsonschema:"font roles to set: heading, body"`
}

// PreviewInput is the input of preview_site.
type PreviewInput struct {
	SiteID string `json:"site_id" jsonschema:"the id of the site"`
	PageID string `json:"page_id,omitempty" jsonschema:"preview one page of a pages-mode site"`
}

// PreviewOutput carries a merged, renderable tree. Structure holds
// []domain.Block; it is typed any because block trees are recursive and
// tool schemas cannot describe cycles.
type PreviewOutput struct {
	Structure any                   `json:"structure"`
	Theme     domain.Theme          `json:"theme"`
	Metadata  domain.MergedMetadata `json:"metadata"`
}

// ValidateOutput lists every missing required field.
type ValidateOutput struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages,omitempty"`
}

// AddPageInput is the input of add_page.
type AddPageInput struct {
	SiteID string `json:"site_id" jsonschema:"the id of a pages-mode site"`
	Title  string `json:"title" jsonschema:"the page title"`
}

// AddBlockInput is the input of add_block.
type AddBlockInput struct {
	SiteID    string `json:"site_id" jsonschema:"the id of a pages-mode site"`
	PageID    string `json:"page_id,omitempty" jsonschema:"page to edit (default: homepage)"`
	BlockType string `json:"block_type" jsonschema:"a block type from list_block_types"`
	ParentID  string `json:"parent_id,omitempty" jsonschema:"container block to add into"`
	At        *int   `json:"at,omitempty" jsonschema:"insert position among siblings (default: append)"`
}

// BlockOutput returns one block (a domain.Block).
type BlockOutput struct {
	Block any `json:"block"`
}

// UpdateBlockInput is the input of update_block.
type UpdateBlockInput struct {
	SiteID     string         `json:"site_id" jsonschema:"the id of a pages-mode site"`
	PageID     string         `json:"page_id,omitempty" jsonschema:"page to edit (default: homepage)"`
	BlockID    string         `json:"block_id" jsonschema:"the block to update"`
	Properties map[string]any `json:"properties" jsonschema:"properties to merge into the block"`
}

// RemoveBlockInput is the input of remove_block.
type RemoveBlockInput struct {
	SiteID  string `json:"site_id" jsonschema:"the id of a pages-mode site"`
	PageID  string `json:"page_id,omitempty" jsonschema:"page to edit (default: homepage)"`
	BlockID string `json:"block_id" jsonschema:"the block to remove with its children"`
}

// ListBlockTypesInput is the input of list_block_types.
type ListBlockTypesInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list types in this category"`
}

// BlockTypeSummary describes a block type.
type BlockTypeSummary struct {
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	CanHaveChildren bool     `json:"can_have_children"`
	RequiredFields  []string `json:"required_fields,omitempty"`
}

// ListBlockTypesOutput is the output of list_block_types.
type ListBlockTypesOutput struct {
	Types []BlockTypeSummary `json:"types"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the site templates a new site can start from",
	}, s.handleListTemplates)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sites",
		Description: "List all sites",
	}, s.handleListSites)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_site",
		Description: "Create a wedding site from a template",
	}, s.handleCreateSite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_site",
		Description: "Show a site's data, theme, pages and missing required fields",
	}, s.handleGetSite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_site_data",
		Description: "Set data fields on a site (names, date, bios, FAQs...)",
	}, s.handleSetData)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_theme",
		Description: "Change colour and font roles of a site's theme",
	}, s.handleSetTheme)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_site",
		Description: "Return the merged, renderable block tree of a site or page",
	}, s.handlePreview)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_site",
		Description: "List every missing required field",
	}, s.handleValidate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "publish_site",
		Description: "Publish a site once every required field is filled",
	}, s.handlePublish)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_page",
		Description: "Add a page to a multi-page site; the menu is updated",
	}, s.handleAddPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_block",
		Description: "Merge properties into a block on a page",
	}, s.handleUpdateBlock)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_block",
		Description: "Remove a block and its children from a page",
	}, s.handleRemoveBlock)

	if s.ports.Library != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_block_types",
			Description: "List the block types that can be added to a page",
		}, s.handleListBlockTypes)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "add_block",
			Description: "Add a block with default properties to a page",
		}, s.handleAddBlock)
	}
}

func (s *Server) handleListTemplates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	tmpls, err := s.ports.Session.ListTemplates(ctx)
	if err != nil {
		return nil, ListTemplatesOutput{}, err
	}

	out := ListTemplatesOutput{Templates: make([]TemplateSummary, len(tmpls))}
	for i := range tmpls {
		out.Templates[i] = TemplateSummary{
			ID:             tmpls[i].ID,
			Name:           tmpls[i].Name,
			Description:    tmpls[i].Description,
			RequiredFields: tmpls[i].RequiredFields(),
		}
	}
	return nil, out, nil
}

func (s *Server) handleListSites(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListSitesOutput, error) {
	sites, err := s.ports.Session.ListSites(ctx)
	if err != nil {
		return nil, ListSitesOutput{}, err
	}

	out := ListSitesOutput{Sites: make([]SiteSummary, len(sites)), Count: len(sites)}
	for i := range sites {
		out.Sites[i] = summariseSite(sites[i])
	}
	return nil, out, nil
}

func (s *Server) handleCreateSite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateSiteInput,
) (*mcp.CallToolResult, SiteSummary, error) {
	site, err := s.ports.Session.CreateSite(ctx, input.TemplateID, input.CoupleName, domain.SiteMode(input.Mode))
	if err != nil {
		return nil, SiteSummary{}, err
	}
	return nil, summariseSite(*site), nil
}

func (s *Server) handleGetSite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SiteRef,
) (*mcp.CallToolResult, SiteStateOutput, error) {
	var missing []string
	snap, err := s.withSite(ctx, input.SiteID, func(domain.EditorSnapshot) error {
		missing = s.ports.Editor.Validate(ctx)
		return nil
	})
	if err != nil {
		return nil, SiteStateOutput{}, err
	}
	out := siteState(snap)
	out.Missing = missing
	return nil, out, nil
}

func (s *Server) handleSetData(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetDataInput,
) (*mcp.CallToolResult, SiteStateOutput, error) {
	if len(input.Fields) == 0 {
		return nil, SiteStateOutput{}, fmt.Errorf("%w: no fields given", domain.ErrInvalidInput)
	}
	snap, err := s.withSite(ctx, input.SiteID, func(domain.EditorSnapshot) error {
		s.ports.Editor.UpdateDataFields(domain.DataRecord(input.Fields))
		return nil
	})
	if err != nil {
		return nil, SiteStateOutput{}, err
	}
	return nil, siteState(snap), nil
}

func (s *Server) handleSetTheme(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetThemeInput,
) (*mcp.CallToolResult, SiteStateOutput, error) {
	snap, err := s.withSite(ctx, input.SiteID, func(domain.EditorSnapshot) error {
		for role, v := range input.Colors {
			if err := s.ports.Editor.SetColor(domain.ColorRole(role), v); err != nil {
				return err
			}
		}
		for role, v := range input.Fonts {
			if err := s.ports.Editor.SetFont(domain.FontRole(role), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, SiteStateOutput{}, err
	}
	return nil, siteState(snap), nil
}

func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	var out PreviewOutput
	_, err := s.withSite(ctx, input.SiteID, func(domain.EditorSnapshot) error {
		if input.PageID != "" {
			merged, err := s.ports.Editor.PreviewPage(input.PageID)
			if err != nil {
				return err
			}
			out = PreviewOutput{Structure: merged.Structure, Theme: merged.Theme}
			return nil
		}
		merged, err := s.ports.Editor.Preview()
		if err != nil {
			return err
		}
		out = PreviewOutput{Structure: merged.Structure, Theme: merged.Theme, Metadata: merged.Metadata}
		return nil
	})
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleValidate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SiteRef,
) (*mcp.CallToolResult, ValidateOutput, error) {
	var messages []string
	_, err := s.withSite(ctx, input.SiteID, func(domain.EditorSnapshot) error {
		messages = s.ports.Editor.Validate(ctx)
		return nil
	})
	if err != nil {
		return nil, ValidateOutput{}, err
	}
	return nil, ValidateOutput{Valid: len(messages) == 0, Messages: messages}, nil
}

func (s *Server) handlePublish(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SiteRef,
) (*mcp.CallToolResult, SiteSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	site, err := s.ports.Session.Publish(ctx, input.SiteID)
	if err != nil {
		return nil, SiteSummary{}, err
	}
	return nil, summariseSite(*site), nil
}

func (s *Server) handleAddPage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddPageInput,
) (*mcp.CallToolResult, PageSummary, error) {
	var created domain.Page
	_, err := s.withSite(ctx, input.SiteID, func(snap domain.EditorSnapshot) error {
		if err := requirePages(snap); err != nil {
			return err
		}
		page, err := s.ports.Editor.CreatePage(input.Title)
		if err != nil {
			return err
		}
		created = page
		return nil
	})
	if err != nil {
		return nil, PageSummary{}, err
	}
	return nil, summarisePage(created), nil
}

func (s *Server) handleAddBlock(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddBlockInput,
) (*mcp.CallToolResult, BlockOutput, error) {
	at := -1
	if input.At != nil {
		at = *input.At
	}
	blockType := domain.BlockType(input.BlockType)

	var added domain.Block
	_, err := s.withSite(ctx, input.SiteID, func(snap domain.EditorSnapshot) error {
		if err := requirePages(snap); err != nil {
			return err
		}
		if input.ParentID == "" {
			b, err := s.ports.Editor.AddBlockOfType(ctx, input.PageID, blockType, at)
			added = b
			return err
		}
		b, err := s.ports.Library.CreateInstance(ctx, blockType)
		if err != nil {
			return err
		}
		added = b
		return s.ports.Editor.AddChildBlock(input.PageID, input.ParentID, b, at)
	})
	if err != nil {
		return nil, BlockOutput{}, err
	}
	return nil, BlockOutput{Block: added}, nil
}

func (s *Server) handleUpdateBlock(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateBlockInput,
) (*mcp.CallToolResult, BlockOutput, error) {
	var updated domain.Block
	_, err := s.withSite(ctx, input.SiteID, func(snap domain.EditorSnapshot) error {
		if err := requirePages(snap); err != nil {
			return err
		}
		if err := s.ports.Editor.UpdateBlockProperties(input.PageID, input.BlockID, input.Properties); err != nil {
			return err
		}
		page, ok := s.ports.Editor.CurrentPage()
		if input.PageID != "" {
			page, ok = s.ports.Editor.Snapshot().Page(input.PageID)
		}
		if ok {
			if b, found := domain.FindBlock(page.Structure, input.BlockID); found {
				updated = b
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrBlockNotFound, input.BlockID)
	})
	if err != nil {
		return nil, BlockOutput{}, err
	}
	return nil, BlockOutput{Block: updated}, nil
}

func (s *Server) handleRemoveBlock(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemoveBlockInput,
) (*mcp.CallToolResult, SiteStateOutput, error) {
	snap, err := s.withSite(ctx, input.SiteID, func(snap domain.EditorSnapshot) error {
		if err := requirePages(snap); err != nil {
			return err
		}
		return s.ports.Editor.RemoveBlock(input.PageID, input.BlockID)
	})
	if err != nil {
		return nil, SiteStateOutput{}, err
	}
	return nil, siteState(snap), nil
}

func (s *Server) handleListBlockTypes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListBlockTypesInput,
) (*mcp.CallToolResult, ListBlockTypesOutput, error) {
	var out ListBlockTypesOutput
	for _, def := range s.ports.Library.ListTypes(ctx) {
		if input.Category != "" && string(def.Category) != input.Category {
			continue
		}
		summary := BlockTypeSummary{
			Type:            string(def.Type),
			Name:            def.Name,
			Category:        string(def.Category),
			CanHaveChildren: def.CanHaveChildren,
		}
		for _, f := range def.EditableFields {
			if f.Required {
				summary.RequiredFields = append(summary.RequiredFields, f.Name)
			}
		}
		out.Types = append(out.Types, summary)
	}
	return nil, out, nil
}

func requirePages(snap domain.EditorSnapshot) error {
	if snap.Mode != domain.ModePages {
		return fmt.Errorf("%w: site is in %s mode; pages mode is required", domain.ErrInvalidInput, snap.Mode)
	}
	return nil
}

func summarisePage(p domain.Page) PageSummary {
	return PageSummary{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Order:      p.Order,
		IsHomepage: p.Meta.IsHomepage,
		Blocks:     len(p.Structure),
	}
}

func siteState(snap domain.EditorSnapshot) SiteStateOutput {
	out := SiteStateOutput{Theme: snap.Theme, Data: snap.Data}
	if snap.Site != nil {
		out.Site = summariseSite(*snap.Site)
	}
	for i := range snap.Pages {
		out.Pages = append(out.Pages, summarisePage(snap.Pages[i]))
	}
	return out
}
