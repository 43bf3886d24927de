package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesmith/internal/adapters/driven/templates"
	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/core/services"
)

const templateID = "mariage-elegant"

type fixture struct {
	server  *Server
	session *services.SessionService
	editor  *services.Editor
	sites   *memory.SiteStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sites := memory.NewSiteStore()
	stores := services.SessionStores{
		Sites:     sites,
		Pages:     memory.NewPageStore(),
		Templates: memory.NewTemplateStore(),
		Menus:     memory.NewNavigationStore(),
	}
	lib, err := templates.NewLibrary(t.TempDir())
	require.NoError(t, err)
	_, err = lib.Seed(context.Background(), stores.Templates)
	require.NoError(t, err)

	library := services.NewBlockLibrary(nil)
	editor := services.NewEditor(library, nil, nil)
	session := services.NewSessionService(stores, editor, library, nil, nil)

	server, err := NewServer(&Ports{Session: session, Editor: editor, Library: library})
	require.NoError(t, err)

	return &fixture{
		server:  server,
		session: session,
		editor:  editor,
		sites:   sites,
	}
}

func (f *fixture) createSite(t *testing.T, mode domain.SiteMode) string {
	t.Helper()
	_, out, err := f.server.handleCreateSite(context.Background(), nil, CreateSiteInput{
		TemplateID: templateID,
		CoupleName: "Marie & Jean",
		Mode:       string(mode),
	})
	require.NoError(t, err)
	return out.ID
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
