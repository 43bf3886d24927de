package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitesmith/internal/core/domain"
	"github.com/custodia-labs/sitesmith/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for sitesmith.
//
// There is one editor per process, so tool calls that open a site are
// serialised: each opens the site, applies its change and commits before
// the next one starts.
type Server struct {
	ports  *Ports
	server *mcp.Server

	mu sync.Mutex
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "sitesmith",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// withSite opens siteID, runs fn and, when fn changed anything, commits.
func (s *Server) withSite(ctx context.Context, siteID string, fn func(snap domain.EditorSnapshot) error) (domain.EditorSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ports.Session.Open(ctx, siteID); err != nil {
		return domain.EditorSnapshot{}, fmt.Errorf("opening site %s: %w", siteID, err)
	}
	opened := s.ports.Editor.Snapshot()

	if fn != nil {
		if err := fn(opened); err != nil {
			return domain.EditorSnapshot{}, err
		}
	}

	if s.ports.Editor.Snapshot().Revision != opened.Revision {
		if _, err := s.ports.Session.Commit(ctx); err != nil {
			return domain.EditorSnapshot{}, fmt.Errorf("saving site %s: %w", siteID, err)
		}
		logger.Debug("mcp: saved site %s", siteID)
	}
	return s.ports.Editor.Snapshot(), nil
}
