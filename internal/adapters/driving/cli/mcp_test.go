package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesmith/internal/adapters/driving/mcp"
)

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_WithoutServices(t *testing.T) {
	clearServices(t)

	_, err := run(t, "mcp", "serve")
	require.Error(t, err)
	assert.ErrorIs(t, err, mcp.ErrMissingSessionService)
}
