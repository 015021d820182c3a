package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/fieldprint/internal/logging"
	"github.com/aretw0/fieldprint/pkg/adapters/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMCPServer(t *testing.T) {
	cfg := testConfig()
	cfg.Scripts = []process.ProcessConfig{{Name: "echo", Command: "echo"}}

	srv, err := NewMCPServer(cfg, logging.NewNop())
	require.NoError(t, err)

	resp := srv.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"convert"`)
	assert.Contains(t, string(raw), `"greet"`)
	assert.Contains(t, string(raw), `"run_script"`)
}

func TestServeMCP_UnknownTransport(t *testing.T) {
	err := ServeMCP(context.Background(), testConfig(), "carrier-pigeon", 0, logging.NewNop())
	assert.ErrorContains(t, err, "unknown transport")
}
