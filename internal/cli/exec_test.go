package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/aretw0/fieldprint/internal/logging"
	"github.com/aretw0/fieldprint/pkg/adapters/process"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestExecScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}

	cfg := testConfig()
	cfg.Scripts = []process.ProcessConfig{
		{Name: "argv", Command: "sh", Args: []string{"-c", `echo "got $1"`, "sh"}},
		{Name: "fail", Command: "sh", Args: []string{"-c", "exit 4"}},
	}
	cfg.ScriptsFile = writeFile(t, "scripts.yaml", `scripts:
  - name: stdin
    command: sh
    args: ["-c", "read line; echo \"stdin $line\""]
`)
	ctx := context.Background()

	t.Run("inline script", func(t *testing.T) {
		var out bytes.Buffer
		code, err := ExecScript(ctx, cfg, "argv", "temp=0", &out, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, ExitOK, code)
		assert.Equal(t, "got temp=0\n", out.String())
	})

	t.Run("script from scripts_file", func(t *testing.T) {
		var out bytes.Buffer
		code, err := ExecScript(ctx, cfg, "stdin", "name=Ana", &out, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, ExitOK, code)
		assert.Equal(t, "stdin name=Ana\n", out.String())
	})

	t.Run("propagates exit code", func(t *testing.T) {
		code, err := ExecScript(ctx, cfg, "fail", "x=1", &bytes.Buffer{}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 4, code)
	})

	t.Run("unregistered script", func(t *testing.T) {
		_, err := ExecScript(ctx, cfg, "rm", "x=1", &bytes.Buffer{}, logging.NewNop())
		assert.ErrorIs(t, err, domain.ErrScriptNotRegistered)
	})
}
