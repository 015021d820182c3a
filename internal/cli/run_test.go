package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/fieldprint/internal/config"
	"github.com/aretw0/fieldprint/internal/logging"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Color = config.ColorNever
	return &cfg
}

func TestRunScript(t *testing.T) {
	tests := []struct {
		name     string
		variant  domain.Variant
		stdin    string
		args     []string
		strict   bool
		wantCode int
		contains []string
	}{
		{
			name:     "conversor",
			variant:  domain.VariantConversor,
			stdin:    "temp=0\ntemp=10\n",
			args:     []string{"temp=0"},
			wantCode: ExitOK,
			contains: []string{"Script Python Conversor", "273\n283\nFin de datos", "Recibido por ARGV:\n273\n"},
		},
		{
			name:     "nombre",
			variant:  domain.VariantNombre,
			stdin:    "name=Ana\r\n",
			args:     []string{"name=Luis"},
			wantCode: ExitOK,
			contains: []string{"Script Python Nombre", "Hola Ana!\n", "Hola Luis!\n"},
		},
		{
			name:     "failures are silent",
			variant:  domain.VariantConversor,
			stdin:    "garbage\n",
			wantCode: ExitOK,
			contains: []string{"Recibido por STDIN: \nFin de datos", "Fin del script\n"},
		},
		{
			name:     "strict turns failures into exit 1",
			variant:  domain.VariantConversor,
			stdin:    "garbage\n",
			args:     []string{"temp=1"},
			strict:   true,
			wantCode: ExitFailures,
			contains: []string{"274\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Strict = tt.strict
			var out bytes.Buffer

			code, err := RunScript(context.Background(), RunOptions{
				Config:  cfg,
				Variant: tt.variant,
				Stdin:   strings.NewReader(tt.stdin),
				Stdout:  &out,
				Args:    tt.args,
				Logger:  logging.NewNop(),
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, code)
			for _, c := range tt.contains {
				assert.Contains(t, out.String(), c)
			}
		})
	}
}

func TestRunScript_ConfigVariant(t *testing.T) {
	tests := []struct {
		variant string
		stdin   string
		args    []string
		want    string
	}{
		{variant: "nombre", stdin: "name=Ana\n", args: []string{"name=Luis"}, want: "Hola Ana!\n"},
		{variant: "greet", stdin: "name=Ana\n", args: []string{"name=Luis"}, want: "Hola Luis!\n"},
		{variant: "name", stdin: "name=Ana\n", want: "Hola Ana!\n"},
		{variant: "convert", stdin: "temp=1\n", want: "274\n"},
		{variant: "kelvin", args: []string{"temp=2"}, want: "275\n"},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			cfg := testConfig()
			cfg.Variant = tt.variant
			require.NoError(t, cfg.Validate())
			var out bytes.Buffer

			code, err := RunScript(context.Background(), RunOptions{
				Config: cfg,
				Stdin:  strings.NewReader(tt.stdin),
				Stdout: &out,
				Args:   tt.args,
				Logger: logging.NewNop(),
			})

			require.NoError(t, err)
			assert.Equal(t, ExitOK, code)
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunScript_UnknownConfigVariant(t *testing.T) {
	cfg := testConfig()
	cfg.Variant = "python"

	code, err := RunScript(context.Background(), RunOptions{
		Config: cfg,
		Stdin:  strings.NewReader(""),
		Stdout: &bytes.Buffer{},
		Logger: logging.NewNop(),
	})

	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
	assert.Equal(t, ExitFailures, code)
}

func TestRunScript_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, err := RunScript(ctx, RunOptions{
		Config:  testConfig(),
		Variant: domain.VariantConversor,
		Stdin:   strings.NewReader("temp=0\n"),
		Stdout:  &bytes.Buffer{},
		Logger:  logging.NewNop(),
	})

	require.NoError(t, err)
	assert.Equal(t, ExitInterrupted, code)
}

func TestRunScript_JSON(t *testing.T) {
	cfg := testConfig()
	cfg.JSON = true
	var out bytes.Buffer

	_, err := RunScript(context.Background(), RunOptions{
		Config:  cfg,
		Variant: domain.VariantNombre,
		Stdin:   strings.NewReader("name=Ana\n"),
		Stdout:  &out,
		Logger:  logging.NewNop(),
	})

	require.NoError(t, err)
	assert.NotContains(t, out.String(), "Inicio")
	assert.Contains(t, out.String(), `"output":"Hola Ana!"`)
	assert.Contains(t, out.String(), `"done":true`)
}

func TestExitCode(t *testing.T) {
	failed := &domain.Report{}
	failed.Add(domain.Result{Err: domain.ErrMissingArgument})
	ok := &domain.Report{}
	ok.Add(domain.Result{Output: "273"})

	assert.Equal(t, ExitOK, ExitCode(failed, false))
	assert.Equal(t, ExitFailures, ExitCode(failed, true))
	assert.Equal(t, ExitOK, ExitCode(ok, true))
	assert.Equal(t, ExitOK, ExitCode(nil, true))
}
