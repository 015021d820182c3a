package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fieldprint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("non-existent config file", func(t *testing.T) {
		cfg, err := Load("invalid/path/to/config.yaml")

		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, cfg)
	})

	t.Run("invalid config file", func(t *testing.T) {
		path := writeConfig(t, "http:\n  port: not number\n")
		cfg, err := Load(path)

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeConfig(t, "alarm: 1\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("invalid variant", func(t *testing.T) {
		path := writeConfig(t, "variant: fahrenheit\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("success", func(t *testing.T) {
		path := writeConfig(t, `variant: nombre
form: query
field: who
greeting: "Hi %s!"
mode: continue
input_timeout: 250ms
strict: true
log_level: debug
color: never
banners:
  title: Saludos
http:
  port: 9090
  read_timeout: 2s
scripts:
  - name: conversor
    command: python3
    args: [scripts/script_conversor.py]
    timeout: 3s
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		want := Default()
		want.Variant = "nombre"
		want.Form = "query"
		want.Field = "who"
		want.Greeting = "Hi %s!"
		want.Mode = "continue"
		want.InputTimeout = 250 * time.Millisecond
		want.Strict = true
		want.LogLevel = "debug"
		want.Color = ColorNever
		want.Banners.Title = "Saludos"
		want.HTTP.Port = 9090
		want.HTTP.ReadTimeout = 2 * time.Second
		want.Scripts = cfg.Scripts

		assert.Equal(t, want, *cfg)
		require.Len(t, cfg.Scripts, 1)
		assert.Equal(t, "python3", cfg.Scripts[0].Command)
		assert.Equal(t, []string{"scripts/script_conversor.py"}, cfg.Scripts[0].Args)
		assert.Equal(t, 3*time.Second, cfg.Scripts[0].Timeout)
		assert.Equal(t, ":9090", cfg.HTTP.Addr())
	})

	t.Run("script without command", func(t *testing.T) {
		path := writeConfig(t, "scripts:\n  - name: broken\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)

	_, err = LoadOrDefault("elsewhere.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(DefaultPath, []byte("offset: 0\n"), 0644))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.Offset)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, time.Second, cfg.InputTimeout)
	assert.Equal(t, ":8081", cfg.HTTP.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"variant alias", func(c *Config) { c.Variant = "greet" }, false},
		{"unknown variant", func(c *Config) { c.Variant = "fahrenheit" }, true},
		{"unknown form", func(c *Config) { c.Form = "xml" }, true},
		{"unknown mode", func(c *Config) { c.Mode = "retry" }, true},
		{"negative input timeout", func(c *Config) { c.InputTimeout = -time.Second }, true},
		{"zero input timeout waits forever", func(c *Config) { c.InputTimeout = 0 }, false},
		{"empty field", func(c *Config) { c.Field = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad color", func(c *Config) { c.Color = "rainbow" }, true},
		{"greeting without verb", func(c *Config) { c.Greeting = "Hola!" }, true},
		{"greeting with int verb", func(c *Config) { c.Greeting = "Hola %d!" }, true},
		{"greeting with literal percent", func(c *Config) { c.Greeting = "100%% %s" }, false},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }, true},
		{"zero body limit", func(c *Config) { c.HTTP.MaxBodyBytes = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
