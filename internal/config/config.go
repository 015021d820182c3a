package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/fieldprint/internal/logging"
	"github.com/aretw0/fieldprint/pkg/adapters/process"
	"github.com/aretw0/fieldprint/pkg/domain"
	"github.com/aretw0/fieldprint/pkg/record"
	"github.com/aretw0/fieldprint/pkg/runner"
	"github.com/aretw0/fieldprint/pkg/transform"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when --config is not given.
const DefaultPath = "fieldprint.yaml"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Variant      string        `mapstructure:"variant"`
	Form         string        `mapstructure:"form" validate:"oneof=plain query"`
	Field        string        `mapstructure:"field" validate:"required"`
	Offset       int64         `mapstructure:"offset"`
	Greeting     string        `mapstructure:"greeting" validate:"required"`
	Mode         string        `mapstructure:"mode" validate:"oneof=continue abandon"`
	InputTimeout time.Duration `mapstructure:"input_timeout" validate:"gte=0"`
	Strict       bool          `mapstructure:"strict"`
	JSON         bool          `mapstructure:"json"`
	LogLevel     string        `mapstructure:"log_level"`
	Color        string        `mapstructure:"color" validate:"oneof=auto always never"`

	Banners runner.Banners `mapstructure:"banners"`
	HTTP    HTTPServer     `mapstructure:"http"`

	Scripts     []process.ProcessConfig `mapstructure:"scripts" validate:"dive"`
	ScriptsFile string                  `mapstructure:"scripts_file"` // extra registry, YAML or JSON
	ScriptsDir  string                  `mapstructure:"scripts_dir"`  // working directory of scripts
}

type HTTPServer struct {
	Port            int           `mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	AccessLog       bool          `mapstructure:"access_log"`
}

var defaultHTTPServer = HTTPServer{
	Port:            8081,
	ReadTimeout:     5 * time.Second,
	WriteTimeout:    10 * time.Second,
	ShutdownTimeout: 5 * time.Second,
	MaxBodyBytes:    1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Variant:      string(domain.VariantConversor),
		Form:         string(record.FormPlain),
		Field:        domain.DefaultField,
		Offset:       domain.DefaultOffset,
		Greeting:     domain.DefaultGreeting,
		Mode:         string(domain.DefaultMode),
		InputTimeout: runner.DefaultInputTimeout,
		LogLevel:     "warn",
		Color:        ColorAuto,
		HTTP:         defaultHTTPServer,
	}
}

// Load reads a YAML file on top of Default.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load, except that a missing file at DefaultPath
// (or an empty path) yields Default. An explicit path must exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if err != nil && path == DefaultPath && errors.Is(err, os.ErrNotExist) {
		def := Default()
		return &def, nil
	}
	return cfg, err
}

// Parse decodes YAML bytes on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cfg,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate rejects values that have no meaning for the extractor.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := domain.ParseVariant(c.Variant); err != nil {
		return err
	}
	if err := transform.CheckGreeting(c.Greeting); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
