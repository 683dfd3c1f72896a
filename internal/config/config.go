// Package config loads service settings from defaults, an optional YAML file
// and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Environment variables read by Load.
const (
	EnvPort        = "PORT"
	EnvEnvironment = "ENVIRONMENT"
	EnvConfigPath  = "SKELETON_API_CONFIG"
	EnvLogLevel    = "SKELETON_API_LOG_LEVEL"
)

// minColorDistance is the smallest CIEDE2000 distance allowed between the
// endpoint and branch marker colors.
const minColorDistance = 0.1

// Config holds every tunable of the service.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// Environment name. "production" adds ProductionOrigins to the CORS list.
	Environment string `yaml:"environment"`

	// AllowedOrigins are always accepted by CORS.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// ProductionOrigins are accepted only when Environment is "production".
	ProductionOrigins []string `yaml:"production_origins"`

	// MaxUploadBytes caps the request body of an upload.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// MaxPixels caps width*height of a decoded image. Zero disables the cap.
	MaxPixels int `yaml:"max_pixels"`

	// RequestTimeout bounds a single request.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// EndpointColor and BranchColor are "#RRGGBB" marker colors.
	EndpointColor string `yaml:"endpoint_color"`
	BranchColor   string `yaml:"branch_color"`

	// MarkerRadius is the marker disc radius in pixels.
	MarkerRadius int `yaml:"marker_radius"`

	// CloseGaps enables gap closing for every request, not only those that
	// ask for it.
	CloseGaps bool `yaml:"close_gaps"`

	// LogLevel is "info" or "debug".
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:        "8000",
		Environment: "development",
		AllowedOrigins: []string{
			"http://localhost:4200",
			"https://alnmrtnk.github.io",
			"https://ai-images-skeletonization.vercel.app",
		},
		MaxUploadBytes:  10 << 20,
		MaxPixels:       16_000_000,
		RequestTimeout:  120 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		EndpointColor:   "#FF0000",
		BranchColor:     "#0000FF",
		MarkerRadius:    2,
		LogLevel:        "info",
	}
}

// Load builds the configuration. The YAML file at path is optional; an empty
// path falls back to the SKELETON_API_CONFIG environment variable, and if
// that is empty too only defaults and environment overrides apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		if !validPort(v) {
			return fmt.Errorf("%w: %s=%q is not a port", ErrInvalidConfig, EnvPort, v)
		}
		c.Port = v
	}
	if v := os.Getenv(EnvEnvironment); v != "" {
		c.Environment = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks ranges and marker colors.
func (c Config) Validate() error {
	if !validPort(c.Port) {
		return fmt.Errorf("%w: port %q is not a number between 0 and 65535", ErrInvalidConfig, c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	}
	if c.MaxPixels < 0 {
		return fmt.Errorf("%w: max_pixels must not be negative", ErrInvalidConfig)
	}
	if c.RequestTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidConfig)
	}
	if c.MarkerRadius < 0 {
		return fmt.Errorf("%w: marker_radius must not be negative", ErrInvalidConfig)
	}
	if c.LogLevel != "info" && c.LogLevel != "debug" {
		return fmt.Errorf("%w: log_level %q is not info or debug", ErrInvalidConfig, c.LogLevel)
	}

	endpoint, err := colorful.Hex(c.EndpointColor)
	if err != nil {
		return fmt.Errorf("%w: endpoint_color: %w", ErrInvalidConfig, err)
	}
	branch, err := colorful.Hex(c.BranchColor)
	if err != nil {
		return fmt.Errorf("%w: branch_color: %w", ErrInvalidConfig, err)
	}
	if endpoint.DistanceCIEDE2000(branch) < minColorDistance {
		return fmt.Errorf("%w: endpoint_color %s and branch_color %s are indistinguishable",
			ErrInvalidConfig, c.EndpointColor, c.BranchColor)
	}
	return nil
}

// validPort reports whether s is a decimal TCP port. Zero picks a free port.
func validPort(s string) bool {
	_, err := strconv.ParseUint(s, 10, 16)
	return err == nil
}

// Origins returns the CORS allow-list for the configured environment.
func (c Config) Origins() []string {
	origins := append([]string(nil), c.AllowedOrigins...)
	if c.Environment == "production" {
		origins = append(origins, c.ProductionOrigins...)
	}
	return origins
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// MarkerColors returns the parsed endpoint and branch colors as opaque RGBA.
// Call Validate first; unparsable colors come back black.
func (c Config) MarkerColors() (endpoint, branch color.RGBA) {
	return toRGBA(c.EndpointColor), toRGBA(c.BranchColor)
}

func toRGBA(hex string) color.RGBA {
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{A: 255}
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
