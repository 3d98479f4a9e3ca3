// Package config loads the settings of the swaggerui server from an optional
// YAML file and SWAGGERUI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/drblury/swaggerui/router"
)

// Config is the full server configuration.
type Config struct {
	SwaggerUI SwaggerUI `yaml:"swaggerui"`
	Server    Server    `yaml:"server"`
	Log       Log       `yaml:"log"`
	Probes    Probes    `yaml:"probes"`
}

// SwaggerUI holds the UI mount settings.
type SwaggerUI struct {
	// Path is the route the entry page is mounted at.
	Path string `yaml:"path"`
	// Docs is the API document location written into the entry page.
	Docs string `yaml:"docs"`
	// Assets is a directory holding an unpacked bundle. Empty serves the
	// embedded one.
	Assets string `yaml:"assets"`
	// SpecFile is a local OpenAPI document served at Docs.
	SpecFile string `yaml:"spec_file"`
	// ForwardedPrefix honours X-Forwarded-Prefix as the request base path.
	ForwardedPrefix bool `yaml:"forwarded_prefix"`
}

// Server holds listener and middleware settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	Router          router.Kind   `yaml:"router"`
	Timeout         time.Duration `yaml:"timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORS            CORS          `yaml:"cors"`
	HideHeaders     []string      `yaml:"hide_headers"`
	QuietdownRoutes []string      `yaml:"quietdown_routes"`
	// ValidateRequests checks requests for the served API document against
	// that document.
	ValidateRequests bool `yaml:"validate_requests"`
}

// CORS mirrors router.CORSConfig.
type CORS struct {
	Origins          []string `yaml:"origins"`
	Methods          []string `yaml:"methods"`
	Headers          []string `yaml:"headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Probes configures readiness dependencies.
type Probes struct {
	MongoURI string `yaml:"mongo_uri"`
	// DocsURLCheck probes an absolute Docs URL on readiness.
	DocsURLCheck bool          `yaml:"docs_url_check"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		SwaggerUI: SwaggerUI{
			Path: "/docs",
			Docs: "/openapi.json",
		},
		Server: Server{
			Addr:            ":8080",
			Router:          router.KindServeMux,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
		Probes: Probes{
			Timeout: 2 * time.Second,
		},
	}
}

// Load reads path over the defaults when path is non-empty, then applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"SWAGGERUI_PATH":       &c.SwaggerUI.Path,
		"SWAGGERUI_DOCS":       &c.SwaggerUI.Docs,
		"SWAGGERUI_ASSETS":     &c.SwaggerUI.Assets,
		"SWAGGERUI_SPEC_FILE":  &c.SwaggerUI.SpecFile,
		"SWAGGERUI_ADDR":       &c.Server.Addr,
		"SWAGGERUI_LOG_LEVEL":  &c.Log.Level,
		"SWAGGERUI_LOG_FORMAT": &c.Log.Format,
		"SWAGGERUI_MONGO_URI":  &c.Probes.MongoURI,
	}
	for key, dst := range strs {
		if value, ok := lookup(key); ok {
			*dst = strings.TrimSpace(value)
		}
	}

	if value, ok := lookup("SWAGGERUI_ROUTER"); ok {
		c.Server.Router = router.Kind(strings.ToLower(strings.TrimSpace(value)))
	}
	if value, ok := lookup("SWAGGERUI_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: SWAGGERUI_TIMEOUT: %w", err)
		}
		c.Server.Timeout = timeout
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.SwaggerUI.Path, "/") {
		errs = append(errs, fmt.Errorf("swaggerui.path %q must start with /", c.SwaggerUI.Path))
	}
	if strings.TrimSpace(c.SwaggerUI.Docs) == "" {
		errs = append(errs, errors.New("swaggerui.docs is required"))
	}
	if _, ok := router.NewRegistrar(c.Server.Router); !ok {
		errs = append(errs, fmt.Errorf("server.router %q is not one of servemux, chi, gorilla", c.Server.Router))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not one of json, text", c.Log.Format))
	}
	if c.Server.Timeout < 0 {
		errs = append(errs, errors.New("server.timeout cannot be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// SlogLevel parses Level.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// RouterConfig converts the server settings for router.New.
func (s Server) RouterConfig() router.Config {
	return router.Config{
		Timeout: s.Timeout,
		CORS: router.CORSConfig{
			Origins:          s.CORS.Origins,
			Methods:          s.CORS.Methods,
			Headers:          s.CORS.Headers,
			AllowCredentials: s.CORS.AllowCredentials,
		},
		HideHeaders:     s.HideHeaders,
		QuietdownRoutes: s.QuietdownRoutes,
	}
}
