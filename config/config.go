package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v2"
)

var (
	ErrMissingHost   = errors.New("tautulli host is not set")
	ErrMissingAPIKey = errors.New("tautulli api key is not set")
	ErrInvalidPort   = errors.New("tautulli port must be between 1 and 65535")
	ErrInvalidTime   = errors.New("request timeout must be positive")
)

const (
	DefaultPort    = 8181
	DefaultTimeout = 5 * time.Second
)

// Config is built once at startup and handed to every component that
// needs it. Nothing mutates it after Validate succeeds.
type Config struct {
	Tautulli   TautulliConfig `yaml:"tautulli"`
	Debug      bool           `yaml:"debug"`
	TextFile   string         `yaml:"textfile"`
	TitleWidth int            `yaml:"title_width"`
}

type TautulliConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	APIKey   string        `yaml:"api_key"`
	HTTPS    bool          `yaml:"https"`
	Insecure bool          `yaml:"insecure"`
	BasePath string        `yaml:"base_path"`
	Timeout  time.Duration `yaml:"timeout"`
}

func Defaults() Config {
	return Config{
		Tautulli: TautulliConfig{
			Port:    DefaultPort,
			Timeout: DefaultTimeout,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tautulli-status/config.yml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tautulli-status", "config.yml")
}

// Load reads the YAML file at path and fills any unset field from Defaults.
// A missing file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return Config{}, fmt.Errorf("merging config defaults: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	return c.Tautulli.Validate()
}

func (c TautulliConfig) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrMissingHost
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	if c.Timeout <= 0 {
		return ErrInvalidTime
	}
	return nil
}

// BaseURL is the scheme, host, port and base path of the Tautulli instance
// without a trailing slash, e.g. "http://localhost:8181/tautulli".
func (c TautulliConfig) BaseURL() string {
	scheme := "http"
	if c.HTTPS {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
	}
	if p := strings.Trim(c.BasePath, "/"); p != "" {
		u.Path = "/" + p
	}
	return u.String()
}
