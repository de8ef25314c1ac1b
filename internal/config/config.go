package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/shelfscan/shelfscan/internal/refresh"
)

// Config holds shelfscan's runtime settings.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	LogFile        string
	Refresh        refresh.Options
}

const (
	defaultConfigPath     = "~/.config/shelfscan/config.toml"
	defaultLogFile        = "~/.local/state/shelfscan/shelfscan.log"
	defaultAPIURL         = "127.0.0.1:8000"
	defaultRequestTimeout = 10 * time.Second
	defaultSettleDelay    = 3 * time.Second
	defaultPollInterval   = time.Second
	defaultRefreshTimeout = 2 * time.Minute
)

// Environment overrides, also read from a .env file in the working directory.
const (
	EnvAPIURL      = "SHELFSCAN_API_URL"
	EnvRefreshMode = "SHELFSCAN_REFRESH_MODE"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		Refresh: refresh.Options{
			Mode:         refresh.ModePoll,
			SettleDelay:  defaultSettleDelay,
			PollInterval: defaultPollInterval,
			Timeout:      defaultRefreshTimeout,
		},
	}
}

type rawConfig struct {
	APIURL         string `toml:"api_url"`
	RequestTimeout string `toml:"request_timeout"`
	LogFile        string `toml:"log_file"`
	Refresh        struct {
		Mode         string `toml:"mode"`
		SettleDelay  string `toml:"settle_delay"`
		PollInterval string `toml:"poll_interval"`
		Timeout      string `toml:"timeout"`
	} `toml:"refresh"`
}

// Load reads the config file at path (default ~/.config/shelfscan/config.toml),
// falling back to defaults when it is missing, then applies environment overrides.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		raw.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRefreshMode)); v != "" {
		raw.Refresh.Mode = v
	}

	return raw.resolve()
}

func (raw rawConfig) resolve() (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	mode, err := refresh.ParseMode(raw.Refresh.Mode)
	if err != nil {
		return Config{}, fmt.Errorf("refresh.mode: %w", err)
	}
	cfg.Refresh.Mode = mode

	durations := []struct {
		key   string
		value string
		dest  *time.Duration
	}{
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
		{"refresh.settle_delay", raw.Refresh.SettleDelay, &cfg.Refresh.SettleDelay},
		{"refresh.poll_interval", raw.Refresh.PollInterval, &cfg.Refresh.PollInterval},
		{"refresh.timeout", raw.Refresh.Timeout, &cfg.Refresh.Timeout},
	}
	for _, d := range durations {
		if err := parseDuration(d.key, d.value, d.dest); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// parseDuration leaves dest untouched for blank values.
func parseDuration(key, value string, dest *time.Duration) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return fmt.Errorf("%s: must be positive, got %s", key, value)
	}
	*dest = d
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
