package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/ssafy-wtd/wtd/internal/session"
)

// Config captures everything wtd needs at startup.
type Config struct {
	APIBaseURL     string        `validate:"required,url"`
	UserID         string
	Latitude       float64       `validate:"gte=-90,lte=90"`
	Longitude      float64       `validate:"gte=-180,lte=180"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
	LogFile        string
	RequestTimeout time.Duration `validate:"gte=0"`
	Storage        StorageConfig
}

// StorageConfig selects the session slot backend.
type StorageConfig struct {
	Driver     string `validate:"oneof=memory file redis"`
	Dir        string
	RedisURL   string
	SessionID  string
	SessionTTL time.Duration `validate:"gte=0"`
}

const (
	defaultConfigPath = "~/.config/wtd/config.toml"
	defaultAPIBaseURL = "http://localhost:8080/api/v1/activities"
	defaultLogLevel   = "info"
	defaultLogFile    = "~/.local/state/wtd/wtd.log"
	defaultDriver     = session.DriverMemory
	defaultSessionDir = "~/.local/state/wtd/session"
	defaultRedisURL   = "redis://127.0.0.1:6379/0"
	defaultSessionTTL = 12 * time.Hour

	// Seoul Station, where the backend's weather lookup defaults.
	defaultLatitude  = 37.5547
	defaultLongitude = 126.9707
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIBaseURL: defaultAPIBaseURL,
		Latitude:   defaultLatitude,
		Longitude:  defaultLongitude,
		LogLevel:   defaultLogLevel,
		LogFile:    mustExpand(defaultLogFile),
		Storage: StorageConfig{
			Driver:     defaultDriver,
			Dir:        mustExpand(defaultSessionDir),
			RedisURL:   defaultRedisURL,
			SessionTTL: defaultSessionTTL,
		},
	}
}

// Load locates and parses the wtd config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL        string   `toml:"api_base_url"`
		UserID            any      `toml:"user_id"`
		Latitude          *float64 `toml:"latitude"`
		Longitude         *float64 `toml:"longitude"`
		LogLevel          string   `toml:"log_level"`
		LogFile           *string  `toml:"log_file"`
		RequestTimeoutSec int      `toml:"request_timeout_sec"`
		Storage           struct {
			Driver        string `toml:"driver"`
			Dir           string `toml:"dir"`
			RedisURL      string `toml:"redis_url"`
			SessionID     string `toml:"session_id"`
			SessionTTLMin int    `toml:"session_ttl_min"`
		} `toml:"storage"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	cfg.UserID = userIDString(raw.UserID)
	if raw.Latitude != nil {
		cfg.Latitude = *raw.Latitude
	}
	if raw.Longitude != nil {
		cfg.Longitude = *raw.Longitude
	}
	if v := strings.ToLower(strings.TrimSpace(raw.LogLevel)); v != "" {
		cfg.LogLevel = v
	}
	// An explicit empty log_file disables logging.
	if raw.LogFile != nil {
		cfg.LogFile = ""
		if v := strings.TrimSpace(*raw.LogFile); v != "" {
			cfg.LogFile = mustExpand(v)
		}
	}
	cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSec) * time.Second

	if v := strings.ToLower(strings.TrimSpace(raw.Storage.Driver)); v != "" {
		cfg.Storage.Driver = v
	}
	if v := strings.TrimSpace(raw.Storage.Dir); v != "" {
		cfg.Storage.Dir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Storage.RedisURL); v != "" {
		cfg.Storage.RedisURL = v
	}
	cfg.Storage.SessionID = strings.TrimSpace(raw.Storage.SessionID)
	if raw.Storage.SessionTTLMin != 0 {
		cfg.Storage.SessionTTL = time.Duration(raw.Storage.SessionTTLMin) * time.Minute
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// UserIDInt returns the numeric user id, or zero when unset or not a number.
// Recommendation requests omit a zero id; the estimated-time lookup uses
// UserID as written.
func (c Config) UserIDInt() int64 {
	id, err := strconv.ParseInt(c.UserID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// SessionOptions converts the storage section for session.Open.
func (c Config) SessionOptions() session.Options {
	return session.Options{
		Driver:    c.Storage.Driver,
		Dir:       c.Storage.Dir,
		RedisURL:  c.Storage.RedisURL,
		SessionID: c.Storage.SessionID,
		TTL:       c.Storage.SessionTTL,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// user_id may be written as a number or a string.
func userIDString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return strings.TrimSpace(fmt.Sprint(id))
	}
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
