// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TIMETABLER_"

// Cache backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Themes lists the accepted UI theme names.
var Themes = []string{"mocha", "macchiato", "frappe", "latte"}

// Validation errors.
var (
	ErrUnknownBackend = errors.New("unknown cache backend")
	ErrUnknownTheme   = errors.New("unknown theme")
	ErrInvalidColor   = errors.New("subject color must be #RRGGBB")
)

// Config holds the application configuration.
type Config struct {
	Timetable TimetableConfig `toml:"timetable"`
	Subject   SubjectConfig   `toml:"subject"`
	Remote    RemoteConfig    `toml:"remote"`
	Storage   StorageConfig   `toml:"storage"`
	LLM       LLMConfig       `toml:"llm"`
	UI        UIConfig        `toml:"ui"`
}

// TimetableConfig names the timetable being edited and its owner.
type TimetableConfig struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
	UserID      int    `toml:"user_id"`
}

// SubjectConfig is the default subject for new lessons. A zero ID means none.
type SubjectConfig struct {
	ID    int    `toml:"id"`
	Name  string `toml:"name"`
	Code  string `toml:"code"`
	Color string `toml:"color"` // e.g., "#3b82f6"
}

// RemoteConfig holds the timetable service settings. An empty base URL keeps
// the tool offline.
type RemoteConfig struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// StorageConfig holds local cache settings.
type StorageConfig struct {
	DBPath       string `toml:"db_path"`
	CacheBackend string `toml:"cache_backend"` // "sqlite" or "redis"
	RedisAddr    string `toml:"redis_addr"`
	CacheKey     string `toml:"cache_key"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "openai", "lmstudio"
	Model    string `toml:"model"`
	BaseURL  string `toml:"base_url"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"`
}

// Duration is a time.Duration written as "10s" in TOML.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timetable: TimetableConfig{
			Name:   "My Timetable",
			UserID: 1,
		},
		Remote: RemoteConfig{
			Timeout: Duration(10 * time.Second),
		},
		Storage: StorageConfig{
			DBPath:       defaultDBPath(),
			CacheBackend: BackendSQLite,
			CacheKey:     "timetable-autosave",
		},
		LLM: LLMConfig{
			Provider: "ollama",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "timetabler.db"
	}
	return filepath.Join(home, ".local", "share", "timetabler", "timetabler.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timetabler", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays the file if it exists, loads a .env file
// from the working directory, then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies TIMETABLER_* variables on top of cfg.
func applyEnvOverrides(cfg *Config) error {
	str := map[string]*string{
		"NAME":          &cfg.Timetable.Name,
		"DESCRIPTION":   &cfg.Timetable.Description,
		"SUBJECT_NAME":  &cfg.Subject.Name,
		"SUBJECT_CODE":  &cfg.Subject.Code,
		"SUBJECT_COLOR": &cfg.Subject.Color,
		"REMOTE_URL":    &cfg.Remote.BaseURL,
		"DB_PATH":       &cfg.Storage.DBPath,
		"CACHE_BACKEND": &cfg.Storage.CacheBackend,
		"REDIS_ADDR":    &cfg.Storage.RedisAddr,
		"CACHE_KEY":     &cfg.Storage.CacheKey,
		"LLM_PROVIDER":  &cfg.LLM.Provider,
		"LLM_MODEL":     &cfg.LLM.Model,
		"LLM_BASE_URL":  &cfg.LLM.BaseURL,
		"UI_THEME":      &cfg.UI.Theme,
	}
	for key, dst := range str {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"USER_ID":    &cfg.Timetable.UserID,
		"SUBJECT_ID": &cfg.Subject.ID,
	}
	for key, dst := range ints {
		v := os.Getenv(EnvPrefix + key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	if v := os.Getenv(EnvPrefix + "REMOTE_TIMEOUT"); v != "" {
		if err := cfg.Remote.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sREMOTE_TIMEOUT: %w", EnvPrefix, err)
		}
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.CacheBackend {
	case BackendSQLite:
		if c.Storage.DBPath == "" {
			return errors.New("db_path must be set for the sqlite backend")
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return errors.New("redis_addr must be set for the redis backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.CacheBackend)
	}
	if c.Remote.Timeout <= 0 {
		return errors.New("remote timeout must be positive")
	}
	if !slices.Contains(Themes, strings.ToLower(c.UI.Theme)) {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, c.UI.Theme)
	}
	if c.Subject.Color != "" && !hexColor.MatchString(c.Subject.Color) {
		return fmt.Errorf("%w, got %q", ErrInvalidColor, c.Subject.Color)
	}
	return nil
}

// HasSubject reports whether a default subject is configured.
func (c *Config) HasSubject() bool {
	return c.Subject.ID != 0
}

// HasRemote reports whether a timetable service is configured.
func (c *Config) HasRemote() bool {
	return c.Remote.BaseURL != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
