package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrConfigSync marks a failure to persist the configuration file. Callers
// log it and keep the in-memory value.
var ErrConfigSync = errors.New("configuration synchronization failed")

type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`

	// path is where toggle changes are written back; empty disables saving.
	path string
}

type UIConfig struct {
	EnableGlobalSubScreenQuitShortcut bool `mapstructure:"enable_global_sub_screen_quit_shortcut"`
	DisplayCommentsPanelByDefault     bool `mapstructure:"display_comments_panel_by_default"`
	DisplayMainItemsListItemMeta      bool `mapstructure:"display_main_items_list_item_meta"`
	ShowContextualHelp                bool `mapstructure:"show_contextual_help"`
}

type APIConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	SearchBaseURL string        `mapstructure:"search_base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	UserAgent     string        `mapstructure:"user_agent"`
	SearchHits    int           `mapstructure:"search_hits"`
}

type StorageConfig struct {
	Path        string `mapstructure:"path"`
	SearchIndex string `mapstructure:"search_index"`
	HistoryPath string `mapstructure:"history_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// DefaultPath returns ~/.config/hnterm/config.toml.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "hnterm")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "hnterm")
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".hnterm")

	return &Config{
		UI: UIConfig{
			EnableGlobalSubScreenQuitShortcut: true,
			DisplayCommentsPanelByDefault:     false,
			DisplayMainItemsListItemMeta:      false,
			ShowContextualHelp:                true,
		},
		API: APIConfig{
			BaseURL:       "https://hacker-news.firebaseio.com/v0",
			SearchBaseURL: "http://hn.algolia.com/api/v1",
			Timeout:       10 * time.Second,
			UserAgent:     "hnterm/1.0 (https://github.com/pders01/hnterm)",
			SearchHits:    30,
		},
		Storage: StorageConfig{
			Path:        filepath.Join(dataDir, "hnterm.db"),
			SearchIndex: filepath.Join(dataDir, "index.bleve"),
			HistoryPath: filepath.Join(configDir(), "history.json"),
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(dataDir, "hnterm.log"),
		},
	}
}

// values flattens cfg into dotted viper keys.
func values(cfg *Config) map[string]any {
	return map[string]any{
		"ui.enable_global_sub_screen_quit_shortcut": cfg.UI.EnableGlobalSubScreenQuitShortcut,
		"ui.display_comments_panel_by_default":      cfg.UI.DisplayCommentsPanelByDefault,
		"ui.display_main_items_list_item_meta":      cfg.UI.DisplayMainItemsListItemMeta,
		"ui.show_contextual_help":                   cfg.UI.ShowContextualHelp,
		"api.base_url":                              cfg.API.BaseURL,
		"api.search_base_url":                       cfg.API.SearchBaseURL,
		"api.timeout":                               cfg.API.Timeout.String(),
		"api.user_agent":                            cfg.API.UserAgent,
		"api.search_hits":                           cfg.API.SearchHits,
		"storage.path":                              cfg.Storage.Path,
		"storage.search_index":                      cfg.Storage.SearchIndex,
		"storage.history_path":                      cfg.Storage.HistoryPath,
		"log.level":                                 cfg.Log.Level,
		"log.path":                                  cfg.Log.Path,
	}
}

// Load reads the TOML configuration at configPath (or the default location).
// A missing file yields the defaults; so does any key absent from the file.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range values(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.SetEnvPrefix("HNTERM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := checkPaths(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	expandPaths(&config)
	config.path = configPath

	return &config, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

// checkPath rejects paths carrying control characters or parent-directory
// components.
func checkPath(key, path string) error {
	for _, r := range path {
		if r < 32 && r != '\t' {
			return fmt.Errorf("%s: path contains control characters", key)
		}
	}
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".." {
			return fmt.Errorf("%s: directory traversal not allowed", key)
		}
	}
	return nil
}

func checkPaths(cfg *Config) error {
	paths := []struct{ key, path string }{
		{"storage.path", cfg.Storage.Path},
		{"storage.search_index", cfg.Storage.SearchIndex},
		{"storage.history_path", cfg.Storage.HistoryPath},
		{"log.path", cfg.Log.Path},
	}
	for _, p := range paths {
		if err := checkPath(p.key, p.path); err != nil {
			return err
		}
	}
	return nil
}

func expandPaths(cfg *Config) {
	cfg.Storage.Path = expandPath(cfg.Storage.Path)
	cfg.Storage.SearchIndex = expandPath(cfg.Storage.SearchIndex)
	cfg.Storage.HistoryPath = expandPath(cfg.Storage.HistoryPath)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

// Path returns the file toggle changes are saved to.
func (c *Config) Path() string {
	return c.path
}

func Save(config *Config, path string) error {
	v := viper.New()
	for key, value := range values(config) {
		v.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// persist writes the whole configuration back to its file.
func (c *Config) persist() error {
	if c.path == "" {
		return nil
	}
	if err := Save(c, c.path); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigSync, err)
	}
	return nil
}

func (c *Config) SetEnableGlobalSubScreenQuitShortcut(value bool) error {
	c.UI.EnableGlobalSubScreenQuitShortcut = value
	return c.persist()
}

func (c *Config) SetDisplayCommentsPanelByDefault(value bool) error {
	c.UI.DisplayCommentsPanelByDefault = value
	return c.persist()
}

func (c *Config) SetDisplayMainItemsListItemMeta(value bool) error {
	c.UI.DisplayMainItemsListItemMeta = value
	return c.persist()
}

func (c *Config) SetShowContextualHelp(value bool) error {
	c.UI.ShowContextualHelp = value
	return c.persist()
}
