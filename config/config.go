package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"tictactoe/game"
	"tictactoe/meta"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

var (
	cfgFile = "tictactoe/config.json"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

// AgentConfig holds the agent server settings, and where remote players find
// it.
type AgentConfig struct {
	Addr           string `json:"addr"`
	MaxDepth       int    `json:"max_depth"`
	URL            string `json:"url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type ExperimentsConfig struct {
	Dir   string `json:"dir"`
	Games int    `json:"games"`
}

type Config struct {
	Mode        string            `json:"mode"`
	Depth       int               `json:"depth"`
	HumanPlays  string            `json:"human_plays"` // Side of the human in singleplayer
	Color       bool              `json:"color"`
	LogLevel    string            `json:"log_level"`
	Agent       AgentConfig       `json:"agent"`
	Experiments ExperimentsConfig `json:"experiments"`
}

var DefaultConfig = Config{
	Mode:       game.Singleplayer.String(),
	Depth:      meta.DEFAULT_DEPTH,
	HumanPlays: game.O.String(),
	Color:      true,
	LogLevel:   zerolog.InfoLevel.String(),
	Agent: AgentConfig{
		Addr:           meta.DEFAULT_ADDR,
		MaxDepth:       meta.MAX_DEPTH,
		URL:            "http://localhost" + meta.DEFAULT_ADDR,
		TimeoutSeconds: meta.REQUEST_TIMEOUT_SECONDS,
	},
	Experiments: ExperimentsConfig{
		Dir:   "experiments",
		Games: meta.GAMES_PER_MATCHUP,
	},
}

// InitConfig starts from DefaultConfig and applies the user's config file,
// if there is one.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		config := DefaultConfig
		return &config, nil
	}
	return Load(absPath)
}

// Load applies the file at path on top of DefaultConfig. A missing file
// leaves the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if _, err := game.ParseMode(c.Mode); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if _, err := game.ParseMark(c.HumanPlays); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Depth < 1 || c.Depth > meta.MAX_DEPTH {
		return &InvalidConfig{fmt.Sprintf("depth should be in [1, %d], got %d", meta.MAX_DEPTH, c.Depth)}
	}
	if c.Agent.MaxDepth < 1 || c.Agent.MaxDepth > meta.MAX_DEPTH {
		return &InvalidConfig{fmt.Sprintf("agent max depth should be in [1, %d], got %d", meta.MAX_DEPTH, c.Agent.MaxDepth)}
	}
	if c.Agent.TimeoutSeconds < 1 {
		return &InvalidConfig{"agent timeout should be at least one second"}
	}
	if c.Experiments.Games < 1 {
		return &InvalidConfig{"experiments need at least one game per matchup"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{err.Error()}
	}
	return nil
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return c.SaveTo(absPath)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return saveCfgFile(path, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(configReader, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}
