/*
Package config manages the TOML config for cluelist commands.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/cluelist/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Convert ConvertConfig `toml:"convert"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// ConvertConfig has options for the CSV to word list conversion.
type ConvertConfig struct {
	Input         string `toml:"input"`
	Output        string `toml:"output"`
	MinClueCount  int    `toml:"min_clue_count"`
	SkipHeader    bool   `toml:"skip_header"`
	ProgressEvery int    `toml:"progress_every"`
	Collation     string `toml:"collation"`
}

// ServerConfig has options for the serve command.
type ServerConfig struct {
	Codec       string `toml:"codec"`
	OutboxSize  int    `toml:"outbox_size"`
	MetricsAddr string `toml:"metrics_addr"`
}

// CliConfig holds browse interface options.
type CliConfig struct {
	DefaultMin     int   `toml:"default_min"`
	DefaultLengths []int `toml:"default_lengths"`
	MaxWordsShown  int   `toml:"max_words_shown"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "cluelist")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "cluelist")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/cluelist/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Input:         "valid.csv",
			Output:        filepath.Join("web", "words.json"),
			MinClueCount:  1,
			SkipHeader:    true,
			ProgressEvery: 100000,
			Collation:     "codepoint",
		},
		Server: ServerConfig{
			Codec:      "msgpack",
			OutboxSize: 64,
		},
		CLI: CliConfig{
			DefaultMin:     1,
			DefaultLengths: []int{},
			MaxWordsShown:  40,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Values that are missing keep their
// defaults; out of range values are clamped by Sanitize.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Sanitize()
	return config, nil
}

// tryPartialParse keeps every value of the right type from a file that did
// not decode into Config as a whole.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "convert"); ok {
		extractConvertConfig(section, &config.Convert)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	config.Sanitize()
	return config, nil
}

func extractConvertConfig(data map[string]any, convert *ConvertConfig) {
	if val, ok := utils.ExtractString(data, "input"); ok {
		convert.Input = val
	}
	if val, ok := utils.ExtractString(data, "output"); ok {
		convert.Output = val
	}
	if val, ok := utils.ExtractInt64(data, "min_clue_count"); ok {
		convert.MinClueCount = val
	}
	if val, ok := utils.ExtractBool(data, "skip_header"); ok {
		convert.SkipHeader = val
	}
	if val, ok := utils.ExtractInt64(data, "progress_every"); ok {
		convert.ProgressEvery = val
	}
	if val, ok := utils.ExtractString(data, "collation"); ok {
		convert.Collation = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractString(data, "codec"); ok {
		server.Codec = val
	}
	if val, ok := utils.ExtractInt64(data, "outbox_size"); ok {
		server.OutboxSize = val
	}
	if val, ok := utils.ExtractString(data, "metrics_addr"); ok {
		server.MetricsAddr = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_min"); ok {
		cli.DefaultMin = val
	}
	if val, ok := utils.ExtractIntSlice(data, "default_lengths"); ok {
		cli.DefaultLengths = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words_shown"); ok {
		cli.MaxWordsShown = val
	}
}

// Sanitize clamps values a user may have set out of range.
func (c *Config) Sanitize() {
	c.Convert.MinClueCount = utils.EnsureMinClue(c.Convert.MinClueCount)
	c.CLI.DefaultMin = utils.EnsureMinClue(c.CLI.DefaultMin)
	if c.Convert.ProgressEvery < 0 {
		c.Convert.ProgressEvery = 0
	}
	if c.Server.OutboxSize < 1 {
		c.Server.OutboxSize = DefaultConfig().Server.OutboxSize
	}
	if c.CLI.MaxWordsShown < 1 {
		c.CLI.MaxWordsShown = DefaultConfig().CLI.MaxWordsShown
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
