/*
Package config manages the TOML config for typr.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/typr/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Prediction PredictionConfig `toml:"prediction"`
	Dict       DictConfig       `toml:"dict"`
	Server     ServerConfig     `toml:"server"`
	CLI        CliConfig        `toml:"cli"`
}

// PredictionConfig drives the typing session.
type PredictionConfig struct {
	ShowSuggestions         bool   `toml:"show_suggestions"`
	AutoComplete            bool   `toml:"auto_complete"`
	AutoSpace               bool   `toml:"auto_space"`
	AllowRestart            bool   `toml:"allow_restart"`
	DoubleSpaceToPeriod     bool   `toml:"double_space_to_period"`
	SwapPunctuationAndSpace bool   `toml:"swap_punctuation_and_space"`
	MultiTapTimeoutMs       int    `toml:"multi_tap_timeout_ms"`
	SelectionExpectMs       int    `toml:"selection_expect_ms"`
	SuggestionsDelayMs      int    `toml:"suggestions_delay_ms"`
	RestartDelayMs          int    `toml:"restart_delay_ms"`
	SentenceSeparators      string `toml:"sentence_separators"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	MaxWords         int    `toml:"max_words"`
	ChunkSize        int    `toml:"chunk_size"`
	MinFreqThreshold int    `toml:"min_frequency_threshold"`
	MaxSuggestions   int    `toml:"max_suggestions"`
	UserDictPath     string `toml:"user_dict_path"`
	MinLearnCount    int    `toml:"min_learn_count"`
	MinPickCount     int    `toml:"min_pick_count"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxEvents    int  `toml:"max_events"`
	EnableFilter bool `toml:"enable_filter"`
	ManualFlush  bool `toml:"manual_flush"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	ShowEditor   bool `toml:"show_editor"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prediction: PredictionConfig{
			ShowSuggestions:         true,
			AutoComplete:            true,
			AutoSpace:               true,
			AllowRestart:            true,
			DoubleSpaceToPeriod:     true,
			SwapPunctuationAndSpace: true,
			MultiTapTimeoutMs:       700,
			SelectionExpectMs:       1500,
			SuggestionsDelayMs:      80,
			RestartDelayMs:          160,
			SentenceSeparators:      ".,!?)]:;",
		},
		Dict: DictConfig{
			MaxWords:         50000,
			ChunkSize:        10000,
			MinFreqThreshold: 20,
			MaxSuggestions:   12,
			UserDictPath:     "",
			MinLearnCount:    3,
			MinPickCount:     1,
		},
		Server: ServerConfig{
			MaxEvents:    0,
			EnableFilter: true,
			ManualFlush:  false,
		},
		CLI: CliConfig{
			DefaultLimit: 5,
			ShowEditor:   true,
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

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every section that still decodes and falls back to
// defaults for the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "prediction"); ok {
		extractPredictionConfig(section, &config.Prediction)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractPredictionConfig(data map[string]any, p *PredictionConfig) {
	bools := map[string]*bool{
		"show_suggestions":           &p.ShowSuggestions,
		"auto_complete":              &p.AutoComplete,
		"auto_space":                 &p.AutoSpace,
		"allow_restart":              &p.AllowRestart,
		"double_space_to_period":     &p.DoubleSpaceToPeriod,
		"swap_punctuation_and_space": &p.SwapPunctuationAndSpace,
	}
	for key, dst := range bools {
		if val, ok := utils.ExtractBool(data, key); ok {
			*dst = val
		}
	}
	ints := map[string]*int{
		"multi_tap_timeout_ms": &p.MultiTapTimeoutMs,
		"selection_expect_ms":  &p.SelectionExpectMs,
		"suggestions_delay_ms": &p.SuggestionsDelayMs,
		"restart_delay_ms":     &p.RestartDelayMs,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
	if val, ok := utils.ExtractString(data, "sentence_separators"); ok {
		p.SentenceSeparators = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
	if val, ok := utils.ExtractInt64(data, "min_frequency_threshold"); ok {
		dict.MinFreqThreshold = val
	}
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		dict.MaxSuggestions = val
	}
	if val, ok := utils.ExtractString(data, "user_dict_path"); ok {
		dict.UserDictPath = val
	}
	if val, ok := utils.ExtractInt64(data, "min_learn_count"); ok {
		dict.MinLearnCount = val
	}
	if val, ok := utils.ExtractInt64(data, "min_pick_count"); ok {
		dict.MinPickCount = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_events"); ok {
		server.MaxEvents = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
	if val, ok := utils.ExtractBool(data, "manual_flush"); ok {
		server.ManualFlush = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "show_editor"); ok {
		cli.ShowEditor = val
	}
}

// ResetConfig overwrites configPath with the defaults.
func ResetConfig(configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
