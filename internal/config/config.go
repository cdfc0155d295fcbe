// Package config loads the server configuration from defaults, an
// optional config file and ANALYSIS_SUPPORT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/HendryAvila/analysis-support/internal/journal"
	"github.com/HendryAvila/analysis-support/internal/output"
)

// EnvPrefix prefixes every environment override, e.g. ANALYSIS_SUPPORT_LOG_LEVEL.
const EnvPrefix = "ANALYSIS_SUPPORT"

// Config is the complete server configuration.
type Config struct {
	DataDir string        `json:"data_dir" mapstructure:"data_dir"`
	Journal JournalConfig `json:"journal" mapstructure:"journal"`
	Log     LogConfig     `json:"log" mapstructure:"log"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
}

// JournalConfig controls the analysis journal.
type JournalConfig struct {
	Enabled          bool `json:"enabled" mapstructure:"enabled"`
	MaxEntryLength   int  `json:"max_entry_length" mapstructure:"max_entry_length"`
	MaxSearchResults int  `json:"max_search_results" mapstructure:"max_search_results"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// OutputConfig controls how tool results are encoded.
type OutputConfig struct {
	Format string `json:"format" mapstructure:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	jc := journal.DefaultConfig()
	return &Config{
		DataDir: jc.DataDir,
		Journal: JournalConfig{
			Enabled:          true,
			MaxEntryLength:   jc.MaxEntryLength,
			MaxSearchResults: jc.MaxSearchResults,
		},
		Log:    LogConfig{Level: "info", Format: "console"},
		Output: OutputConfig{Format: string(output.FormatJSON)},
	}
}

// Load builds the configuration. configFile may be empty, in which case
// <data_dir>/config.yaml is used when it exists.
func Load(configFile string) (*Config, error) {
	def := Default()
	v := viper.New()

	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("journal.enabled", def.Journal.Enabled)
	v.SetDefault("journal.max_entry_length", def.Journal.MaxEntryLength)
	v.SetDefault("journal.max_search_results", def.Journal.MaxSearchResults)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("output.format", def.Output.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("data_dir"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir must not be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q (want debug, info, warn or error)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log.format %q (want json or console)", c.Log.Format)
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Journal.MaxEntryLength <= 0 || c.Journal.MaxSearchResults <= 0 {
		return errors.New("config: journal limits must be positive")
	}
	return nil
}

// JournalStoreConfig converts the journal section for journal.New.
func (c *Config) JournalStoreConfig() journal.Config {
	return journal.Config{
		DataDir:          c.DataDir,
		MaxEntryLength:   c.Journal.MaxEntryLength,
		MaxSearchResults: c.Journal.MaxSearchResults,
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
