package h2h

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// H2HConfig contains all configurable parameters that influence query
// behaviour, centralized so nothing statistical hides in a magic number
type H2HConfig struct {
	// Filesystem layout
	AssetsPath string `koanf:"assets_path"` // base directory for assets belonging to h2h
	CachePath  string `koanf:"cache_path"`  // where raw downloaded result pages are cached
	DbPath     string `koanf:"db_path"`     // location of the h2h sqlite database
	LogPath    string `koanf:"log_path"`    // log file used when file output is selected

	// Ingestion
	ResultsURL string `koanf:"results_url"` // page holding the completed-results table

	// Query defaults
	HeadToHeadCount int `koanf:"head_to_head_count"` // default "most recent N" for head-to-head queries
	TopMatchupCount int `koanf:"top_matchup_count"`  // default group count for matchup summaries

	// Binomial model
	// When false the probability mass function accepts the fractional
	// trial count via the gamma-function extension; when true the trial
	// count is rounded to the nearest integer first
	RoundTrials bool `koanf:"round_trials"`
}

// DefaultConfig returns the configuration with all standard values
func DefaultConfig() *H2HConfig {
	assetsPath := defaultAssetsPath()
	return &H2HConfig{
		AssetsPath:      assetsPath,
		CachePath:       assetsPath + "cache/",
		DbPath:          assetsPath + "h2h.db",
		LogPath:         "/tmp/h2h.log",
		ResultsURL:      "",
		HeadToHeadCount: 5,
		TopMatchupCount: 5,
		RoundTrials:     false,
	}
}

func defaultAssetsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.h2h/"
	}
	return home + "/.h2h/"
}

// Global configuration instance
var Config *H2HConfig

func init() {
	Config = DefaultConfig()
}

// UpdateConfig replaces the global configuration after validating it
func UpdateConfig(newConfig *H2HConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// LoadConfig builds a config by layering defaults, an optional YAML file,
// and environment variables.
// Order of precedence (low -> high):
//  1. defaults (DefaultConfig)
//  2. file (YAML) if H2H_CONFIG is set
//  3. env (prefix H2H_), e.g. H2H_RESULTS_URL, H2H_HEAD_TO_HEAD_COUNT
func LoadConfig() (*H2HConfig, error) {
	cfg := *DefaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("H2H_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// H2H_HEAD_TO_HEAD_COUNT -> head_to_head_count, matching the koanf tags
	envProvider := env.Provider("H2H_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "h2h_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig ensures all configuration values are within usable ranges
func ValidateConfig(config *H2HConfig) error {
	if config.HeadToHeadCount < 0 {
		return fmt.Errorf("HeadToHeadCount must not be negative, got: %d", config.HeadToHeadCount)
	}
	if config.TopMatchupCount < 0 {
		return fmt.Errorf("TopMatchupCount must not be negative, got: %d", config.TopMatchupCount)
	}
	if config.DbPath == "" {
		return fmt.Errorf("DbPath must not be empty")
	}
	return nil
}
