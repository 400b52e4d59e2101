package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration loaded from environment variables
// (prefix E6_) and an optional .env file. The library itself takes an
// explicit e621.Config; this only exists for the command-line front end.
type Config struct {
	Username     string `mapstructure:"username"`
	APIKey       string `mapstructure:"api_key"`
	UserAgent    string `mapstructure:"user_agent"`
	Host         string `mapstructure:"host"`
	ForceHost    bool   `mapstructure:"force_host"`
	FixURLs      bool   `mapstructure:"fix_urls"`
	BlacklistRaw string `mapstructure:"blacklist"`
	LogLevel     string `mapstructure:"log_level"`

	Blacklist []string `mapstructure:"-"`
}

// Load reads configuration from environment variables, with .env support.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvPrefix("e6")

	v.SetDefault("username", "")
	v.SetDefault("api_key", "")
	v.SetDefault("user_agent", "")
	v.SetDefault("host", "")
	v.SetDefault("force_host", false)
	v.SetDefault("fix_urls", true)
	v.SetDefault("blacklist", "")
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Credentials only work as a pair; half a pair is a misconfiguration
	// rather than anonymous access.
	if (cfg.Username == "") != (cfg.APIKey == "") {
		return nil, fmt.Errorf("E6_USERNAME and E6_API_KEY must be set together")
	}

	cfg.Blacklist = strings.Fields(cfg.BlacklistRaw)

	return &cfg, nil
}
