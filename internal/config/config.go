package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	APIKey         string   `mapstructure:"api_key" yaml:"api_key"`
	Model          string   `mapstructure:"model" yaml:"model"`
	MaxPoints      int      `mapstructure:"max_points" yaml:"max_points"`
	ExcludedKeys   []string `mapstructure:"excluded_keys" yaml:"excluded_keys"`
	AccessPassword string   `mapstructure:"access_password" yaml:"access_password"`
	HTTPTimeoutSec int      `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`

	// Dashboard server
	ListenAddr    string `mapstructure:"listen_addr" yaml:"listen_addr"`
	RateLimit     int    `mapstructure:"rate_limit" yaml:"rate_limit"`
	SessionTTLMin int    `mapstructure:"session_ttl_min" yaml:"session_ttl_min"`
	MaxUploadMB   int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.csvdash/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvdash")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CSVDASH")
	v.AutomaticEnv()

	// Defaults. The empty defaults for api_key and access_password matter:
	// AutomaticEnv only resolves keys viper already knows about, so without
	// them CSVDASH_API_KEY and CSVDASH_ACCESS_PASSWORD set purely via the
	// environment would never reach Unmarshal.
	v.SetDefault("api_key", "")
	v.SetDefault("access_password", "")
	v.SetDefault("model", "openai/gpt-4o-mini")
	v.SetDefault("max_points", 100)
	v.SetDefault("excluded_keys", []string{"id", "user_id"})
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("listen_addr", "127.0.0.1:8787")
	v.SetDefault("rate_limit", 0)
	v.SetDefault("session_ttl_min", 30)
	v.SetDefault("max_upload_mb", 16)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".csvdash")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
