// Package config loads runtime settings from an optional config file and
// SHOWRUNNER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/showrunner/internal/blob"
	"github.com/alexanderramin/showrunner/internal/llm"
	"github.com/spf13/viper"
)

const envPrefix = "SHOWRUNNER"

type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type StoreConfig struct {
	Driver   string         `mapstructure:"driver"`
	Path     string         `mapstructure:"path"`
	Dir      string         `mapstructure:"dir"`
	S3       S3Config       `mapstructure:"s3"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Prefix          string `mapstructure:"prefix"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	Endpoint string `mapstructure:"endpoint"`
	LogCalls bool   `mapstructure:"log_calls"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"` // debug, info, warn, error
	Development bool   `mapstructure:"development"`
}

// Load reads showrunner.yaml from the working directory or ~/.showrunner
// when present, then applies environment overrides.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("showrunner")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := dataDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return decode(v)
}

// LoadWithPath reads an explicit config file. The format follows the file
// extension (.yaml, .json, .env, ...).
func LoadWithPath(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	// The bare key names are what the hosted tooling exports.
	_ = v.BindEnv("llm.api_key", envPrefix+"_LLM_API_KEY", "GEMINI_API_KEY", "API_KEY")
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.driver", string(blob.DriverSQLite))
	v.SetDefault("store.path", filepath.Join(dataDir(), "showrunner.db"))
	v.SetDefault("store.dir", filepath.Join(dataDir(), "data"))
	v.SetDefault("store.s3.bucket", "")
	v.SetDefault("store.s3.region", "us-east-1")
	v.SetDefault("store.s3.endpoint", "")
	v.SetDefault("store.s3.path_style", false)
	v.SetDefault("store.s3.access_key_id", "")
	v.SetDefault("store.s3.secret_access_key", "")
	v.SetDefault("store.s3.prefix", "showrunner/")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.prefix", "showrunner:")
	v.SetDefault("store.postgres.dsn", "")

	v.SetDefault("llm.provider", llm.ProviderGemini)
	v.SetDefault("llm.model", llm.DefaultConfig().Model)
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.log_calls", false)

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if !blob.Driver(c.Store.Driver).Valid() {
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch blob.Driver(c.Store.Driver) {
	case blob.DriverS3:
		if c.Store.S3.Bucket == "" {
			return errors.New("store.s3.bucket is required for the s3 driver")
		}
	case blob.DriverPostgres:
		if c.Store.Postgres.DSN == "" {
			return errors.New("store.postgres.dsn is required for the postgres driver")
		}
	}
	switch c.LLM.Provider {
	case llm.ProviderGemini, llm.ProviderOllama:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// BlobConfig converts the store section for blob.Open.
func (c *Config) BlobConfig() blob.Config {
	s := c.Store
	return blob.Config{
		Driver: blob.Driver(s.Driver),
		Path:   s.Path,
		Dir:    s.Dir,
		S3: blob.S3Config{
			Bucket:          s.S3.Bucket,
			Region:          s.S3.Region,
			Endpoint:        s.S3.Endpoint,
			PathStyle:       s.S3.PathStyle,
			AccessKeyID:     s.S3.AccessKeyID,
			SecretAccessKey: s.S3.SecretAccessKey,
			Prefix:          s.S3.Prefix,
		},
		Redis: blob.RedisConfig{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Prefix:   s.Redis.Prefix,
		},
		Postgres: blob.PostgresConfig{DSN: s.Postgres.DSN},
	}
}

// LLMClientConfig converts the llm section, keeping the per-task defaults.
func (c *Config) LLMClientConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.APIKey = c.LLM.APIKey
	out.Endpoint = c.LLM.Endpoint
	out.LogCalls = c.LLM.LogCalls
	if c.LLM.Model != "" {
		out.Model = c.LLM.Model
	}
	return out
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".showrunner"
	}
	return filepath.Join(home, ".showrunner")
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
