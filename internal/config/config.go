package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime settings. Every value has a sensible default so
// an empty config file (or none at all) still works.
type Config struct {
	DBPath         string `yaml:"db_path" mapstructure:"db_path"`
	KeyFile        string `yaml:"key_file" mapstructure:"key_file"`
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	ChatModel      string `yaml:"chat_model" mapstructure:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model" mapstructure:"embedding_model"`
	RequestTimeout int    `yaml:"request_timeout_seconds" mapstructure:"request_timeout_seconds"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DBPath:         filepath.Join(home, ".sytobook", "sytobook.db"),
		KeyFile:        "key.txt",
		BaseURL:        "https://api.openai.com",
		ChatModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		RequestTimeout: 10,
	}
}

// Load reads the config file (if any) and applies SYTOBOOK_* env
// overrides on top of the defaults.
func Load() (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "sytobook"))
	}
	home, _ := os.UserHomeDir()
	v.AddConfigPath(filepath.Join(home, ".config", "sytobook"))

	// Registering every key as a default makes it visible to viper, so
	// AutomaticEnv overrides apply even without a config file.
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("key_file", def.KeyFile)
	v.SetDefault("base_url", def.BaseURL)
	v.SetDefault("chat_model", def.ChatModel)
	v.SetDefault("embedding_model", def.EmbeddingModel)
	v.SetDefault("request_timeout_seconds", def.RequestTimeout)

	v.SetEnvPrefix("SYTOBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file; defaults and env apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey resolves the backend credential: OPENAI_API_KEY wins, then the
// contents of the key file. Empty means the backend is unavailable,
// which is a configuration state rather than an error.
func (c *Config) APIKey() string {
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		return key
	}
	data, err := os.ReadFile(c.KeyFile)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Timeout returns the bounded duration for backend calls.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}
