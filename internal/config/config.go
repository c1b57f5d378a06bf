// Package config loads process configuration from config.yaml plus
// RESONATE_-prefixed environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration tree for the resonate core process.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Qdrant    QdrantConfig    `mapstructure:"qdrant"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheTTLConfig  `mapstructure:"cache_ttl"`
}

type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type QdrantConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	CollectionName string `mapstructure:"collection_name"`
	VectorSize     uint64 `mapstructure:"vector_size"`
	UseTLS         bool   `mapstructure:"use_tls"`
	APIKey         string `mapstructure:"api_key"`
}

type OpenAIConfig struct {
	APIKey          string `mapstructure:"api_key"`
	BaseURL         string `mapstructure:"base_url"`
	EmbeddingModel  string `mapstructure:"embedding_model"`
	CompletionModel string `mapstructure:"completion_model"`
	EmbeddingDims   int    `mapstructure:"embedding_dims"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type SchedulerConfig struct {
	RedisAddr        string `mapstructure:"redis_addr"`
	DailyRebuildCron string `mapstructure:"daily_rebuild_cron"`
	CHMBatchCron     string `mapstructure:"chm_batch_cron"`
}

type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxCalls      int `mapstructure:"max_calls"`
}

type CacheTTLConfig struct {
	ResonanceProfile time.Duration `mapstructure:"resonance_profile"`
	FeedResults      time.Duration `mapstructure:"feed_results"`
	ERSScore         time.Duration `mapstructure:"ers_score"`
}

// Load reads configuration from path (if non-empty) and environment
// overrides, and applies the defaults documented in spec.md §6.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("RESONATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("qdrant.host", "localhost")
	v.SetDefault("qdrant.port", 6334)
	v.SetDefault("qdrant.collection_name", "resonance_vectors")
	v.SetDefault("qdrant.vector_size", 1536)
	v.SetDefault("openai.embedding_model", "text-embedding-3-large")
	v.SetDefault("openai.embedding_dims", 1536)
	v.SetDefault("openai.completion_model", "gpt-5-mini")
	v.SetDefault("scheduler.daily_rebuild_cron", "0 3 * * *")
	v.SetDefault("scheduler.chm_batch_cron", "0 */4 * * *")
	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("rate_limit.max_calls", 3000)
	v.SetDefault("cache_ttl.resonance_profile", 24*time.Hour)
	v.SetDefault("cache_ttl.feed_results", 3*time.Minute)
	v.SetDefault("cache_ttl.ers_score", time.Hour)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
}
