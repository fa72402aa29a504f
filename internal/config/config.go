package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr         string
		RequireToken bool
	}
	DB struct {
		Driver string
		DSN    string
	}
	LLM struct {
		Provider    string
		Model       string
		BaseURL     string
		APIKey      string
		Endpoint    string
		Timeout     time.Duration
		Temperature float64
		MaxTokens   int
	}
	Templates struct {
		File string
	}
	Classifier struct {
		MarkersFile string
	}
	Log struct {
		File      string
		MaxSizeMB int
	}
}

var drivers = map[string]bool{"sqlite3": true, "mysql": true, "postgres": true}

// Load reads config from environment (PROMPTFORGE_ prefix) and optional promptforge.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PROMPTFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("promptforge")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.dsn", "promptforge.db")
	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("log.max_size_mb", 10)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.RequireToken = v.GetBool("http.require_token")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.LLM.Provider = strings.ToLower(v.GetString("llm.provider"))
	cfg.LLM.Model = v.GetString("llm.model")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.Endpoint = v.GetString("llm.endpoint")
	cfg.LLM.Temperature = v.GetFloat64("llm.temperature")
	cfg.LLM.MaxTokens = v.GetInt("llm.max_tokens")
	cfg.Templates.File = v.GetString("templates.file")
	cfg.Classifier.MarkersFile = v.GetString("classifier.markers_file")
	cfg.Log.File = v.GetString("log.file")
	cfg.Log.MaxSizeMB = v.GetInt("log.max_size_mb")

	timeout, err := time.ParseDuration(v.GetString("llm.timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPTFORGE_LLM_TIMEOUT: %w", err)
	}
	cfg.LLM.Timeout = timeout

	if !drivers[cfg.DB.Driver] {
		return nil, fmt.Errorf("PROMPTFORGE_DB_DRIVER must be one of sqlite3, mysql, postgres (got %q)", cfg.DB.Driver)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("PROMPTFORGE_DB_DSN is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return nil, fmt.Errorf("PROMPTFORGE_LLM_TEMPERATURE must be between 0 and 2 (got %v)", cfg.LLM.Temperature)
	}
	if cfg.LLM.MaxTokens <= 0 {
		return nil, fmt.Errorf("PROMPTFORGE_LLM_MAX_TOKENS must be positive (got %d)", cfg.LLM.MaxTokens)
	}
	if cfg.LLM.Provider == "azure" && cfg.LLM.Endpoint == "" {
		return nil, fmt.Errorf("PROMPTFORGE_LLM_ENDPOINT is required for the azure provider")
	}

	return cfg, nil
}
