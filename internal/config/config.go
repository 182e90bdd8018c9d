package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string               `mapstructure:"env"`                 // current application environment (local, dev, production etc)
	TelegramAPIToken  string               `mapstructure:"-"`                   // Telegram API token loaded from environment
	ContentJSONPath   string               `mapstructure:"content_json_path"`   // path to JSON file with hand-authored lessons
	FallbacksJSONPath string               `mapstructure:"fallbacks_json_path"` // path to JSON file with offline missions and scenarios
	HTTP              HTTP                 `mapstructure:"http"`                // web API server section
	DB                DB                   `mapstructure:"database"`            // database configuration section
	Redis             Redis                `mapstructure:"redis"`               // optional session store
	LLM               LLM                  `mapstructure:"llm"`                 // language model providers
	Session           Session              `mapstructure:"session"`             // web session lifetime
	Sources           Sources              `mapstructure:"sources"`             // official source fetching
	RateLimits        map[string]RateLimit `mapstructure:"rate_limits"`         // per-bucket request limits
}

// HTTP contains web server parameters.
type HTTP struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (h HTTP) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Redis is enabled only when URL is set.
type Redis struct {
	URL string `mapstructure:"-"`
}

// Enabled reports whether sessions should be stored in Redis.
func (r Redis) Enabled() bool {
	return r.URL != ""
}

// LLM groups provider settings. Keys always come from the environment.
type LLM struct {
	Timeout time.Duration `mapstructure:"timeout"`
	OpenAI  Provider      `mapstructure:"openai"`
	Groq    Provider      `mapstructure:"groq"`
	Gemini  Provider      `mapstructure:"gemini"`
}

// Provider describes one language model endpoint.
type Provider struct {
	APIKey  string `mapstructure:"-"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Session contains web session parameters.
type Session struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec for removing expired sessions
}

// Sources restricts where official lesson texts can be fetched from.
type Sources struct {
	AllowedDomains []string      `mapstructure:"allowed_domains"`
	MaxURLs        int           `mapstructure:"max_urls"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MinTextLength  int           `mapstructure:"min_text_length"`
}

// RateLimit is a sliding window limit.
type RateLimit struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// TelegramToken returns the bot token if it is configured.
func (c *Config) TelegramToken() (string, error) {
	if c.TelegramAPIToken == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return c.TelegramAPIToken, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Values from .env never override the real environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_bot_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("groq_api_key", "GROQ_API_KEY")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("http.host", "HOST")
	_ = v.BindEnv("http.port", "PORT")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Secrets.
	cfg.TelegramAPIToken = strings.TrimSpace(v.GetString("telegram_bot_token"))
	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")
	cfg.LLM.OpenAI.APIKey = strings.TrimSpace(v.GetString("openai_api_key"))
	cfg.LLM.Groq.APIKey = strings.TrimSpace(v.GetString("groq_api_key"))
	cfg.LLM.Gemini.APIKey = strings.TrimSpace(v.GetString("gemini_api_key"))

	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("content_json_path", "assets/data/content.json")
	v.SetDefault("fallbacks_json_path", "assets/data/fallbacks.json")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8000)
	v.SetDefault("http.allowed_origins", []string{"*"})
	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "90s")
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")

	v.SetDefault("llm.timeout", "60s")
	v.SetDefault("llm.openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.groq.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("llm.gemini.model", "gemini-1.5-flash")

	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.sweep_schedule", "*/10 * * * *")

	v.SetDefault("sources.allowed_domains", []string{
		"e-history.kz", "akorda.kz", "gov.kz", "museum.kz", "nationalmuseum.kz", "edu.kz",
	})
	v.SetDefault("sources.max_urls", 3)
	v.SetDefault("sources.timeout", "10s")
	v.SetDefault("sources.min_text_length", 200)

	for bucket, limit := range DefaultRateLimits {
		v.SetDefault("rate_limits."+bucket+".limit", limit.Limit)
		v.SetDefault("rate_limits."+bucket+".window", limit.Window.String())
	}
}

// Rate limit bucket names.
const (
	BucketLogin               = "login"
	BucketRegister            = "register"
	BucketContentGenerate     = "content_generate"
	BucketTranslate           = "translate"
	BucketScenarioGeneration  = "scenario_generation"
	BucketPersonalizedMission = "personalized_mission"
	BucketAnswerCheck         = "answer_check"
)

// DefaultRateLimits are applied when the config file does not override them.
var DefaultRateLimits = map[string]RateLimit{
	BucketLogin:               {Limit: 30, Window: time.Minute},
	BucketRegister:            {Limit: 10, Window: time.Minute},
	BucketContentGenerate:     {Limit: 20, Window: time.Minute},
	BucketTranslate:           {Limit: 30, Window: time.Minute},
	BucketScenarioGeneration:  {Limit: 30, Window: time.Minute},
	BucketPersonalizedMission: {Limit: 10, Window: time.Minute},
	BucketAnswerCheck:         {Limit: 40, Window: time.Minute},
}
