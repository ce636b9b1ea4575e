package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Admin     AdminConfig
	Redis     RedisConfig
	AI        AIConfig
	SportsDB  SportsDBConfig  `mapstructure:"sportsdb"`
	Wikipedia WikipediaConfig `mapstructure:"wikipedia"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

// AdminConfig identifies the single admin account allowed to complete
// quizzes and run validations. PasswordHash is a bcrypt hash.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AIConfig configures the Claude answer adapter.
type AIConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// SportsDBConfig configures the TheSportsDB adapter.
type SportsDBConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// WikipediaConfig configures the Wikipedia adapter.
type WikipediaConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// MatchingConfig exposes the fuzzy-matching policy constants so they can be
// tuned without touching matching code. Zero values fall back to defaults.
type MatchingConfig struct {
	FuzzyCap                float64 `mapstructure:"fuzzy_cap"`
	MinSimilarity           float64 `mapstructure:"min_similarity"`
	MismatchPenalty         float64 `mapstructure:"mismatch_penalty"`
	SportsMatchThreshold    float64 `mapstructure:"sports_match_threshold"`
	SportsFuzzyScale        float64 `mapstructure:"sports_fuzzy_scale"`
	WikipediaMatchThreshold float64 `mapstructure:"wikipedia_match_threshold"`
	AIMismatchCap           float64 `mapstructure:"ai_mismatch_cap"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PREDICT_QUIZ")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT / admin
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("admin.username", "ADMIN_USERNAME")
	viper.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// External data sources
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")
	viper.BindEnv("sportsdb.base_url", "SPORTSDB_BASE_URL")
	viper.BindEnv("sportsdb.api_key", "SPORTSDB_API_KEY")
	viper.BindEnv("wikipedia.base_url", "WIKIPEDIA_BASE_URL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.AI.Model == "" {
		cfg.AI.Model = "claude-sonnet-4-20250514"
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 4096
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://api.anthropic.com"
	}
	if cfg.SportsDB.BaseURL == "" {
		cfg.SportsDB.BaseURL = "https://www.thesportsdb.com"
	}
	if cfg.SportsDB.APIKey == "" {
		cfg.SportsDB.APIKey = "3" // TheSportsDB free tier key
	}
	if cfg.Wikipedia.BaseURL == "" {
		cfg.Wikipedia.BaseURL = "https://en.wikipedia.org"
	}

	return &cfg, nil
}
