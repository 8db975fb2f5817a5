package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Vocab     VocabConfig     `yaml:"vocab"`
	LLM       LLMConfig       `yaml:"llm"`
	TTS       TTSConfig       `yaml:"tts"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	TxMaxRetries    int           `yaml:"tx_max_retries"     env:"DATABASE_TX_MAX_RETRIES"     env-default:"3"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds bearer-token settings and the owner allow-list.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"lingua-assistant"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"720h"`
	AllowedUsersRaw string        `yaml:"allowed_users"    env:"AUTH_ALLOWED_USERS"    env-required:"true"`
}

// AllowedUsers returns the trimmed, non-empty entries of the allow-list.
func (c AuthConfig) AllowedUsers() []string {
	return splitList(c.AllowedUsersRaw)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client limits for the proxy routes.
type RateLimitConfig struct {
	ChatPerMinute   int           `yaml:"chat_per_minute"  env:"RATE_LIMIT_CHAT_PER_MINUTE" env-default:"20"`
	TTSPerMinute    int           `yaml:"tts_per_minute"   env:"RATE_LIMIT_TTS_PER_MINUTE"  env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP"         env-default:"5m"`
}

// VocabConfig holds daily practice parameters.
type VocabConfig struct {
	DailyCount   int           `yaml:"daily_count"  env:"VOCAB_DAILY_COUNT"  env-default:"8"`
	WeakQuota    int           `yaml:"weak_quota"   env:"VOCAB_WEAK_QUOTA"   env-default:"2"`
	ReviewQuota  int           `yaml:"review_quota" env:"VOCAB_REVIEW_QUOTA" env-default:"2"`
	Cooldown     time.Duration `yaml:"cooldown"     env:"VOCAB_COOLDOWN"     env-default:"20h"`
	LanguagesRaw string        `yaml:"languages"    env:"VOCAB_LANGUAGES"    env-default:"en,es"`
}

// Languages returns the configured catalog language codes, lower-cased.
func (c VocabConfig) Languages() []string {
	langs := splitList(c.LanguagesRaw)
	for i := range langs {
		langs[i] = strings.ToLower(langs[i])
	}
	return langs
}

// LLMConfig holds chat-completion provider settings.
type LLMConfig struct {
	APIKey       string        `yaml:"api_key"       env:"LLM_API_KEY"`
	BaseURL      string        `yaml:"base_url"      env:"LLM_BASE_URL"`
	Model        string        `yaml:"model"         env:"LLM_MODEL"         env-default:"claude-sonnet-4-5"`
	MaxTokens    int           `yaml:"max_tokens"    env:"LLM_MAX_TOKENS"    env-default:"1024"`
	HistoryLimit int           `yaml:"history_limit" env:"LLM_HISTORY_LIMIT" env-default:"20"`
	Timeout      time.Duration `yaml:"timeout"       env:"LLM_TIMEOUT"       env-default:"60s"`
}

// Enabled reports whether the chat proxy has credentials.
func (c LLMConfig) Enabled() bool { return c.APIKey != "" }

// TTSConfig holds text-to-speech provider settings.
type TTSConfig struct {
	APIKey   string        `yaml:"api_key"   env:"TTS_API_KEY"`
	BaseURL  string        `yaml:"base_url"  env:"TTS_BASE_URL"  env-default:"https://api.openai.com"`
	Model    string        `yaml:"model"     env:"TTS_MODEL"     env-default:"tts-1"`
	Voice    string        `yaml:"voice"     env:"TTS_VOICE"     env-default:"alloy"`
	Format   string        `yaml:"format"    env:"TTS_FORMAT"    env-default:"mp3"`
	Timeout  time.Duration `yaml:"timeout"   env:"TTS_TIMEOUT"   env-default:"30s"`
	MaxChars int           `yaml:"max_chars" env:"TTS_MAX_CHARS" env-default:"1000"`
}

// Enabled reports whether the speech proxy has credentials.
func (c TTSConfig) Enabled() bool { return c.APIKey != "" }

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
