package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,         default=8080"`
	Env        string        `env:"ENV,          default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	LogLevel   string        `env:"LOG_LEVEL,    default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL,  default=24h"`
	// CacheTTL is the staleness window of the in-process admin identity cache.
	CacheTTL time.Duration `env:"IDENTITY_CACHE_TTL, default=5m"`
	// FanoutWorkers bounds concurrent notice sends during fan-out.
	FanoutWorkers int `env:"FANOUT_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
	Mail  MailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=church_content"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MailConfig struct {
	// Provider selects the transport: "mock" logs instead of sending.
	Provider      string `env:"MAIL_PROVIDER,       default=mock"`
	BrevoAPIKey   string `env:"BREVO_API_KEY"`
	FromAddr      string `env:"MAIL_FROM_ADDR,      default=news@gracechapel.example"`
	FromName      string `env:"MAIL_FROM_NAME,      default=Grace Chapel"`
	SubjectPrefix string `env:"MAIL_SUBJECT_PREFIX, default=[church-news]"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
