package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	LogLevel        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	DefaultModel    string
	BasicTimeout    time.Duration
	AdvancedTimeout time.Duration
	DatabaseURL     string
	NatsURL         string
	NatsToken       string
	RedisURL        string
	CacheTTL        time.Duration
	APIToken        string
	MetricsEnabled  bool
}

func Load() Config {
	return Config{
		Port:            envInt("CONCORD_PORT", 3001),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		OpenAIAPIKey:    envStr("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   envStr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		DefaultModel:    envStr("CONCORD_DEFAULT_MODEL", "gpt-4o-mini"),
		BasicTimeout:    envDuration("CONCORD_BASIC_TIMEOUT", 30*time.Second),
		AdvancedTimeout: envDuration("CONCORD_ADVANCED_TIMEOUT", 60*time.Second),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		NatsURL:         envStr("NATS_URL", ""),
		NatsToken:       envStr("NATS_TOKEN", ""),
		RedisURL:        envStr("REDIS_URL", ""),
		CacheTTL:        envDuration("CONCORD_CACHE_TTL", time.Hour),
		APIToken:        envStr("CONCORD_API_TOKEN", ""),
		MetricsEnabled:  envBool("CONCORD_METRICS", true),
	}
}

// LoadDotEnv loads variables from the given files (".env" when none are
// named) without overriding the process environment. Missing files are
// not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
