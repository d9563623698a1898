// Package config loads settings from the environment and connects to the
// storage backends.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Supported STORE_BACKEND values.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	GoEnv       string `envconfig:"GO_ENV" default:"development"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`

	// Where the issue collection is persisted
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`

	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"mydb"`

	RedisAddress   string `envconfig:"REDIS_ADDRESS"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"fixit"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	// Report rate limiting, only active when Redis is configured
	IssueLimitQueue string `envconfig:"REDIS_QUEUE_FOR_ISSUE_LIMIT" default:"issue-limit"`
	IssueDailyLimit int    `envconfig:"ISSUE_REPORT_DAILY_LIMIT" default:"10"`

	CORSOrigins     string `envconfig:"CORS_ORIGINS" default:"*"`
	SessionUserName string `envconfig:"SESSION_USER_NAME"`
}

// Load reads the environment into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddress == "" {
			return fmt.Errorf("STORE_BACKEND=redis requires REDIS_ADDRESS")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("STORE_BACKEND=mongo requires MONGODB_URI")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.IssueDailyLimit <= 0 {
		return fmt.Errorf("ISSUE_REPORT_DAILY_LIMIT must be > 0")
	}
	return nil
}

// RateLimitEnabled reports whether report rate limiting can run.
func (c *Config) RateLimitEnabled() bool {
	return c.RedisAddress != ""
}

// Origins splits CORS_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}
