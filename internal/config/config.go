package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
	BackendMinIO  = "minio"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Log       LogConfig

	// CORSAllowOrigins is "*" or a comma-separated list of origins.
	CORSAllowOrigins string
	// RegistryFile optionally points at a YAML client registry.
	RegistryFile string
}

type ServerConfig struct {
	Port          string
	ValidatorPort string
	Host          string
	Environment   string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
}

type StorageConfig struct {
	Backend string
	// Timeout bounds every storage round trip.
	Timeout  time.Duration
	CacheTTL time.Duration
}

type MongoDBConfig struct {
	URI           string
	Database      string
	Timeout       time.Duration
	UniqueModelID bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type JWTConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

type LogConfig struct {
	Level     string
	File      string
	MaxSizeMB int
}

// LoadConfig loads configuration from environment variables and an optional .env file.
func LoadConfig() (*Config, error) {
	cfg := load()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadValidatorConfig is LoadConfig for the standalone validator, which has no storage.
func LoadValidatorConfig() (*Config, error) {
	cfg := load()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("VALIDATOR_PORT", "3001")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("STORAGE_BACKEND", BackendMongo)
	v.SetDefault("STORAGE_TIMEOUT_SECONDS", 5)
	v.SetDefault("CACHE_TTL_SECONDS", 300)
	v.SetDefault("MONGODB_DATABASE", "modelgate")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("MONGODB_UNIQUE_MODEL_ID", false)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("MINIO_BUCKET", "modelgate")
	v.SetDefault("JWT_TOKEN_TTL_MINUTES", 60)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)

	cfg := &Config{
		Server: ServerConfig{
			Port:          v.GetString("SERVER_PORT"),
			ValidatorPort: v.GetString("VALIDATOR_PORT"),
			Host:          v.GetString("SERVER_HOST"),
			Environment:   v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  30 * time.Second,
		},
		Storage: StorageConfig{
			Backend:  strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
			Timeout:  time.Duration(v.GetInt("STORAGE_TIMEOUT_SECONDS")) * time.Second,
			CacheTTL: time.Duration(v.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:           v.GetString("MONGODB_URI"),
			Database:      v.GetString("MONGODB_DATABASE"),
			Timeout:       time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
			UniqueModelID: v.GetBool("MONGODB_UNIQUE_MODEL_ID"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("JWT_SECRET"),
			TokenTTL: time.Duration(v.GetInt("JWT_TOKEN_TTL_MINUTES")) * time.Minute,
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Log: LogConfig{
			Level:     v.GetString("LOG_LEVEL"),
			File:      v.GetString("LOG_FILE"),
			MaxSizeMB: v.GetInt("LOG_MAX_SIZE_MB"),
		},
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		RegistryFile:     v.GetString("CLIENT_REGISTRY_FILE"),
	}

	return cfg
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("environment variable JWT_SECRET is required")
	}
	if c.JWT.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TOKEN_TTL_MINUTES must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.Timeout <= 0 {
		return fmt.Errorf("STORAGE_TIMEOUT_SECONDS must be positive")
	}
	switch c.Storage.Backend {
	case BackendMongo:
		if c.MongoDB.URI == "" {
			return fmt.Errorf("environment variable MONGODB_URI is required for the %s backend", BackendMongo)
		}
	case BackendMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("environment variable MINIO_ENDPOINT is required for the %s backend", BackendMinIO)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.Storage.Backend)
	}
	return nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.Redis.Host == "" {
		return ""
	}
	return c.Redis.Host + ":" + c.Redis.Port
}

// Addr is the listen address of the gateway.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// ValidatorAddr is the listen address of the standalone validator.
func (c *Config) ValidatorAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.ValidatorPort)
}
