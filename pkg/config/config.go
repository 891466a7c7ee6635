package config

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig     `envconfig:"SERVER"`
	NLP        NLPConfig        `envconfig:"NLP"`
	Extraction ExtractionConfig `envconfig:"EXTRACTION"`
	Cache      CacheConfig      `envconfig:"CACHE"`
	Redis      RedisConfig      `envconfig:"REDIS"`
	Log        LogConfig        `envconfig:"LOG"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development" validate:"oneof=development staging production test"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10" validate:"min=1"`
	MaxBodyBytes    string   `envconfig:"MAX_BODY" default:"2M"`
}

// NLPConfig selects and tunes the NER and dependency-parse capabilities
type NLPConfig struct {
	NERProvider    string        `envconfig:"NER_PROVIDER" default:"prose" validate:"oneof=prose remote none"`
	ParserProvider string        `envconfig:"PARSER_PROVIDER" default:"none" validate:"oneof=remote none"`
	BaseURL        string        `envconfig:"BASE_URL" default:"http://localhost:8000" validate:"omitempty,url"`
	APIKey         string        `envconfig:"API_KEY"`
	Timeout        time.Duration `envconfig:"TIMEOUT" default:"10s"`
	MaxRetries     uint64        `envconfig:"MAX_RETRIES" default:"3"`
	MaxConcurrency int           `envconfig:"MAX_CONCURRENCY" default:"4" validate:"min=1"`
	Warmup         bool          `envconfig:"WARMUP" default:"true"`
}

// ExtractionConfig holds pipeline settings
type ExtractionConfig struct {
	Strategy        string `envconfig:"STRATEGY" default:"auto" validate:"oneof=auto keyword syntactic"`
	Timezone        string `envconfig:"TIMEZONE" default:"UTC"`
	RosterThreshold int    `envconfig:"ROSTER_THRESHOLD" default:"65" validate:"min=0,max=100"`
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Driver string        `envconfig:"DRIVER" default:"memory" validate:"oneof=memory redis none"`
	TTL    time.Duration `envconfig:"TTL" default:"15m"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	return FromEnv()
}

// FromEnv decodes and validates configuration from the process environment only
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(c.Extraction.Timezone); err != nil {
		return fmt.Errorf("invalid EXTRACTION_TIMEZONE %q: %w", c.Extraction.Timezone, err)
	}
	return nil
}

// Location returns the time zone deadlines are resolved in
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Extraction.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
