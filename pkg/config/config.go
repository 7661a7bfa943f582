package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	JWT      JWTConfig
	AI       AIConfig
	Pipeline PipelineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration. An empty Host disables Redis and
// the in-memory cache is used instead.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
}

// AIConfig holds summarization provider configuration. Resolved once here at
// the boundary; the core pipeline never reads the environment itself.
type AIConfig struct {
	GroqAPIKey     string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL    string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	GroqModel      string        `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	GeminiAPIKeys  []string      `envconfig:"GEMINI_API_KEYS"`
	GeminiModel    string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	RequestTimeout time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"30s"`
	MaxRetries     int           `envconfig:"AI_MAX_RETRIES" default:"3"`
}

// PipelineConfig holds the knobs of the minutes pipeline. It is validated
// once at load time and passed by reference through every component.
type PipelineConfig struct {
	MaxWordsPerChunk    int           `validate:"gt=0"`
	OverlapWords        int           `validate:"gte=0"`
	MinActionConfidence float64       `validate:"gte=0,lte=1"`
	GroupActionsByOwner bool
	OutputFormat        string        `validate:"oneof=markdown html text"`
	MaxConcurrentChunks int           `validate:"gt=0"`
	SummarizeTimeout    time.Duration `validate:"gt=0"`
}

// DefaultPipelineConfig returns the pipeline defaults.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxWordsPerChunk:    800,
		OverlapWords:        50,
		MinActionConfidence: 0.5,
		GroupActionsByOwner: false,
		OutputFormat:        "markdown",
		MaxConcurrentChunks: 4,
		SummarizeTimeout:    45 * time.Second,
	}
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_minutes"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "meeting-minutes"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
		},
		Pipeline: PipelineConfig{
			MaxWordsPerChunk:    getEnvAsInt("PIPELINE_MAX_WORDS_PER_CHUNK", 800),
			OverlapWords:        getEnvAsInt("PIPELINE_OVERLAP_WORDS", 50),
			MinActionConfidence: getEnvAsFloat("PIPELINE_MIN_ACTION_CONFIDENCE", 0.5),
			GroupActionsByOwner: getEnvAsBool("PIPELINE_GROUP_ACTIONS_BY_OWNER", false),
			OutputFormat:        getEnv("PIPELINE_OUTPUT_FORMAT", "markdown"),
			MaxConcurrentChunks: getEnvAsInt("PIPELINE_MAX_CONCURRENT_CHUNKS", 4),
			SummarizeTimeout:    getEnvAsDuration("PIPELINE_SUMMARIZE_TIMEOUT", "45s"),
		},
	}

	// AI provider settings are structured; envconfig handles lists and durations
	if err := envconfig.Process("", &config.AI); err != nil {
		return nil, fmt.Errorf("failed to process AI config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

var validate = validator.New()

// Validate validates the configuration against the PipelineConfig field tags
func (c *Config) Validate() error {
	if err := validate.Struct(&c.Pipeline); err != nil {
		return fmt.Errorf("invalid pipeline config: %w", err)
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
