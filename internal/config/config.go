package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Data directory for the SQLite databases and knowledge corpus
	DataDir      string
	KnowledgeDir string

	// LLM providers, tried in order: Sarvam, OpenAI, Anthropic
	SarvamAPIKey    string
	SarvamModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string

	// External services
	SerpAPIKey     string
	SerpBaseURL    string
	GovAPIKey      string
	GovBaseURL     string
	DocIntelAPIKey string
	DocIntelURL    string

	// Rate limiting (requests per second per user, with burst)
	RateLimit      float64
	RateLimitBurst int

	// Object storage: "none", "s3" or "minio"
	StorageProvider string
	S3              S3Config
	MinIO           MinIOConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// MinIOConfig holds MinIO configuration
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		CORSOrigins: strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:         getEnv("ENV", "development"),

		DataDir:      dataDir,
		KnowledgeDir: getEnv("KNOWLEDGE_DIR", filepath.Join(dataDir, "knowledge")),

		SarvamAPIKey:    getEnv("SARVAM_API_KEY", ""),
		SarvamModel:     getEnv("SARVAM_MODEL", "sarvam-m"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", ""),

		SerpAPIKey:     getEnv("SERP_API_KEY", ""),
		SerpBaseURL:    getEnv("SERP_BASE_URL", ""),
		GovAPIKey:      getEnv("GOV_MSME_API_KEY", ""),
		GovBaseURL:     getEnv("GOV_MSME_BASE_URL", ""),
		DocIntelAPIKey: getEnv("DOCINTEL_API_KEY", ""),
		DocIntelURL:    getEnv("DOCINTEL_BASE_URL", ""),

		RateLimit:      getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),

		StorageProvider: getEnv("STORAGE_PROVIDER", "none"),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "ap-south-1"),
			Bucket:          getEnv("S3_BUCKET", "arthamitra-receipts"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			BucketName:      getEnv("MINIO_BUCKET", "arthamitra-receipts"),
			UseSSL:          getEnvBool("MINIO_USE_SSL", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageProvider {
	case "none", "s3", "minio":
	default:
		return fmt.Errorf("STORAGE_PROVIDER must be one of none, s3, minio")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	return nil
}

// LedgerDBPath is the SQLite file for transactions and trends.
func (c *Config) LedgerDBPath() string { return filepath.Join(c.DataDir, "ledger.db") }

// PlanningDBPath is the SQLite file for budgets, goals, payments and billing.
func (c *Config) PlanningDBPath() string { return filepath.Join(c.DataDir, "planning.db") }

// DocsDBPath is the SQLite file for analyses, milestones and DPRs.
func (c *Config) DocsDBPath() string { return filepath.Join(c.DataDir, "docs.db") }

// KnowledgeFTSPath is the SQLite file backing full-text search.
func (c *Config) KnowledgeFTSPath() string { return filepath.Join(c.DataDir, "knowledge_fts.db") }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
