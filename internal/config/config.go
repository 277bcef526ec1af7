package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// OpenRouterConfig holds the completion gateway defaults. The API key and
// model can be overridden per request or per user; these are the server-side
// fallbacks.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config holds application configuration values loaded from environment
// variables. It is passed explicitly into the services that need it; nothing
// reads provider credentials from ambient storage at request time.
type Config struct {
	HTTPPort        string
	DatabaseURL     string // empty means run against the in-memory store
	JWTSecret       string
	TokenExpiration time.Duration
	EncryptionKey   []byte // Raw key bytes (32 for AES-256)
	OpenRouter      OpenRouterConfig
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.")
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "default-super-secret-key") // CHANGE THIS IN PRODUCTION!
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Println("Warning: DATABASE_URL is not set, records will be kept in memory only.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	encryptionKey, err := loadEncryptionKey()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPPort:        port,
		JWTSecret:       jwtSecret,
		DatabaseURL:     dbURL,
		TokenExpiration: time.Hour * time.Duration(tokenExpHours),
		EncryptionKey:   encryptionKey,
		OpenRouter: OpenRouterConfig{
			APIKey:  getEnv("OPENROUTER_API_KEY", ""),
			Model:   getEnv("OPENROUTER_MODEL", ""),
			BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		},
	}

	if cfg.OpenRouter.APIKey == "" {
		log.Println("Warning: OPENROUTER_API_KEY is not set; chat requires a caller-supplied or stored key.")
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, EncryptionKey=***", cfg.HTTPPort, cfg.TokenExpiration)

	return cfg, nil
}

// loadEncryptionKey decodes ENCRYPTION_KEY (64 hex characters for 32 bytes).
// When unset, an ephemeral random key is generated so demo deployments work
// out of the box; stored API keys then become unreadable after a restart.
func loadEncryptionKey() ([]byte, error) {
	encryptionKeyHex := getEnv("ENCRYPTION_KEY", "")
	if encryptionKeyHex == "" {
		log.Println("Warning: ENCRYPTION_KEY is not set, generating an ephemeral key for this process.")
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate ephemeral encryption key: %w", err)
		}
		return key, nil
	}

	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ENCRYPTION_KEY from hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be 32 bytes (64 hex characters) long, got %d bytes", len(key))
	}
	return key, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
