package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBName    string
	JWTKey    string
	SaltRound int

	BillingApiURL string // Billing service base URL (subscription tier lookups)
	BillingApiKey string

	EmailSender string
	Password    string // SMTP Password

	ReevalSweepSeconds int // Interval for the permission re-evaluation sweep
	ProfileTimeoutMS   int // Max wait for profile load during a capability check
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	// Initialize AppConfig with values from environment variables
	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		DBName:    getEnv("DB_NAME", "tradegate"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		BillingApiURL: getEnv("BILLING_API_URL", "http://localhost:8100/billing/v1"),
		BillingApiKey: getEnv("BILLING_API_KEY", ""),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		ReevalSweepSeconds: getEnvInt("REEVAL_SWEEP_SECONDS", 5),
		ProfileTimeoutMS:   getEnvInt("PROFILE_TIMEOUT_MS", 3000),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.BillingApiKey == "" {
		log.Println("Warning: BILLING_API_KEY is empty. Subscription refresh calls will be unauthenticated.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
