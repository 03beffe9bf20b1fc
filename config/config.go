package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppMode string

	DataDir     string
	UsersFile   string
	StoreDriver string
	BoltPath    string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string
	S3Key       string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	PasswordScheme  string
	BotName         string
	DefaultLanguage string
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppMode: getEnv("APP_MODE", "debug"),

		DataDir:     dataDir,
		UsersFile:   getEnv("USERS_FILE", filepath.Join(dataDir, "users.json")),
		StoreDriver: getEnv("STORE_DRIVER", "json"),
		BoltPath:    getEnv("BOLT_PATH", filepath.Join(dataDir, "users.db")),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisPrefix:   getEnv("REDIS_PREFIX", "eshika"),

		S3Region:    getEnv("S3_REGION", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Key:       getEnv("S3_KEY", "users.json"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-flash-latest"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", ""),
		GeminiTimeout: time.Duration(getEnvAsInt("GEMINI_TIMEOUT_SEC", 30)) * time.Second,

		PasswordScheme:  getEnv("PASSWORD_SCHEME", "plaintext"),
		BotName:         getEnv("BOT_NAME", "Eshika Smart Bot AI"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en-US"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
