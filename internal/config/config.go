package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage driver names accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds all configuration for the movie lookup service.
type Config struct {
	DB            DBConfig
	Mongo         MongoConfig
	Redis         RedisConfig
	Telegram      TelegramConfig
	StorageDriver string
	CatalogPath   string
	Port          string
	MetricsPort   string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// MongoConfig holds MongoDB configuration.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TelegramConfig holds the bot configuration. The bot front end is
// disabled when Token is empty.
type TelegramConfig struct {
	Token   string
	AdminID int64
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	adminID, _ := strconv.ParseInt(getEnv("TELEGRAM_ADMIN_ID", "0"), 10, 64)

	driver := getEnv("STORAGE_DRIVER", DriverMemory)
	switch driver {
	case DriverMemory, DriverPostgres, DriverMongo:
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", driver)
	}

	cfg := &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "movie_lookup"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGO_DB", "movie_lookup"),
			Collection: getEnv("MONGO_COLLECTION", "users"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TELEGRAM_TOKEN", ""),
			AdminID: adminID,
		},
		StorageDriver: driver,
		CatalogPath:   getEnv("CATALOG_PATH", ""),
		Port:          getEnv("SERVER_PORT", "8080"),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
