package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT  int
	LOG_LEVEL string
	// export config
	EXPORT_DIR             string
	DASHBOARD_CONFIG_PATH  string
	WORKBOOK_TEMPLATE_PATH string
	PEEK_ROW_LIMIT         int
	FETCH_WORKERS          int
	FETCH_RETRIES          int
	FETCH_RETRY_BACKOFF    time.Duration
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// elasticsearch config
	ELASTIC_ENABLED bool
	ELASTIC_URL     string
	// datastore config
	DATASTORE_ENABLED    bool
	DATASTORE_PROJECT_ID string
	// logger config
	LOG_FILE_PATH string
}

func LoadEnvConfig() error {
	// A missing .env file is fine; values then come from the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:  getEnvInt("APP_PORT", 8080),
		LOG_LEVEL: getEnvString("LOG_LEVEL", "info"),

		EXPORT_DIR:             getEnvString("EXPORT_DIR", "exports"),
		DASHBOARD_CONFIG_PATH:  getEnvString("DASHBOARD_CONFIG_PATH", "dashboard.yaml"),
		WORKBOOK_TEMPLATE_PATH: getEnvString("WORKBOOK_TEMPLATE_PATH", ""),
		PEEK_ROW_LIMIT:         getEnvInt("PEEK_ROW_LIMIT", 1),
		FETCH_WORKERS:          getEnvInt("FETCH_WORKERS", 4),
		FETCH_RETRIES:          getEnvInt("FETCH_RETRIES", 2),
		FETCH_RETRY_BACKOFF:    getEnvDuration("FETCH_RETRY_BACKOFF", 500*time.Millisecond),

		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),

		ELASTIC_ENABLED: getEnvBool("ELASTIC_ENABLED", false),
		ELASTIC_URL:     getEnvString("ELASTIC_URL", "http://localhost:9200"),

		DATASTORE_ENABLED:    getEnvBool("DATASTORE_ENABLED", false),
		DATASTORE_PROJECT_ID: getEnvString("DATASTORE_PROJECT_ID", ""),

		LOG_FILE_PATH: getEnvString("LOG_FILE_PATH", ""),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
