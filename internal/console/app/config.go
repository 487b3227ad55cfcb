package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// IAM API base URL (default: http://localhost:8080)
	APIURL string `validate:"required,url"`
	// Web console port (default: 3000)
	Port int `validate:"min=1,max=65535"`
	// SQLite file holding the session token (default: ./console.db)
	StorageFile string `validate:"required"`
	// Environment (dev, staging, prod) (default: dev)
	Env string `validate:"oneof=dev staging prod"`
	// Log level (debug, info, warn, error) (default: info)
	LogLevel string
	// Log format (json, text) (default: json)
	LogFormat string
	// Graceful shutdown timeout (default: 10s)
	ShutdownGracePeriod time.Duration `validate:"gt=0"`

	// LogOutput defaults to os.Stdout.
	LogOutput io.Writer `validate:"-"`
}

// LoadConfig reads the environment. A .env file in the working directory is
// loaded first when present; real environment variables win over it.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		APIURL:              getEnvOrDefault("IAM_API_URL", "http://localhost:8080"),
		Port:                getEnvIntOrDefault("CONSOLE_PORT", 3000),
		StorageFile:         getEnvOrDefault("CONSOLE_STORAGE_FILE", "console.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Field(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %w", err)
}

// Production reports whether the console runs behind TLS in production.
func (c Config) Production() bool {
	return strings.EqualFold(c.Env, "prod")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "10s", "1m"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
