package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every process-wide setting. It is built once at startup and
// passed by reference into the services and middleware; business logic never
// reads the environment directly.
type Config struct {
	Port               string
	DatabaseURL        string
	SecretKey          string
	BootstrapCode      string
	TokenExpireMinutes int
	AllowedOrigins     []string
	LogLevel           string
}

func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DB_URL", ""),
		SecretKey:          getEnv("SECRET_KEY", ""),
		BootstrapCode:      getEnv("STAFF_BOOTSTRAP_CODE", ""),
		TokenExpireMinutes: getEnvInt("TOKEN_EXPIRE_MINUTES", 60),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
