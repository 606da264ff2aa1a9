package server

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds service settings sourced from the environment.
type Config struct {
	Addr          string // listen address, e.g. ":8080"
	DatabaseURL   string // empty disables the result store
	LogLevel      string
	WSOrigin      string // allowed WebSocket origin; empty allows same-host only
	ShutdownGrace int    // seconds to drain in-flight requests on SIGTERM
}

// LoadConfig reads .env if present and resolves the service configuration.
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Addr:          ":" + getenv("PORT", "8080"),
		DatabaseURL:   getenv("DATABASE_URL", ""),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		WSOrigin:      getenv("WS_ORIGIN", ""),
		ShutdownGrace: atoiDef(getenv("SHUTDOWN_GRACE_SECONDS", ""), 10),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
