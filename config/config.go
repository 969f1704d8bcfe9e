package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	DBPath   string
	LogLevel string
	// DefaultWarehouseID is the warehouse assigned to task inputs created by
	// the destructive input-replace endpoint, which carries no warehouse of
	// its own.
	DefaultWarehouseID uint
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	wh, err := strconv.ParseUint(get("DEFAULT_WAREHOUSE_ID", "7"), 10, 32)
	if err != nil {
		log.Printf("[cfg] bad DEFAULT_WAREHOUSE_ID, using 7: %v", err)
		wh = 7
	}
	cfg := AppConfig{
		Port:               get("PORT", "8080"),
		DBPath:             get("DB_PATH", "odisea.db"),
		LogLevel:           get("LOG_LEVEL", "info"),
		DefaultWarehouseID: uint(wh),
	}
	log.Printf("[cfg] port=%s db=%s log=%s", cfg.Port, cfg.DBPath, cfg.LogLevel)
	return cfg
}
