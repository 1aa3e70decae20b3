package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	DataDir      string
	Timezone     string
	Driver       string // "sqlite" or "diskv"
	PollInterval time.Duration
}

const (
	DefaultTimezone = "America/Los_Angeles"
	DefaultDriver   = "sqlite"
	DefaultPoll     = time.Minute
)

func Load() Config {
	return Config{
		DataDir:      getDataDir(),
		Timezone:     getenv("FOOD_DIARY_TZ", DefaultTimezone),
		Driver:       strings.ToLower(getenv("FOOD_DIARY_STORAGE", DefaultDriver)),
		PollInterval: getPollInterval(),
	}
}

func getDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("FOOD_DIARY_DATA_DIR")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".food-diary"
	}
	return filepath.Join(home, ".food-diary")
}

func getPollInterval() time.Duration {
	if raw := strings.TrimSpace(os.Getenv("FOOD_DIARY_POLL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return DefaultPoll
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
