package storage

import (
	"fmt"
	"path/filepath"

	"food-diary/internal/config"
)

// KV is the persistence boundary: string keys to string values. Absence is
// reported through the bool, never as an error.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Close() error
}

// Open selects a backend from the configured driver.
func Open(cfg config.Config) (KV, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(filepath.Join(cfg.DataDir, "diary.db"))
	case "diskv":
		return NewDiskv(filepath.Join(cfg.DataDir, "diary")), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
