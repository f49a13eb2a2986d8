package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Catalog CatalogConfig
	Storage StorageConfig
}

type CatalogConfig struct {
	// RomsDir holds one subdirectory per system id.
	RomsDir string `env:"ROMS_DIR, default=roms"`
	// ScanTimeout bounds the directory scanning of one listing request.
	ScanTimeout time.Duration `env:"SCAN_TIMEOUT, default=10s"`
	// WatchEnabled starts the fsnotify library watcher.
	WatchEnabled bool `env:"WATCH_ENABLED, default=true"`
}

type StorageConfig struct {
	SavesDir  string `env:"SAVES_DIR,  default=saves"`
	UsersFile string `env:"USERS_FILE, default=users.json"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
