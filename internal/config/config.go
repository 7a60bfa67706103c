package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend names accepted in KV_BACKEND.
const (
	KVMemory = "memory"
	KVFile   = "file"
	KVSQLite = "sqlite"
	KVRedis  = "redis"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DataDir  string     `env:"DATA_DIR" envDefault:"data"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:""`

	// KV backend selection is explicit — no environment probing.
	KVBackend  string `env:"KV_BACKEND" envDefault:"file"`
	KVFilePath string `env:"KV_FILE_PATH" envDefault:""`
	KVDBPath   string `env:"KV_DB_PATH" envDefault:""`
	RedisURL   string `env:"REDIS_URL" envDefault:""`

	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" envDefault:""`
	AnswersPassword   string `env:"ANSWERS_PASSWORD" envDefault:""`

	RegistrationsCSVURL string `env:"SHEETS_CSV_URL" envDefault:""`
	AuctionCSVPath      string `env:"AUCTION_CSV_PATH" envDefault:""`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch cfg.KVBackend {
	case KVMemory, KVFile, KVSQLite:
	case KVRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("KV_BACKEND=redis requires REDIS_URL")
		}
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}

	return &cfg, nil
}

// KVFile returns the file-backend path, defaulting into DataDir.
func (c *Config) KVFile() string {
	if c.KVFilePath != "" {
		return c.KVFilePath
	}
	return filepath.Join(c.DataDir, "kv.json")
}

// KVDB returns the sqlite-backend path, defaulting into DataDir.
func (c *Config) KVDB() string {
	if c.KVDBPath != "" {
		return c.KVDBPath
	}
	return filepath.Join(c.DataDir, "kv.db")
}

// QuizzesDir is where quiz definition JSON files live.
func (c *Config) QuizzesDir() string {
	return filepath.Join(c.DataDir, "quizzes")
}

// ResultsDir is where per-quiz result files are appended.
func (c *Config) ResultsDir() string {
	return filepath.Join(c.DataDir, "quiz_results")
}

// AuctionCSV returns the secondary auction-attributes CSV path.
func (c *Config) AuctionCSV() string {
	if c.AuctionCSVPath != "" {
		return c.AuctionCSVPath
	}
	return filepath.Join(c.DataDir, "auction_players.csv")
}
