package main

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"
)

type Config struct {
	ServerURL   string `env:"CARTE_SERVER_URL" env-default:"http://localhost:4000"`
	LogFile     string `env:"CARTE_LOG_FILE" env-default:""`
	ExportDir   string `env:"CARTE_EXPORT_DIR" env-default:""`
	HTTPTimeout int    `env:"CARTE_HTTP_TIMEOUT" env-default:"30"`
}

func loadConfig() (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(".env"); err == nil {
		if err := cleanenv.ReadConfig(".env", cfg); err != nil {
			return nil, err
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(home, ".carte.log")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = home
	}
	return cfg, nil
}

// openLogger writes structured logs to a file. The TUI owns the terminal,
// so nothing may log to stdout or stderr while the program runs.
func openLogger(path string) (zerolog.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(f).With().Timestamp().Logger(), nil
}
