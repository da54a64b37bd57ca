package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/playerwallet/internal/config"
)

type apiConfig struct {
	Addr            string        `env:"APP_ADDR"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT"`
	Postgres        config.PostgresConfig
}
