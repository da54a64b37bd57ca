package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/playerwallet/internal/api"
	"github.com/fastprodman/playerwallet/internal/infra/logging"
	"github.com/fastprodman/playerwallet/internal/infra/pgutils"
	"github.com/fastprodman/playerwallet/internal/services/ledger"
	"github.com/fastprodman/playerwallet/pkg/envconf"
	"github.com/fastprodman/playerwallet/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	dbConns.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	dbConns.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	dbConns.SetConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime)
	dbConns.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("Close db connections")

		return dbConns.Close()
	})

	ledgerSrv := ledger.New(dbConns)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Addr, ledgerSrv)

	// Register HTTP server graceful shutdown
	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	// Run server
	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "addr", cfg.Addr)

	// --- Wait until either context cancels or server errors out ---
	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
