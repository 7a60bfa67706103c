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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rkcl/league-api/internal/auction"
	"github.com/rkcl/league-api/internal/config"
	"github.com/rkcl/league-api/internal/database"
	"github.com/rkcl/league-api/internal/kv"
	"github.com/rkcl/league-api/internal/migrations"
	"github.com/rkcl/league-api/internal/quiz"
	"github.com/rkcl/league-api/internal/registrations"
	"github.com/rkcl/league-api/internal/server"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("kv store ready", "backend", cfg.KVBackend)

	auctionSvc := auction.NewService(store)
	quizSvc := quiz.NewService(
		quiz.NewCatalog(cfg.QuizzesDir()),
		quiz.NewResultsStore(cfg.ResultsDir()),
		store,
	)
	regSvc := registrations.NewService(cfg.RegistrationsCSVURL, cfg.AuctionCSV())
	auth := server.NewAdminAuth(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.AnswersPassword, store)

	handler := server.New(server.Deps{
		Logger:        logger,
		Store:         store,
		Auction:       auctionSvc,
		Quiz:          quizSvc,
		Registrations: regSvc,
		Auth:          auth,
		SPADir:        cfg.SPADir,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore builds the KV backend selected in configuration.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.KVBackend {
	case config.KVMemory:
		return kv.NewMemory(), nil
	case config.KVFile:
		return kv.OpenFile(cfg.KVFile())
	case config.KVSQLite:
		db, err := database.Open(ctx, cfg.KVDB())
		if err != nil {
			return nil, err
		}
		if err := migrations.Run(db); err != nil {
			db.Close()
			return nil, err
		}
		return kv.NewSQLite(db), nil
	case config.KVRedis:
		return kv.OpenRedis(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
}
