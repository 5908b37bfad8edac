package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/dietpanel/internal/cli"
	"github.com/iudanet/dietpanel/internal/config"
	"github.com/iudanet/dietpanel/internal/iocli"
	"github.com/iudanet/dietpanel/internal/storage"
	"github.com/iudanet/dietpanel/internal/storage/boltdb"
	"github.com/iudanet/dietpanel/internal/storage/memory"
	"github.com/iudanet/dietpanel/internal/storage/redis"
	"github.com/iudanet/dietpanel/internal/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Конфигурация из окружения и .env, флаги имеют приоритет
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	showVersion := flag.Bool("version", false, "Show version information")
	flag.StringVar(&cfg.Backend, "backend", cfg.Backend, "Session storage: memory, bolt, sqlite, redis")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to BoltDB file")
	flag.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "Path to SQLite file")
	flag.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address")
	flag.Usage = func() { cli.PrintUsage(os.Stderr) }

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Контекст отменяется по Ctrl+C, это завершает watch
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Failed to open session storage: %v\n", err)
		os.Exit(1)
	}

	app := cli.New(ctx, store, iocli.NewStdio(), logger)
	runErr := app.Run(ctx, args[0], args[1:])

	if err := closeStore(); err != nil {
		logger.Error("failed to close session storage", "error", err)
	}
	stop()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// openStorage opens the configured backend and returns a function releasing it
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.SessionStorage, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		hub := memory.New()
		return hub.Open(), hub.Close, nil

	case config.BackendBolt:
		db, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db.Open(), db.Close, nil

	case config.BackendSQLite:
		db, err := sqlite.New(ctx, cfg.SQLitePath, sqlite.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		store := redis.New(client, redis.WithPrefix(cfg.RedisPrefix), redis.WithLogger(logger))
		return store, client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func printVersion() {
	fmt.Printf("DietPanel\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
