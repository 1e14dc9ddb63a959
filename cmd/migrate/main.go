package main

import (
	"flag"
	"fmt"
	"os"

	"marketplace-be/internal/config"
	"marketplace-be/internal/db"
	"marketplace-be/internal/logger"

	"go.uber.org/zap"
)

type options struct {
	mode  db.MigrateMode
	steps int
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.LoadDatabaseConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	conn, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(conn, cfg.DBName, opts.mode, opts.steps); err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	mode := fs.String("mode", "up", "migration mode: up or down")
	steps := fs.Int("steps", 0, "number of migrations to apply; 0 applies all")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	m, err := db.ParseMigrateMode(*mode)
	if err != nil {
		return options{}, err
	}
	if *steps < 0 {
		return options{}, fmt.Errorf("steps must be >= 0, got %d", *steps)
	}
	return options{mode: m, steps: *steps}, nil
}
