package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/storehouse/internal/config"
	"github.com/Kerhoff/storehouse/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, migrationsPath, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		return db.Migrate(migrationsPath)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (one step by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
			steps = n
		}

		db, migrationsPath, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		return db.Rollback(migrationsPath, steps)
	},
}

func openDatabase() (*config.Database, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	db, err := config.NewDatabase(cfg.DatabaseURL, l)
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, cfg.MigrationsPath, nil
}
