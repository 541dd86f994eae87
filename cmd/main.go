package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/migrations"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "availability-service",
		Short:         "SMC-AvailabilityService: окна доступности провайдеров и слоты записи",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to TOML config file")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(*configPath, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before start")
	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(ctx context.Context, m *migrations.Migrator) error {
				return m.Up(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(*configPath, func(ctx context.Context, m *migrations.Migrator) error {
				return m.Status(ctx)
			})
		},
	})

	return cmd
}

func withMigrator(configPath string, fn func(ctx context.Context, m *migrations.Migrator) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := migrations.NewMigrator(db, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return fn(ctx, migrator)
}

func openDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database (host=%s, port=%d, db=%s): %w",
			cfg.Host, cfg.Port, cfg.DBName, err)
	}
	return db, nil
}
