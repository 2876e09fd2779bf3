package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"events-api/internal/config"
	"events-api/internal/seed"

	"github.com/spf13/cobra"
)

// newRootCmd 未指定子命令時等同 serve
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "events-api",
		Short:         "Events REST backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Pending migrations are applied on startup. SIGINT or SIGTERM triggers a
graceful shutdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	ctx, stop := notifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx)
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := runMigrationsFn(cfg.Database.URL); err != nil {
				return fmt.Errorf("Migration 執行失敗: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}, &cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := rollbackFn(cfg.Database.URL); err != nil {
				return fmt.Errorf("Rollback 執行失敗: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
			return nil
		},
	})
	return cmd
}

func newSeedCmd() *cobra.Command {
	var users, events int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users and events",
		Long: `Create fake users and events for local development.

Every seeded user gets the password ` + seed.DefaultPassword + `. Events are
spread over the year around now and get random guests and participants.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := config.NewLogger(cfg.Logging)
			ctx := cmd.Context()

			db, err := newPgxPool(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("DB 連線失敗: %w", err)
			}
			defer db.Close()

			seedVal := uint64(time.Now().UnixNano())
			s := seed.New(db, rand.New(rand.NewPCG(seedVal, seedVal>>1)), logger)
			created, err := s.Users(ctx, users)
			if err != nil {
				return err
			}
			list, err := s.Events(ctx, events)
			if err != nil {
				return err
			}
			logger.Info().Int("users", len(created)).Int("events", len(list)).Msg("seed completed")
			return nil
		},
	}
	cmd.Flags().IntVar(&users, "users", 5, "number of users to create")
	cmd.Flags().IntVar(&events, "events", 50, "number of events to create")
	return cmd
}

var notifyContext = signal.NotifyContext
