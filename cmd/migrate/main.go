// Command migrate prepares the document store: it creates the secondary
// indexes and, with --seed, inserts a small demo diary.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deardiary/deardiary/backend/go-services/internal/config"
	"github.com/deardiary/deardiary/backend/go-services/internal/database"
	"github.com/deardiary/deardiary/backend/go-services/internal/export"
	"github.com/deardiary/deardiary/backend/go-services/internal/notes"
	"github.com/deardiary/deardiary/backend/go-services/internal/store"
	"github.com/deardiary/deardiary/backend/go-services/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		seed    bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create store indexes and optionally seed a demo diary",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return run(ctx, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert demo folders and notes")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline")
	return cmd
}

func run(ctx context.Context, seed bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	gw, closeStore := database.Open(ctx, cfg)
	defer closeStore(context.Background())
	if !store.IsAvailable(gw) {
		return errors.New("document store unavailable; nothing to do")
	}

	if err := store.EnsureIndexes(ctx, gw, append(notes.Indexes(), export.Indexes()...)); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	logger.Infof("indexes ready")

	if seed {
		n, err := seedDemo(ctx, notes.NewService(gw))
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Infof("seeded %d documents", n)
	}
	return nil
}
