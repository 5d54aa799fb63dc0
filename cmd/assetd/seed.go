package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartinsert/assetcache/config"
	"github.com/smartinsert/assetcache/datagen"
	"github.com/smartinsert/assetcache/store"
)

func newSeedCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the backing store with generated assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.Log)
			if err != nil {
				return err
			}
			defer logger.Sync()

			backend, err := store.Open(cmd.Context(), cfg.Store, logger)
			if err != nil {
				return err
			}
			st := store.NewClient(backend, logger.Named("store"))
			defer st.Close()
			return seedStore(cmd.Context(), st, cfg.Seed, force, logger)
		},
	}
	bindConfig(cmd)
	cmd.Flags().BoolVar(&force, "force", false, "write even if the store already holds enough records")
	return cmd
}

// seedStore generates cfg.Count assets unless the store already has that many.
func seedStore(ctx context.Context, st *store.Client, cfg config.Seed, force bool, logger *zap.Logger) error {
	if have := st.Count(ctx); have >= cfg.Count && !force {
		logger.Info("store already seeded", zap.Int("have", have), zap.Int("want", cfg.Count))
		return nil
	}
	return datagen.Seed(ctx, st, datagen.New(cfg.Random, nil), cfg.Count, datagen.DefaultSeedChunk, logger)
}
