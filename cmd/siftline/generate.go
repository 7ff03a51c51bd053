package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/siftline/siftline/internal/model"
	"github.com/siftline/siftline/internal/synth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic transactions into the store",
		Long: `Generate a deterministic batch of synthetic transactions and write it to
the database in batches. The same seed always produces the same data.

Examples:
  siftline generate --count 1000000    # a million records
  siftline generate --seed 7 --reset   # fresh data, wiping previous records`,
		RunE: runGenerateCmd,
	}

	cmd.Flags().IntP("count", "n", 100_000, "number of transactions to generate")
	cmd.Flags().Int64("seed", 1, "random seed")
	cmd.Flags().Int("batch-size", 10_000, "rows per insert batch")
	cmd.Flags().Bool("reset", false, "delete existing transactions first")

	_ = viper.BindPFlag("generate.count", cmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("generate.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("generate.batch_size", cmd.Flags().Lookup("batch-size"))
	_ = viper.BindPFlag("generate.reset", cmd.Flags().Lookup("reset"))

	return cmd
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	opts := synth.DefaultOptions()
	opts.Count = viper.GetInt("generate.count")
	opts.Seed = viper.GetInt64("generate.seed")
	batchSize := viper.GetInt("generate.batch_size")

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer closeStorage(db)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("failed to run migrations: %w", migrateErr)
	}

	if viper.GetBool("generate.reset") {
		if err := db.ResetTransactions(ctx); err != nil {
			return fmt.Errorf("failed to reset transactions: %w", err)
		}
		slog.Info("Cleared existing transactions")
	}

	bar := progressbar.NewOptions(opts.Count,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Generating transactions..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	err = synth.GenerateBatches(opts, batchSize, func(batch []model.Transaction) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if saveErr := db.SaveTransactions(ctx, batch); saveErr != nil {
			return saveErr
		}
		return bar.Add(len(batch))
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	count, err := db.CountTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}

	slog.Info("Generation complete", "stored_transactions", count, "seed", opts.Seed)
	return nil
}
