package main

import (
	"fmt"
	"log/slog"

	"github.com/siftline/siftline/internal/classify"
	"github.com/siftline/siftline/internal/cli"
	"github.com/siftline/siftline/internal/common"
	"github.com/siftline/siftline/internal/model"
	"github.com/siftline/siftline/internal/synth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify stored transactions into buckets",
		Long: `Classify transactions in a single pass against the built-in predicates
(pending, high value, mismatched) and print a report.

By default transactions are read from the database; use --synthetic to
classify an ephemeral generated batch instead.

Examples:
  siftline classify                       # classify everything in the store
  siftline classify --threshold 25000     # lower the high-value threshold
  siftline classify --workers 8           # parallel pass over large batches
  siftline classify --synthetic 1000000   # one-off run on generated data
  siftline classify --save                # persist the run summary`,
		RunE: runClassifyCmd,
	}

	cmd.Flags().Float64P("threshold", "t", classify.DefaultHighValueThreshold, "high-value amount threshold (strictly greater than)")
	cmd.Flags().IntP("workers", "w", 1, "parallel workers (1 = sequential pass)")
	cmd.Flags().Int("synthetic", 0, "classify N generated transactions instead of the store")
	cmd.Flags().Int64("seed", 1, "seed for --synthetic data")
	cmd.Flags().Int("sample-rows", 5, "transactions shown per bucket in the report")
	cmd.Flags().Bool("save", false, "persist the run summary to the database")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("classify.threshold", cmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("classify.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("classify.synthetic", cmd.Flags().Lookup("synthetic"))
	_ = viper.BindPFlag("classify.seed", cmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("classify.sample_rows", cmd.Flags().Lookup("sample-rows"))
	_ = viper.BindPFlag("classify.save", cmd.Flags().Lookup("save"))

	return cmd
}

func runClassifyCmd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	threshold := viper.GetFloat64("classify.threshold")
	workers := viper.GetInt("classify.workers")
	synthetic := viper.GetInt("classify.synthetic")
	save := viper.GetBool("classify.save")

	var (
		txns []model.Transaction
		err  error
	)

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer closeStorage(db)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("failed to run migrations: %w", migrateErr)
	}

	if synthetic > 0 {
		opts := synth.DefaultOptions()
		opts.Count = synthetic
		opts.Seed = viper.GetInt64("classify.seed")
		slog.Info("Generating synthetic transactions", "count", opts.Count, "seed", opts.Seed)
		txns, err = synth.Generate(opts)
		if err != nil {
			return fmt.Errorf("failed to generate transactions: %w", err)
		}
	} else {
		txns, err = db.ListTransactions(ctx)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		if len(txns) == 0 {
			return common.NewUserError("nothing to classify; run 'siftline generate' first", common.ErrNoTransactions)
		}
	}

	slog.Info("Starting classification",
		"transactions", len(txns),
		"threshold", threshold,
		"workers", workers)

	classifier := classify.New(classify.DefaultSet(threshold), classify.Options{Workers: workers})
	report, err := classifier.Classify(ctx, txns)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	fmt.Println(cli.RenderReport(report, viper.GetInt("classify.sample_rows")))

	if save {
		if err := db.SaveRun(ctx, report); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		slog.Info("Run summary saved", "run_id", report.RunID)
	}

	return nil
}
