package main

import (
	"fmt"

	"github.com/siftline/siftline/internal/cli"
	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "List saved classification run summaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, err := openStorage()
			if err != nil {
				return err
			}
			defer closeStorage(db)

			if migrateErr := db.Migrate(ctx); migrateErr != nil {
				return fmt.Errorf("failed to run migrations: %w", migrateErr)
			}

			runs, err := db.ListRuns(ctx)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			fmt.Println(cli.RenderRuns(runs))
			return nil
		},
	}
}
