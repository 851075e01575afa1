package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-netclop/pkg/logging"
	"github.com/dd0wney/cluso-netclop/pkg/store"
)

func newRunsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !fileExists(dbPath) {
				return fmt.Errorf("database %s does not exist", dbPath)
			}
			db, err := store.Open(dbPath, logging.NewNopLogger())
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			runs, err := db.ListRuns(ctx)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout(), noColor)
			out.header(fmt.Sprintf("%d stored runs", len(runs)))
			for _, r := range runs {
				out.info(r.CreatedAt.Format(time.RFC3339), "%s  %-9s seed=%d modules=%d replicates=%d",
					r.ID, r.Scheme, r.Seed, r.Modules, r.Replicates)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "netclop.db", "SQLite results database")
	return cmd
}
