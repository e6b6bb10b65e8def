package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if err := store.Migrate(ctx); err != nil {
				return err
			}
			a.logger.Info("migrations applied")
			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last applied migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			return store.Rollback(ctx)
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			records, err := store.MigrationStatus(ctx)
			if err != nil {
				return err
			}
			a.logger.Debug("migration status", zap.Int("count", len(records)))

			return render(a.out, a.output, records, func(w io.Writer) error {
				for _, r := range records {
					state := "pending"
					if r.Applied && r.AppliedAt != nil {
						state = "applied " + r.AppliedAt.Format("2006-01-02 15:04")
					}
					fmt.Fprintf(w, "%-20s %s\n", r.Name, state)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(up, down, status)
	return cmd
}
