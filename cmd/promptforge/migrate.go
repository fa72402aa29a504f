package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			database, err := e.openDB()
			if err != nil {
				return err
			}
			v, err := db.Version(database, e.cfg.DB.Driver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations complete, schema version %d\n", v)
			return nil
		},
	}
}
