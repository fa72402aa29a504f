package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/auth"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage bearer tokens for the HTTP API",
	}
	cmd.AddCommand(newTokensCreateCmd(), newTokensListCmd(), newTokensRevokeCmd())
	return cmd
}

func tokenStore() (*auth.SQLTokenStore, *env, error) {
	e, err := setup()
	if err != nil {
		return nil, nil, err
	}
	database, err := e.openDB()
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return auth.NewSQLTokenStore(database), e, nil
}

func newTokensCreateCmd() *cobra.Command {
	var expiresIn time.Duration
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a token and print it once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, e, err := tokenStore()
			if err != nil {
				return err
			}
			defer e.Close()

			var expiresAt *time.Time
			if expiresIn > 0 {
				t := time.Now().Add(expiresIn)
				expiresAt = &t
			}
			plaintext, hash, err := auth.GenerateToken()
			if err != nil {
				return err
			}
			rec, err := ts.Create(cmd.Context(), args[0], hash, expiresAt)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "token %s (%s) created. It will not be shown again:\n\n%s\n", rec.Name, rec.ID, plaintext)
			return nil
		},
	}
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "lifetime such as 720h (default: never expires)")
	return cmd
}

func newTokensListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, e, err := tokenStore()
			if err != nil {
				return err
			}
			defer e.Close()

			records, err := ts.List(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tCREATED\tLAST USED")
			for _, r := range records {
				status := "active"
				switch {
				case r.RevokedAt.Valid:
					status = "revoked"
				case !r.Active(now):
					status = "expired"
				}
				last := "-"
				if r.LastUsedAt.Valid {
					last = r.LastUsedAt.Time.Local().Format(time.DateTime)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, status, r.CreatedAt.Local().Format(time.DateTime), last)
			}
			return tw.Flush()
		},
	}
}

func newTokensRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, e, err := tokenStore()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := ts.Revoke(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("revoke %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s\n", args[0])
			return nil
		},
	}
}
