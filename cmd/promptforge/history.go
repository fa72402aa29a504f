package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show and manage generated prompts",
	}
	cmd.AddCommand(newHistoryListCmd(), newHistoryShowCmd(), newHistoryDeleteCmd(), newHistoryClearCmd())
	return cmd
}

// historyStore opens the database and returns the history store.
func historyStore() (*store.HistoryStore, *env, error) {
	e, err := setup()
	if err != nil {
		return nil, nil, err
	}
	database, err := e.openDB()
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return store.NewHistoryStore(database), e, nil
}

func newHistoryListCmd() *cobra.Command {
	var limit int
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent generated prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, e, err := historyStore()
			if err != nil {
				return err
			}
			defer e.Close()

			entries, err := hs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tFORMAT\tGRADE\tREQUIREMENT")
			for _, h := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", h.ID, h.CreatedAt.Local().Format(time.DateTime), h.Format, h.Grade, oneLine(h.Requirement, 50))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one generated prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, e, err := historyStore()
			if err != nil {
				return err
			}
			defer e.Close()

			h, err := hs.GetByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("history entry %s: %w", args[0], err)
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), h)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "requirement: %s\nformat:      %s\nprovider:    %s\nquality:     %.1f (grade %s)\ncreated:     %s\n\n",
				h.Requirement, h.Format, h.Provider, h.QualityScore, h.Grade, h.CreatedAt.Local().Format(time.DateTime))
			fmt.Fprintln(w, h.Prompt)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newHistoryDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one generated prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, e, err := historyStore()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := hs.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("history entry %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every generated prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hs, e, err := historyStore()
			if err != nil {
				return err
			}
			defer e.Close()

			n, err := hs.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", n)
			return nil
		},
	}
}

// oneLine collapses whitespace and truncates s to n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
