package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/credentials"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage LLM provider API keys",
		Long: "Keys are looked up in <PROVIDER>_API_KEY, then llm.api_key, then the keys stored here.\n" +
			"Stored keys are kept in the database as plain text.",
	}
	cmd.AddCommand(newKeysSetCmd(), newKeysListCmd(), newKeysRemoveCmd())
	return cmd
}

func newKeysSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <provider> [key]",
		Short: "Store an API key (reads the key from stdin when omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			key := ""
			if len(args) == 2 {
				key = args[1]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no key given on stdin")
				}
				key = strings.TrimSpace(line)
			}

			r, err := e.resolver()
			if err != nil {
				return err
			}
			if err := r.Set(cmd.Context(), args[0], key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s key %s\n", args[0], credentials.Mask(key))
			return nil
		},
	}
}

func newKeysListCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available API keys, masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.resolver()
			if err != nil {
				return err
			}
			entries, err := r.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				if entries == nil {
					entries = []credentials.Entry{}
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROVIDER\tSOURCE\tKEY\tLAST USED")
			for _, en := range entries {
				last := "-"
				if en.LastUsedAt != nil {
					last = en.LastUsedAt.Local().Format(time.DateTime)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", en.Provider, en.Source, en.Masked, last)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newKeysRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <provider>",
		Short: "Remove a stored API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			r, err := e.resolver()
			if err != nil {
				return err
			}
			if err := r.Remove(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("remove %s key: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s key\n", args[0])
			return nil
		},
	}
}
