package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/build"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "promptforge",
		Short:         "Prompt engineering assistant for AI coding tools",
		Long:          "promptforge classifies programming requests, recommends prompt templates, grades prompts and generates new ones with an LLM.",
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newEvaluateCmd(),
		newGenerateCmd(),
		newTemplatesCmd(),
		newHistoryCmd(),
		newKeysCmd(),
		newTokensCmd(),
		newServeCmd(),
		newMigrateCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
