package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/generate"
	"github.com/promptforge/promptforge/internal/store"
)

func newGenerateCmd() *cobra.Command {
	var (
		file         string
		format       string
		examplesFile string
		experts      int
		temperature  float64
		maxTokens    int
		noSave       bool
		asJSON       bool
	)
	cmd := &cobra.Command{
		Use:   "generate [requirement...]",
		Short: "Generate a prompt for a requirement with the configured LLM",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			requirement, err := readInput(cmd.Context(), args, file)
			if err != nil {
				return err
			}
			f, err := generate.ParseFormat(format)
			if err != nil {
				return err
			}
			var examples []generate.Example
			if examplesFile != "" {
				if examples, err = generate.LoadExamples(examplesFile); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("temperature") {
				temperature = e.cfg.LLM.Temperature
			}
			if !cmd.Flags().Changed("max-tokens") {
				maxTokens = e.cfg.LLM.MaxTokens
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), e.cfg.LLM.Timeout)
			defer cancel()
			g, err := e.generator(ctx)
			if err != nil {
				return err
			}
			res, err := g.Generate(ctx, generate.Request{
				Requirement: requirement,
				Format:      f,
				Examples:    examples,
				Experts:     experts,
				Temperature: temperature,
				MaxTokens:   maxTokens,
			})
			if err != nil {
				return err
			}

			if !noSave {
				if err := saveHistory(cmd.Context(), e, res); err != nil {
					log.Printf("generate: save history: %v", err)
				}
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), res)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, res.Prompt)
			fmt.Fprintf(w, "\nquality: %.1f/10 (grade %s)", res.Quality.Overall, res.Quality.Grade)
			if res.Fallback {
				fmt.Fprint(w, ", offline fallback prompt")
			}
			fmt.Fprintln(w)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the requirement from a .txt, .md, .pdf or .docx file")
	cmd.Flags().StringVar(&format, "format", string(generate.FormatStandard), "prompt format: standard, expert-panel or examples")
	cmd.Flags().StringVar(&examplesFile, "examples", "", "JSON file of {input, output} pairs for the examples format")
	cmd.Flags().IntVar(&experts, "experts", generate.DefaultExperts, "number of experts for the expert-panel format")
	cmd.Flags().Float64Var(&temperature, "temperature", generate.DefaultTemperature, "sampling temperature (defaults to llm.temperature)")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", generate.DefaultMaxTokens, "maximum reply tokens (defaults to llm.max_tokens)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the result in history")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func saveHistory(ctx context.Context, e *env, res *generate.Result) error {
	database, err := e.openDB()
	if err != nil {
		return err
	}
	_, err = store.NewHistoryStore(database).Create(ctx, store.HistoryEntry{
		Requirement:  res.Requirement,
		Format:       string(res.Format),
		Provider:     res.Provider,
		Prompt:       res.Prompt,
		Fallback:     res.Fallback,
		QualityScore: res.Quality.Overall,
		Grade:        res.Quality.Grade,
	})
	return err
}
