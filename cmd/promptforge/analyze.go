package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptforge/promptforge/internal/advisor"
	"github.com/promptforge/promptforge/internal/quality"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify a programming request and recommend templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			text, err := readInput(cmd.Context(), args, file)
			if err != nil {
				return err
			}
			a, err := e.advisor()
			if err != nil {
				return err
			}
			advice := a.Advise(text)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), advice)
			}
			printAdvice(cmd.OutOrStdout(), advice)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the request from a .txt, .md, .pdf or .docx file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printAdvice(w io.Writer, a advisor.Advice) {
	c := a.Classification
	fmt.Fprintln(w, "Analysis")
	fmt.Fprintf(w, "  task type:  %s (confidence %.2f)\n", c.TaskType, c.Confidence)
	fmt.Fprintf(w, "  language:   %s\n", c.Language)
	fmt.Fprintf(w, "  tool:       %s\n", c.Tool)
	fmt.Fprintf(w, "  complexity: %s\n", c.Complexity)
	if len(c.Keywords) > 0 {
		fmt.Fprintf(w, "  keywords:   %s\n", strings.Join(c.Keywords, ", "))
	}
	if len(c.MissingInfo) > 0 {
		fmt.Fprintf(w, "  missing:    %s\n", strings.Join(c.MissingInfo, ", "))
	}

	fmt.Fprintln(w)
	if len(a.Recommendations) == 0 {
		fmt.Fprintln(w, "No matching templates.")
	}
	for i, r := range a.Recommendations {
		fmt.Fprintf(w, "%d. %s [%s] score %.2f\n", i+1, r.TemplateName, r.TemplateID, r.Score)
		for _, reason := range r.Reasons {
			fmt.Fprintf(w, "   + %s\n", reason)
		}
		for _, imp := range r.Improvements {
			fmt.Fprintf(w, "   ! %s\n", imp)
		}
	}

	if len(a.Tips) > 0 {
		fmt.Fprintln(w, "\nTips")
		for _, t := range a.Tips {
			fmt.Fprintf(w, "  - %s\n", t)
		}
	}
}

func newEvaluateCmd() *cobra.Command {
	var (
		file        string
		requirement string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate [prompt...]",
		Short: "Grade a prompt on clarity, specificity, completeness, structure and actionability",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			prompt, err := readInput(cmd.Context(), args, file)
			if err != nil {
				return err
			}
			a, err := e.advisor()
			if err != nil {
				return err
			}
			report := a.Evaluate(prompt, requirement)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), quality.Markdown(report))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the prompt from a .txt, .md, .pdf or .docx file")
	cmd.Flags().StringVarP(&requirement, "requirement", "r", "", "the requirement the prompt was written for")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
