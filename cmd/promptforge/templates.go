package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/promptforge/promptforge/internal/catalog"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse and render prompt templates",
	}
	cmd.AddCommand(newTemplatesListCmd(), newTemplatesShowCmd(), newTemplatesRenderCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	var taskType, tool string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			cat, err := e.catalog()
			if err != nil {
				return err
			}
			templates := cat.All()
			if taskType != "" {
				tt, err := catalog.ParseTaskType(taskType)
				if err != nil {
					return err
				}
				templates = cat.FilterByTaskType(tt)
			}
			if tool != "" {
				t, err := catalog.ParseTool(tool)
				if err != nil {
					return err
				}
				keep := map[string]bool{}
				for _, tpl := range cat.FilterByTool(t) {
					keep[tpl.ID] = true
				}
				var filtered []catalog.Template
				for _, tpl := range templates {
					if keep[tpl.ID] {
						filtered = append(filtered, tpl)
					}
				}
				templates = filtered
			}

			if asJSON {
				if templates == nil {
					templates = []catalog.Template{}
				}
				return printJSON(cmd.OutOrStdout(), templates)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTASK TYPE\tTOOL\tNAME")
			for _, t := range templates {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.TaskType, t.Tool, t.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&taskType, "task-type", "", "only templates for this task type")
	cmd.Flags().StringVar(&tool, "tool", "", "only templates for this tool (general templates always match)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTemplatesShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			cat, err := e.catalog()
			if err != nil {
				return err
			}
			t, err := cat.Get(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), t)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n%s\n\n", t.Name, t.ID, t.Description)
			fmt.Fprintf(w, "task type: %s\ntool:      %s\nvariables: %s\n\n", t.TaskType, t.Tool, strings.Join(t.Variables, ", "))
			fmt.Fprintln(w, t.Body)
			for _, tip := range t.Tips {
				fmt.Fprintf(w, "tip: %s\n", tip)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newTemplatesRenderCmd() *cobra.Command {
	var (
		sets     []string
		varsFile string
	)
	cmd := &cobra.Command{
		Use:   "render <id>",
		Short: "Fill a template's placeholders",
		Example: `  promptforge templates render code_review \
    --set language=Go --set context_info="hot path" --set code_content="$(cat main.go)"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.Close()

			bindings, err := parseBindings(varsFile, sets)
			if err != nil {
				return err
			}
			cat, err := e.catalog()
			if err != nil {
				return err
			}
			out, err := cat.Render(args[0], bindings)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "placeholder binding as name=value (repeatable)")
	cmd.Flags().StringVar(&varsFile, "vars", "", "YAML or JSON file of placeholder bindings")
	return cmd
}

// parseBindings merges bindings from a YAML file with --set flags. Flags win.
func parseBindings(varsFile string, sets []string) (map[string]string, error) {
	bindings := map[string]string{}
	if varsFile != "" {
		data, err := os.ReadFile(varsFile)
		if err != nil {
			return nil, fmt.Errorf("reading vars file: %w", err)
		}
		if err := yaml.Unmarshal(data, &bindings); err != nil {
			return nil, fmt.Errorf("parsing vars file: %w", err)
		}
	}
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q: want name=value", s)
		}
		bindings[strings.TrimSpace(name)] = value
	}
	return bindings, nil
}
