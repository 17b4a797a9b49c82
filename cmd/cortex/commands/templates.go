package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aoatridge/cortex/internal/templates"
)

var templatesJSON bool

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the templates cortex installs",
	Long: `List the slash commands and agents cortex copies into a project, with the
description from each template's frontmatter. Set templates_dir in the cortex
config to use your own templates instead of the built-in ones.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		return runTemplates(c.OutOrStdout())
	},
}

type templateOutput struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description"`
}

func runTemplates(w io.Writer) error {
	c, err := currentConfig()
	if err != nil {
		return err
	}
	src, err := templateSource(c)
	if err != nil {
		return err
	}

	var out []templateOutput
	for _, kind := range templates.Kinds {
		available, err := src.Available(kind)
		if err != nil {
			return err
		}
		for _, t := range available {
			out = append(out, templateOutput{
				Kind:        string(kind),
				Name:        t.Name(),
				File:        t.File,
				Description: t.Description,
			})
		}
	}

	if templatesJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%s %s\n\n", color.New(color.Bold).Sprint("Templates:"), color.CyanString(src.String()))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tNAME\tDESCRIPTION")
	for _, t := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Kind, t.Name, t.Description)
	}
	return tw.Flush()
}
