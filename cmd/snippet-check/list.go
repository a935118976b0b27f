package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/snippet-check/internal/extract"
	"github.com/pdiddy/snippet-check/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the snippets found in the slide deck",
	Long: `List scans the slide deck and prints every named snippet as YAML: name,
closing line, template, and code. Nothing is built. Use it to check which
blocks carry a snippet-name marker and which template each one picked up.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().Bool("names", false, "print only snippet names, one per line")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	snippets, err := extract.ParseFile(cfg.Document, extract.OptionsFrom(cfg.ExtractConfig))
	if err != nil {
		return err
	}

	namesOnly, _ := cmd.Flags().GetBool("names")
	if namesOnly {
		for _, s := range snippets {
			fmt.Fprintln(os.Stdout, s.Name)
		}
		return nil
	}
	return writeSnippetsYAML(os.Stdout, snippets)
}

// writeSnippetsYAML encodes snippets as a YAML sequence.
func writeSnippetsYAML(w io.Writer, snippets []types.Snippet) error {
	if snippets == nil {
		snippets = []types.Snippet{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snippets); err != nil {
		return fmt.Errorf("encoding snippets: %w", err)
	}
	return enc.Close()
}
