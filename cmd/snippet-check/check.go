package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/snippet-check/internal/buildenv"
	"github.com/pdiddy/snippet-check/internal/check"
	"github.com/pdiddy/snippet-check/internal/extract"
	"github.com/pdiddy/snippet-check/internal/toolchain"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Build every named snippet in the slide deck",
	Long: `Check extracts the named snippets, generates one project per snippet in a
temporary workspace, and runs the build command in each project directory.
Build output goes straight to the terminal.

A failing build does not change the exit status unless --strict is set.
Duplicate snippet names, missing templates, and file errors abort the run.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	snippets, err := extract.ParseFile(cfg.Document, extract.OptionsFrom(cfg.ExtractConfig))
	if err != nil {
		return err
	}

	env, err := buildenv.Load(cfg.Build.EnvDir, os.Stderr)
	if err != nil {
		return err
	}

	tc, err := toolchain.New(toolchain.Options{
		Command: cfg.Build.Command,
		Env:     env,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	if err != nil {
		return err
	}
	if !tc.Available() {
		fmt.Fprintf(os.Stderr, "warning: %s not found on PATH; builds will fail\n", tc.Name())
	}

	report, err := check.Run(cmd.Context(), snippets, check.Options{TemplatesDir: cfg.TemplatesDir}, tc, os.Stdout)
	if err != nil {
		return err
	}

	if cfg.Build.Strict && report.HasFailures() {
		return fmt.Errorf("%d of %d snippet(s) failed to build", report.Failed(), report.Attempted())
	}
	return nil
}
