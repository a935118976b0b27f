// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the snippet-check CLI.
// It compiles every named code block in a slide deck by generating one
// project per snippet from a template directory and running the build tool
// in each.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/snippet-check/internal/extract"
	"github.com/pdiddy/snippet-check/internal/toolchain"
	"github.com/pdiddy/snippet-check/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Without a subcommand it runs check.
var rootCmd = &cobra.Command{
	Use:   "snippet-check",
	Short: "Verify that code snippets in a slide deck compile",
	Long: `snippet-check scans a Markdown slide deck for fenced code blocks tagged
with a snippet name, copies a template project for each one, splices the
code in at the template's insertion marker, and runs the build tool in every
generated project.

Mark a block for testing with a comment before (or inside) the fence:

    <!--- snippet-template: lib -->
    <!--- snippet-name: demo -->

A template selector applies to every later block until the next selector.
Blocks before the first selector use "program".`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./snippet-check.yaml or ~/.config/snippet-check/snippet-check.yaml)")
	pf.String("document", "slides.md", "slide deck to scan")
	pf.String("language", extract.DefaultLanguage, "fence language tag to collect")
	pf.String("default-template", extract.DefaultTemplate, "template for blocks without a snippet-template marker")
	pf.String("templates-dir", "templates", "directory holding one scaffold per template tag")
	pf.String("env-dir", ".snippet-env", "directory of environment overrides for the build, one variable per file")
	pf.Bool("strict", false, "exit non-zero when any snippet fails to build")

	mustBind("document", pf.Lookup("document"))
	mustBind("language", pf.Lookup("language"))
	mustBind("default_template", pf.Lookup("default-template"))
	mustBind("templates_dir", pf.Lookup("templates-dir"))
	mustBind("build.env_dir", pf.Lookup("env-dir"))
	mustBind("build.strict", pf.Lookup("strict"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("snippet-check")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "snippet-check"))
		}
	}

	viper.SetDefault("build.command", toolchain.DefaultCommand)

	viper.SetEnvPrefix("SNIPPET_CHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func mustBind(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// loadConfig assembles the run configuration from flags, environment, and
// the config file.
func loadConfig() types.CheckConfig {
	return types.CheckConfig{
		ExtractConfig: types.ExtractConfig{
			Document:        viper.GetString("document"),
			Language:        viper.GetString("language"),
			DefaultTemplate: viper.GetString("default_template"),
		},
		TemplatesDir: viper.GetString("templates_dir"),
		Build: types.BuildConfig{
			Command: viper.GetStringSlice("build.command"),
			EnvDir:  viper.GetString("build.env_dir"),
			Strict:  viper.GetBool("build.strict"),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
