// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/snippet-check/pkg/types"
)

const slides = `# Intro

<!--- snippet-name: demo -->
` + "```rust" + `
fn main() {}
` + "```" + `
`

// setupProject writes a slide deck and a "program" template into a temp
// directory and points the configuration at them.
func setupProject(t *testing.T, command []string, strict bool) {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "slides.md"), []byte(slides), 0o644))
	src := filepath.Join(dir, "templates", "program", "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "program", "Cargo.toml"),
		[]byte("[package]\nname = \"REPLACENAME\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.rs"), []byte("/// ADD CODE\n"), 0o644))

	viper.Set("document", filepath.Join(dir, "slides.md"))
	viper.Set("language", "rust")
	viper.Set("default_template", "program")
	viper.Set("templates_dir", filepath.Join(dir, "templates"))
	viper.Set("build.command", command)
	viper.Set("build.env_dir", filepath.Join(dir, ".snippet-env"))
	viper.Set("build.strict", strict)
}

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestLoadConfig(t *testing.T) {
	setupProject(t, []string{"cargo", "check"}, true)

	cfg := loadConfig()
	assert.Equal(t, "rust", cfg.Language)
	assert.Equal(t, "program", cfg.DefaultTemplate)
	assert.Equal(t, []string{"cargo", "check"}, cfg.Build.Command)
	assert.True(t, cfg.Build.Strict)
}

func TestRunCheck_BuildFailureKeepsExitStatus(t *testing.T) {
	requireSh(t)
	setupProject(t, []string{"sh", "-c", "exit 1"}, false)

	checkCmd.SetContext(context.Background())
	assert.NoError(t, runCheck(checkCmd, nil))
}

func TestRunCheck_StrictReportsFailures(t *testing.T) {
	requireSh(t)
	setupProject(t, []string{"sh", "-c", "exit 1"}, true)

	checkCmd.SetContext(context.Background())
	err := runCheck(checkCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 snippet(s) failed")
}

func TestRunCheck_StrictPasses(t *testing.T) {
	requireSh(t)
	setupProject(t, []string{"sh", "-c", "grep -q 'fn main' src/main.rs"}, true)

	checkCmd.SetContext(context.Background())
	assert.NoError(t, runCheck(checkCmd, nil))
}

func TestRunCheck_MissingDocument(t *testing.T) {
	setupProject(t, []string{"true"}, false)
	viper.Set("document", filepath.Join(t.TempDir(), "absent.md"))

	checkCmd.SetContext(context.Background())
	err := runCheck(checkCmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteSnippetsYAML(t *testing.T) {
	in := []types.Snippet{
		{Name: "a", Line: 4, Template: "program", Code: "fn main() {}"},
		{Name: "b", Line: 12, Template: "lib", Code: "pub fn f() {}\npub fn g() {}"},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSnippetsYAML(&buf, in))

	var out []types.Snippet
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in, out)
	assert.Contains(t, buf.String(), "template: lib")
}

func TestWriteSnippetsYAML_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnippetsYAML(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}
