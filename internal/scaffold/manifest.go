// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/pdiddy/snippet-check/pkg/types"
)

const (
	// ManifestFile is the per-project and workspace manifest name.
	ManifestFile = "Cargo.toml"

	// NamePlaceholder is replaced with the snippet name in each project
	// manifest.
	NamePlaceholder = "REPLACENAME"
)

// Workspace is the root manifest written above all generated projects.
type Workspace struct {
	Workspace WorkspaceTable `toml:"workspace"`
}

// WorkspaceTable is the [workspace] table of the root manifest.
type WorkspaceTable struct {
	Members []string `toml:"members"`
}

// RenameProject replaces NamePlaceholder with name in projDir's manifest.
func RenameProject(projDir, name string) error {
	path := filepath.Join(projDir, ManifestFile)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("project manifest %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	content := strings.ReplaceAll(string(data), NamePlaceholder, name)
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteWorkspace writes scratchDir/Cargo.toml listing every snippet as a
// workspace member, in the order given.
func WriteWorkspace(scratchDir string, snippets []types.Snippet) (string, error) {
	ws := Workspace{Workspace: WorkspaceTable{Members: make([]string, 0, len(snippets))}}
	for _, s := range snippets {
		ws.Workspace.Members = append(ws.Workspace.Members, s.Name)
	}

	data, err := toml.Marshal(ws)
	if err != nil {
		return "", fmt.Errorf("encoding workspace manifest: %w", err)
	}

	path := filepath.Join(scratchDir, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing workspace manifest %s: %w", path, err)
	}
	return path, nil
}
