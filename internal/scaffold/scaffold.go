// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scaffold turns extracted snippets into buildable projects. Each
// snippet gets a copy of its template directory with the snippet spliced in
// at the insertion marker, and all projects are listed in one workspace
// manifest so they share a build cache.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/snippet-check/pkg/types"
)

const (
	// InsertMarker is replaced with the snippet code in every template file
	// that contains it.
	InsertMarker = "/// ADD CODE"

	// buildOutputDir is the build tool's output directory inside a template.
	// It is removed before copying so stale artifacts never reach the scratch
	// workspace.
	buildOutputDir = "target"
)

var (
	// ErrTemplateNotFound is returned when a snippet names a template that
	// has no directory under the templates root.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateSnippet is returned when a project directory for the
	// snippet name already exists in the scratch workspace.
	ErrDuplicateSnippet = errors.New("duplicate snippet name")
)

// ProjectDir returns the directory a snippet is materialized into.
func ProjectDir(scratchDir string, s types.Snippet) string {
	return filepath.Join(scratchDir, s.Name)
}

// Materialize copies the snippet's template into scratchDir/<name>, splices
// the snippet code into every file holding InsertMarker, and renames the
// project in its manifest. It returns the project directory.
//
// Symbolic links in the template tree are copied as links, not followed.
// Only regular files are searched for InsertMarker, so a link to a file in
// the same template sees the spliced code through its target. A link the
// copy cannot reproduce fails the copy and the error is returned.
func Materialize(s types.Snippet, templatesDir, scratchDir string) (string, error) {
	tmplDir := filepath.Join(templatesDir, s.Template)
	info, err := os.Stat(tmplDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("snippet %s: %w: %s", s.Name, ErrTemplateNotFound, tmplDir)
		}
		return "", fmt.Errorf("snippet %s: reading template %s: %w", s.Name, tmplDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("snippet %s: %w: %s is not a directory", s.Name, ErrTemplateNotFound, tmplDir)
	}

	if err := removeBuildOutput(tmplDir); err != nil {
		return "", err
	}

	projDir := ProjectDir(scratchDir, s)
	if err := os.Mkdir(projDir, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("snippet %s at line %d: %w: %s already exists", s.Name, s.Line, ErrDuplicateSnippet, projDir)
		}
		return "", fmt.Errorf("creating project directory %s: %w", projDir, err)
	}

	if err := os.CopyFS(projDir, os.DirFS(tmplDir)); err != nil {
		return "", fmt.Errorf("copying template %s to %s: %w", tmplDir, projDir, err)
	}

	if err := insertSnippet(projDir, s); err != nil {
		return "", err
	}
	if err := RenameProject(projDir, s.Name); err != nil {
		return "", err
	}
	return projDir, nil
}

// removeBuildOutput deletes a previously built output directory from the
// template. A missing directory is expected; any other failure is returned.
func removeBuildOutput(tmplDir string) error {
	out := filepath.Join(tmplDir, buildOutputDir)
	if err := os.RemoveAll(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing build output %s: %w", out, err)
	}
	return nil
}

// Padding returns the text placed before a snippet so that its first line
// lands line-1 lines below the marker. Compiler diagnostics then report line
// numbers close to the snippet's position in the slide deck.
func Padding(line int) string {
	if line <= 1 {
		return ""
	}
	return strings.Repeat("\n", line-1)
}

// insertSnippet walks projDir and replaces InsertMarker in every regular
// file that contains it.
func insertSnippet(projDir string, s types.Snippet) error {
	replacement := []byte(Padding(s.Line) + s.Code)
	marker := []byte(InsertMarker)

	return filepath.WalkDir(projDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if !bytes.Contains(data, marker) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		data = bytes.ReplaceAll(data, marker, replacement)
		if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		return nil
	})
}
