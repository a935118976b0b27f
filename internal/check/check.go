// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package check runs the snippet pipeline end to end: materialize every
// snippet into a scratch workspace, write the workspace manifest, and build
// each project in document order.
package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/snippet-check/internal/scaffold"
	"github.com/pdiddy/snippet-check/internal/toolchain"
	"github.com/pdiddy/snippet-check/pkg/types"
)

// Result is the outcome of one snippet build.
type Result struct {
	Snippet types.Snippet
	Dir     string
	// Err is the error returned by the build, if any. It is recorded, not
	// acted on.
	Err error
}

// Report holds the outcome of a check run.
type Report struct {
	Results []Result
}

// Attempted returns the number of builds started.
func (r Report) Attempted() int {
	return len(r.Results)
}

// Failed returns the number of builds that returned an error.
func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Err != nil {
			n++
		}
	}
	return n
}

// HasFailures reports whether any build failed.
func (r Report) HasFailures() bool {
	return r.Failed() > 0
}

// Options controls where a run reads templates and writes projects.
type Options struct {
	// TemplatesDir contains one directory per template tag.
	TemplatesDir string

	// ScratchRoot is the parent of the temporary workspace. Empty means the
	// system temp directory.
	ScratchRoot string
}

// Run materializes and builds snippets. The scratch workspace is removed
// before Run returns, on success or error. Any materialization failure
// aborts the run; build failures only land in the Report.
func Run(ctx context.Context, snippets []types.Snippet, opts Options, tc toolchain.Toolchain, w io.Writer) (Report, error) {
	var report Report

	scratch, err := os.MkdirTemp(opts.ScratchRoot, "snippet-check-")
	if err != nil {
		return report, fmt.Errorf("creating scratch workspace: %w", err)
	}
	defer os.RemoveAll(scratch)

	dirs := make([]string, len(snippets))
	for i, s := range snippets {
		dir, err := scaffold.Materialize(s, opts.TemplatesDir, scratch)
		if err != nil {
			return report, err
		}
		dirs[i] = dir
	}

	if _, err := scaffold.WriteWorkspace(scratch, snippets); err != nil {
		return report, err
	}

	for i, s := range snippets {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("check interrupted before snippet %s: %w", s.Name, err)
		}
		fmt.Fprintf(w, "Testing snippet %s at line %d\n", s.Name, s.Line)
		report.Results = append(report.Results, Result{
			Snippet: s,
			Dir:     dirs[i],
			Err:     tc.Build(ctx, dirs[i]),
		})
	}
	return report, nil
}
