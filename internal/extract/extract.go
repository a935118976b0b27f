// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scans a slide deck for fenced code blocks and returns them
// as named snippets. Only three line shapes are recognized: a fence opening
// for the configured language, and the snippet-template and snippet-name
// comment markers. Everything else is either code (inside a fence) or ignored.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdiddy/snippet-check/pkg/types"
)

const (
	// DefaultLanguage is the fence language collected when none is configured.
	DefaultLanguage = "rust"
	// DefaultTemplate applies to blocks without a template selector.
	DefaultTemplate = "program"

	fence = "```"
)

var (
	templateMarker = regexp.MustCompile(`^<!--- snippet-template: ([^ ]+) -->`)
	nameMarker     = regexp.MustCompile(`^<!--- snippet-name: ([^ ]+) -->`)
)

// Options controls which fences are collected.
type Options struct {
	// Language is the fence tag to collect (e.g. "rust").
	Language string
	// DefaultTemplate is assigned to blocks opened without a pending
	// template selector.
	DefaultTemplate string
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.DefaultTemplate == "" {
		o.DefaultTemplate = DefaultTemplate
	}
	return o
}

// OptionsFrom derives scan options from the extract stage configuration.
func OptionsFrom(cfg types.ExtractConfig) Options {
	return Options{Language: cfg.Language, DefaultTemplate: cfg.DefaultTemplate}
}

// scanState is the accumulator threaded through one scan. The pending name
// applies to the block currently open or, outside a fence, the next one. The
// pending template is captured at each fence open.
type scanState struct {
	inFence bool

	pendingTemplate string
	pendingName     string

	// blockTemplate is fixed when the fence opens.
	blockTemplate string
	lines         []string
}

// closeBlock ends the current block. The pending template is kept: a
// selector applies to every later fence until the next selector.
func (s *scanState) closeBlock() {
	s.inFence = false
	s.pendingName = ""
	s.blockTemplate = ""
	s.lines = nil
}

// Parse reads a document from r and returns its named snippets in document
// order. Blocks closed without a preceding name marker are dropped, and a
// block still open at end of input yields nothing.
func Parse(r io.Reader, opts Options) ([]types.Snippet, error) {
	opts = opts.withDefaults()
	open := fence + opts.Language

	var (
		st       scanState
		snippets []types.Snippet
	)
	st.pendingTemplate = opts.DefaultTemplate

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNr := 0
	for sc.Scan() {
		lineNr++
		line := strings.TrimRight(sc.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if !st.inFence && trimmed == open {
			st.inFence = true
			st.blockTemplate = st.pendingTemplate
			st.lines = st.lines[:0]
			continue
		}

		// Marker lines are metadata, never snippet code.
		if m := templateMarker.FindStringSubmatch(trimmed); m != nil {
			st.pendingTemplate = m[1]
			continue
		}
		if m := nameMarker.FindStringSubmatch(trimmed); m != nil {
			st.pendingName = m[1]
			continue
		}

		if !st.inFence {
			continue
		}

		if trimmed == fence {
			if st.pendingName != "" {
				snippets = append(snippets, types.Snippet{
					Name:     st.pendingName,
					Line:     lineNr,
					Template: st.blockTemplate,
					Code:     strings.Join(st.lines, "\n"),
				})
			}
			st.closeBlock()
			continue
		}
		st.lines = append(st.lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning document at line %d: %w", lineNr+1, err)
	}
	return snippets, nil
}

// ParseFile opens the document at path and parses it.
func ParseFile(path string, opts Options) ([]types.Snippet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer f.Close()

	snippets, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return snippets, nil
}
