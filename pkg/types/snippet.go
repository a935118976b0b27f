// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Snippet is one named code block extracted from a slide deck. Snippets are
// produced in document order and never modified after extraction.
type Snippet struct {
	// Name identifies the snippet and names its generated project directory.
	// It must be unique within one document.
	Name string `json:"name" yaml:"name"`

	// Line is the 1-based line number of the fence that closed the block.
	Line int `json:"line" yaml:"line"`

	// Template is the scaffold directory the snippet is built in
	// (e.g. "program" or "lib").
	Template string `json:"template" yaml:"template"`

	// Code is the block body, lines joined with "\n".
	Code string `json:"code" yaml:"code"`
}
