// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractConfig holds settings for scanning the slide deck.
type ExtractConfig struct {
	// Document is the path of the slide deck (default "slides.md").
	Document string `json:"document" yaml:"document"`

	// Language is the fence language tag whose blocks are collected
	// (default "rust"). Blocks tagged with any other language are ignored.
	Language string `json:"language" yaml:"language"`

	// DefaultTemplate applies to blocks with no preceding template
	// selector (default "program").
	DefaultTemplate string `json:"default_template" yaml:"default_template"`
}

// BuildConfig holds settings for the external build run per project.
type BuildConfig struct {
	// Command is the build binary followed by its arguments
	// (default ["cargo", "build", "-q"]).
	Command []string `json:"command" yaml:"command"`

	// EnvDir is a directory of one-variable-per-file environment overrides
	// passed to every build (default ".snippet-env").
	EnvDir string `json:"env_dir" yaml:"env_dir"`

	// Strict turns recorded build failures into a run error. Off by
	// default: a failing build does not change the exit status.
	Strict bool `json:"strict" yaml:"strict"`
}

// CheckConfig groups all settings for one snippet-check run.
type CheckConfig struct {
	ExtractConfig `yaml:",inline"`
	Build         BuildConfig `json:"build" yaml:"build"`

	// TemplatesDir contains one scaffold directory per template tag
	// (default "templates").
	TemplatesDir string `json:"templates_dir" yaml:"templates_dir"`
}
