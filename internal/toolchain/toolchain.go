// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain runs the external build for generated snippet projects.
// The build tool is opaque: it runs in the project directory with the
// caller's output streams and its exit status is handed back unexamined.
package toolchain

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
)

// DefaultCommand builds a project quietly.
var DefaultCommand = []string{"cargo", "build", "-q"}

// Toolchain builds one project directory at a time.
type Toolchain interface {
	// Name returns the build binary name (e.g. "cargo").
	Name() string

	// Available reports whether the build binary exists on PATH.
	Available() bool

	// Build runs the build command with dir as working directory.
	Build(ctx context.Context, dir string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunIn(ctx context.Context, dir string, env []string, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunIn(ctx context.Context, dir string, env []string, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd.Run()
}

// Options configures a Toolchain.
type Options struct {
	// Command is the binary followed by its arguments. Empty means
	// DefaultCommand.
	Command []string

	// Env holds extra variables added to the inherited environment.
	Env map[string]string

	// Stdout and Stderr receive the build output. Nil means the process's
	// own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// command implements Toolchain for an arbitrary binary and argument list.
type command struct {
	bin    string
	args   []string
	env    []string
	stdout io.Writer
	stderr io.Writer
	exec   executor
}

func (c *command) Name() string { return c.bin }

func (c *command) Available() bool {
	_, err := c.exec.LookPath(c.bin)
	return err == nil
}

func (c *command) Build(ctx context.Context, dir string) error {
	if err := c.exec.RunIn(ctx, dir, c.env, c.bin, c.args, c.stdout, c.stderr); err != nil {
		return fmt.Errorf("running %s in %s: %w", c.bin, dir, err)
	}
	return nil
}

var defaultExec = &osExecutor{}

// New returns a Toolchain for opts.Command.
func New(opts Options) (Toolchain, error) {
	return newCommand(defaultExec, opts)
}

func newCommand(exec executor, opts Options) (*command, error) {
	argv := opts.Command
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	if argv[0] == "" {
		return nil, fmt.Errorf("build command has an empty binary name")
	}

	c := &command{
		bin:    argv[0],
		args:   append([]string(nil), argv[1:]...),
		env:    envList(opts.Env),
		stdout: opts.Stdout,
		stderr: opts.Stderr,
		exec:   exec,
	}
	if c.stdout == nil {
		c.stdout = os.Stdout
	}
	if c.stderr == nil {
		c.stderr = os.Stderr
	}
	return c, nil
}

// envList renders env as sorted KEY=VALUE pairs.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}
