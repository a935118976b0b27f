// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package buildenv loads environment overrides for snippet builds from a
// directory of plain-text files. Each file is one variable: the filename is
// the variable name and the trimmed file contents are its value, e.g.
// .snippet-env/RUSTFLAGS containing "-D warnings".
package buildenv

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// validName matches names a shell would accept as environment variables.
var validName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Load reads all files in dir and returns a map of variable name to value.
// A missing directory is not an error; Load returns an empty map. Files that
// cannot be read or are not valid variable names produce a warning on warn
// and are skipped.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading build environment directory %s: %w", dir, err)
	}

	env := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !validName.MatchString(name) {
			fmt.Fprintf(warn, "warning: ignoring build env file %s: not a variable name\n", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read build env %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			env[name] = value
		}
	}

	return env, nil
}
