// SPDX-License-Identifier: MPL-2.0

// Package discovery finds compose projects under a root directory.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"stevedore-cli/internal/compose"
)

// DefaultMaxDepth bounds traversal when no explicit depth is configured.
// Compose mono-repos keep projects at the first or second level; anything
// deeper is almost always vendored or generated content.
const DefaultMaxDepth = 2

// ErrRootNotFound is the sentinel error wrapped by NotFoundError.
var ErrRootNotFound = errors.New("root directory not found")

type (
	// Project is one discovered compose project.
	Project struct {
		// Name identifies the project; it is the base name of Dir.
		Name string
		// Dir is the absolute path of the directory owning the compose file.
		Dir string
		// File is the absolute path of the project's compose file.
		File string
	}

	// NotFoundError is returned when the traversal root does not exist or
	// is not a directory. It is fatal to the whole run: no project has
	// been touched yet when it is raised.
	NotFoundError struct {
		Path string
	}

	// Discoverer walks a directory tree, depth-bounded, collecting
	// compose project definitions.
	Discoverer struct {
		maxDepth int
		logger   *log.Logger
	}

	// Option configures a Discoverer.
	Option func(*Discoverer)
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("root directory %q does not exist", e.Path)
}

// Unwrap returns ErrRootNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrRootNotFound }

// WithMaxDepth bounds how many directory levels below the root are
// searched. Zero means only the root directory itself.
func WithMaxDepth(depth int) Option {
	return func(d *Discoverer) {
		d.maxDepth = depth
	}
}

// WithLogger sets the logger used for non-fatal traversal warnings.
func WithLogger(logger *log.Logger) Option {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// New creates a Discoverer with DefaultMaxDepth and the default logger.
func New(opts ...Option) *Discoverer {
	d := &Discoverer{
		maxDepth: DefaultMaxDepth,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover walks root and returns every compose project found within the
// configured depth, in lexical traversal order. The result contains no
// duplicates: a directory holding both accepted compose file names yields
// one project for the preferred name, with a warning for the shadowed one.
//
// Unreadable subdirectories are skipped with a warning; only a missing or
// unreadable root is fatal.
func (d *Discoverer) Discover(root string) ([]Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: root}
		}
		return nil, fmt.Errorf("stat root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, &NotFoundError{Path: root}
	}

	var projects []Project
	seen := make(map[string]bool) // project dir -> already collected

	err = filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == absRoot {
				return fmt.Errorf("read root %q: %w", root, walkErr)
			}
			d.logger.Warn("skipping unreadable path", "path", path, "err", walkErr)
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		depth := relativeDepth(absRoot, path)
		if entry.IsDir() {
			if depth > d.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !isComposeFileName(entry.Name()) {
			return nil
		}

		dir := filepath.Dir(path)
		if seen[dir] {
			d.logger.Warn("ignoring shadowed compose file",
				"file", path, "preferred", filepath.Join(dir, compose.CanonicalFileName))
			return nil
		}
		seen[dir] = true

		projects = append(projects, Project{
			Name: filepath.Base(dir),
			Dir:  dir,
			File: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// relativeDepth returns how many directory levels path sits below root.
// The root itself is depth zero.
func relativeDepth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// isComposeFileName reports whether name is one of the accepted canonical
// compose file names.
func isComposeFileName(name string) bool {
	for _, accepted := range compose.FileNames() {
		if name == accepted {
			return true
		}
	}
	return false
}
