// Package reader dispatches protocol files to a handler based on their
// filetype. Four kinds are supported: plain text, executable scripts,
// office documents, and PDFs. Each kind knows how to show, edit, print,
// and save a protocol in terms of external programs.
package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wetbench/labbook/internal/workspace"
)

// Reader handles one protocol file. Operations that a filetype cannot
// support return UnsupportedError.
type Reader interface {
	// Name identifies the reader in error messages and listings.
	Name() string

	// Extensions lists the file extensions this reader claims.
	Extensions() []string

	// Show displays the protocol: print it, run it, or open a viewer.
	Show(w *workspace.Workspace, out io.Writer) error

	// Edit opens the protocol in the configured editor.
	Edit(w *workspace.Workspace) error

	// Print sends the protocol to the printer via lpr.
	Print(w *workspace.Workspace) error

	// Save writes a date-stamped copy of the protocol into dir for
	// inclusion in the notebook.
	Save(w *workspace.Workspace, dir string) (string, error)
}

// UnsupportedError reports an operation a reader cannot perform, e.g.
// editing a PDF.
type UnsupportedError struct {
	Op     string
	Path   string
	Reader string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("can't %s %q: not supported by the %s reader", e.Op, e.Path, e.Reader)
}

// NoReaderError reports a file no reader claims.
type NoReaderError struct {
	Path  string
	Tried []string
}

func (e *NoReaderError) Error() string {
	return fmt.Sprintf("can't read %q; tried: %s", e.Path, strings.Join(e.Tried, ", "))
}

// constructor builds a reader for a path plus the extra args some
// protocols take (script protocols pass them through to the interpreter).
type constructor func(path string, args []string) Reader

type registration struct {
	name     string
	priority int
	order    int
	build    constructor
	exts     []string
}

// registry is the closed set of protocol filetypes, highest priority
// first, registration order breaking ties.
var registry []registration

func register(name string, priority int, exts []string, build constructor) {
	registry = append(registry, registration{
		name:     name,
		priority: priority,
		order:    len(registry),
		build:    build,
		exts:     exts,
	})
	sort.SliceStable(registry, func(i, j int) bool {
		if registry[i].priority != registry[j].priority {
			return registry[i].priority > registry[j].priority
		}
		return registry[i].order < registry[j].order
	})
}

// Pick returns the reader for path, or NoReaderError naming every reader
// that was tried.
func Pick(path string, args []string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	tried := make([]string, 0, len(registry))

	for _, reg := range registry {
		tried = append(tried, reg.name)
		for _, e := range reg.exts {
			if e == ext {
				return reg.build(path, args), nil
			}
		}
	}
	return nil, &NoReaderError{Path: path, Tried: tried}
}

// KnownExtensions returns every extension any reader claims, sorted.
func KnownExtensions() []string {
	set := make(map[string]bool)
	for _, reg := range registry {
		for _, e := range reg.exts {
			set[e] = true
		}
	}
	exts := make([]string, 0, len(set))
	for e := range set {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// Registered lists reader names with their extensions in dispatch order.
func Registered() []string {
	out := make([]string, len(registry))
	for i, reg := range registry {
		out[i] = fmt.Sprintf("%s: %s", reg.name, strings.Join(reg.exts, " "))
	}
	return out
}
