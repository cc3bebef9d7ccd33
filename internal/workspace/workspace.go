// Package workspace locates lab-notebook projects on disk and resolves the
// experiments, protocols, and data files they contain.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// RCFileName is the per-project configuration file that, together with the
// five standard directories, marks a directory as a workspace root.
const RCFileName = ".labbookrc"

// The standard top-level directories of a workspace. Commands rely on these
// names; everything else about the layout is up to the user.
const (
	AnalysisDirName  = "analysis"
	DataDirName      = "data"
	DocumentsDirName = "documents"
	NotebookDirName  = "notebook"
	ProtocolsDirName = "protocols"
)

// NotFoundDirError indicates no workspace root was found above a directory.
type NotFoundDirError struct {
	Dir string
}

func (e *NotFoundDirError) Error() string {
	return fmt.Sprintf("%q is not inside a workspace", e.Dir)
}

// Workspace is a project directory with the standard layout. The zero value
// is not usable; construct one with FromDir, FromCwd, or Open.
type Workspace struct {
	root   string
	config *Config
}

// Open creates a workspace rooted at dir without searching parent
// directories or requiring the layout to exist. Used by init and by
// commands that tolerate running outside a project.
func Open(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	w := &Workspace{root: abs}
	cfg, err := LoadConfig(w.RCFile())
	if err != nil {
		return nil, err
	}
	w.config = cfg
	return w, nil
}

// FromDir finds the workspace containing dir by walking up the directory
// tree until a directory with the standard layout is found. Returns
// NotFoundDirError if the walk reaches the filesystem root first.
func FromDir(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	for cand := abs; ; {
		if hasProjectFiles(cand) {
			return Open(cand)
		}
		parent := filepath.Dir(cand)
		if parent == cand {
			return nil, &NotFoundDirError{Dir: abs}
		}
		cand = parent
	}
}

// FromCwd is FromDir starting at the current working directory.
func FromCwd() (*Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return FromDir(cwd)
}

// FromDirLenient behaves like FromDir but falls back to a workspace rooted
// at dir when no project is found. Commands that can work outside a
// project (protocol lookup via shared dirs, debug) use this.
func FromDirLenient(dir string) (*Workspace, error) {
	w, err := FromDir(dir)
	if err == nil {
		return w, nil
	}
	var nf *NotFoundDirError
	if errors.As(err, &nf) {
		return Open(dir)
	}
	return nil, err
}

// hasProjectFiles reports whether dir holds the workspace layout: the
// rcfile plus all five standard directories.
func hasProjectFiles(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, RCFileName)); err != nil {
		return false
	}
	for _, sub := range []string{AnalysisDirName, DataDirName, DocumentsDirName, NotebookDirName, ProtocolsDirName} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// Root returns the absolute path of the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// Config returns the merged configuration for this workspace.
func (w *Workspace) Config() *Config {
	return w.config
}

// RCFile returns the path of the project config file, which may not exist.
func (w *Workspace) RCFile() string {
	return filepath.Join(w.root, RCFileName)
}

// AnalysisDir returns the path of the analysis directory.
func (w *Workspace) AnalysisDir() string {
	return filepath.Join(w.root, AnalysisDirName)
}

// DataDir returns the path of the data directory.
func (w *Workspace) DataDir() string {
	return filepath.Join(w.root, DataDirName)
}

// DocumentsDir returns the path of the documents directory.
func (w *Workspace) DocumentsDir() string {
	return filepath.Join(w.root, DocumentsDirName)
}

// NotebookDir returns the path of the notebook directory.
func (w *Workspace) NotebookDir() string {
	return filepath.Join(w.root, NotebookDirName)
}

// ProtocolsDir returns the path of the in-project protocols directory.
func (w *Workspace) ProtocolsDir() string {
	return filepath.Join(w.root, ProtocolsDirName)
}

// NotebookHTMLIndex returns the path of the rendered notebook index page.
func (w *Workspace) NotebookHTMLIndex() string {
	return filepath.Join(w.NotebookDir(), "build", "html", "index.html")
}

// StateDir returns the hidden directory holding workspace state such as
// the sync history. It is created on demand.
func (w *Workspace) StateDir() (string, error) {
	dir := filepath.Join(w.root, ".labbook")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return dir, nil
}
