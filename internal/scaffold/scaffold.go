// Package scaffold creates the directory layout for a new lab-notebook
// project.
package scaffold

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/wetbench/labbook/internal/workspace"
)

// Result describes what Create produced.
type Result struct {
	Root           string
	GitInitialized bool // whether the initial git commit was made
}

// ExistsError is returned when the target project directory already
// exists; init never overwrites.
type ExistsError struct {
	Dir string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("refusing to overwrite existing directory %q", e.Dir)
}

// Create lays out a new project named after the title's slug inside
// parentDir: the five standard directories, a seeded config file, a
// README, a Sphinx notebook skeleton, and a .gitignore. A git repository
// is initialized with an initial commit when git is available; its
// absence is not an error. Creation is not transactional: a failure
// partway leaves whatever was already written.
func Create(parentDir, title string) (*Result, error) {
	slug := workspace.SlugFromTitle(title)
	if slug == "" {
		return nil, fmt.Errorf("title %q reduces to an empty slug", title)
	}

	root := filepath.Join(parentDir, slug)
	if _, err := os.Stat(root); err == nil {
		return nil, &ExistsError{Dir: root}
	}

	dirs := []string{
		workspace.AnalysisDirName,
		workspace.DataDirName,
		workspace.DocumentsDirName,
		filepath.Join(workspace.NotebookDirName, "build"),
		workspace.ProtocolsDirName,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	files := map[string]string{
		workspace.RCFileName: rcFileContent,
		"README.rst":         readmeContent(title),
		".gitignore":         gitignoreContent,
		filepath.Join(workspace.NotebookDirName, "index.rst"): indexContent(title),
		filepath.Join(workspace.NotebookDirName, "conf.py"):   confContent(title),
		filepath.Join(workspace.NotebookDirName, "Makefile"):  makefileContent,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	result := &Result{Root: root}
	result.GitInitialized = initGit(root)
	return result, nil
}

// initGit makes the project a git repository with an initial commit.
// Returns false when git is missing or any step fails; scaffolding
// already succeeded at that point, so this is best-effort.
func initGit(root string) bool {
	if _, err := exec.LookPath("git"); err != nil {
		return false
	}
	for _, argv := range [][]string{
		{"git", "init"},
		{"git", "add", "."},
		{"git", "commit", "-m", "Initial commit."},
	} {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Dir = root
		if err := cmd.Run(); err != nil {
			return false
		}
	}
	return true
}

const rcFileContent = `# Project configuration for labbook. Options set here override the
# user-wide and site-wide config files.
#
# editor: vim
# terminal: xterm
# pdf: evince
# browser: firefox
#
# Shared protocol directories, searched after protocols/:
# protocol_dirs:
#   - ~/lab/protocols
#
# Data sources for ` + "`labbook data sync`" + `:
# data:
#   - type: rsync
#     src: server:/srv/sequencing/
#     dest: sequencing
#   - type: usb
#     src: ~/usb/gels
#     dest: gels
#     mountpoint: ~/usb
`

const gitignoreContent = `data/
documents/
notebook/build/
.labbook/
`

const makefileContent = `SPHINXBUILD   = sphinx-build
SOURCEDIR     = .
BUILDDIR      = build

html:
	$(SPHINXBUILD) -b html "$(SOURCEDIR)" "$(BUILDDIR)/html"

clean:
	rm -rf "$(BUILDDIR)"

.PHONY: html clean
`

func readmeContent(title string) string {
	bar := strings.Repeat("*", len([]rune(title)))
	return fmt.Sprintf(`%s
%s
%s

A lab-notebook project managed with labbook.

- analysis/: code used for data analysis.
- data/: every data file you collect; link the relevant ones into
  experiments with %s.
- documents/: presentations, papers, and the like.
- notebook/: one directory per experiment, rendered with Sphinx.
- protocols/: text files, scripts, spreadsheets, whatever you follow
  at the bench.
`, bar, title, bar, "`labbook data link`")
}

func indexContent(title string) string {
	bar := strings.Repeat("*", len([]rune(title)))
	return fmt.Sprintf(`%s
%s
%s

.. toctree::
   :glob:

   */*
`, bar, title, bar)
}

func confContent(title string) string {
	return fmt.Sprintf(`project = %q
copyright = '%d'
extensions = []
exclude_patterns = ['build']
html_theme = 'alabaster'
`, title, time.Now().Year())
}
