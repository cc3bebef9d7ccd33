package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// NoteFileName is the file whose presence marks a notebook subdirectory as
// an experiment.
const NoteFileName = "notes.rst"

// Experiment is a directory under notebook/ holding everything relevant to
// a single experiment: notes, linked data, scripts.
type Experiment struct {
	work *Workspace
	root string
}

// ExperimentExistsError is returned when creating an experiment whose
// directory already exists.
type ExperimentExistsError struct {
	Dir string
}

func (e *ExperimentExistsError) Error() string {
	return fmt.Sprintf("experiment %q already exists; use `labbook edit` instead", filepath.Base(e.Dir))
}

// ID is the experiment's identifier: its directory name, normally a
// date-prefixed slug like 20171210_large_step_with_half_twist.
func (e *Experiment) ID() string {
	return filepath.Base(e.root)
}

// Dir returns the experiment's directory.
func (e *Experiment) Dir() string {
	return e.root
}

// NotePath returns the path of the experiment's notebook entry.
func (e *Experiment) NotePath() string {
	return filepath.Join(e.root, NoteFileName)
}

// Title reads the experiment title out of the note file, which follows the
// RST convention of an over- and underlined first heading.
func (e *Experiment) Title() string {
	data, err := os.ReadFile(e.NotePath())
	if err != nil {
		return ""
	}
	lines := strings.SplitN(string(data), "\n", 3)
	if len(lines) < 2 {
		return ""
	}
	return strings.TrimSpace(lines[1])
}

// Experiments lists every experiment in the notebook directory,
// recursively, in directory-walk order.
func (w *Workspace) Experiments() ([]*Experiment, error) {
	var expts []*Experiment

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			sub := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(filepath.Join(sub, NoteFileName)); err == nil {
				expts = append(expts, &Experiment{work: w, root: sub})
				if err := walk(sub); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(w.NotebookDir()); err != nil {
		return nil, err
	}
	return expts, nil
}

// experimentEntries adapts the experiment list for the resolver.
func (w *Workspace) experimentEntries() ([]Entry, []*Experiment, error) {
	expts, err := w.Experiments()
	if err != nil {
		return nil, nil, err
	}

	entries := make([]Entry, len(expts))
	for i, e := range expts {
		var mtime time.Time
		if info, err := os.Stat(e.Dir()); err == nil {
			mtime = info.ModTime()
		}
		entries[i] = Entry{ID: e.ID(), Path: e.Dir(), ModTime: mtime}
	}
	return entries, expts, nil
}

// PickExperiment resolves a slug to a single experiment. An empty slug
// picks the most recently modified one.
func (w *Workspace) PickExperiment(slug string) (*Experiment, error) {
	entries, expts, err := w.experimentEntries()
	if err != nil {
		return nil, err
	}

	entry, err := Resolve(entries, slug, "experiments")
	if err != nil {
		return nil, err
	}
	for _, e := range expts {
		if e.Dir() == entry.Path {
			return e, nil
		}
	}
	return nil, &NotFoundError{Kind: "experiments", Slug: slug}
}

// ListExperiments returns experiments whose ID contains the slug, newest
// first. An empty slug lists everything.
func (w *Workspace) ListExperiments(slug string) ([]*Experiment, error) {
	entries, expts, err := w.experimentEntries()
	if err != nil {
		return nil, err
	}

	byPath := make(map[string]*Experiment, len(expts))
	for _, e := range expts {
		byPath[e.Dir()] = e
	}

	needle := strings.ToLower(slug)
	matched := entries[:0]
	for _, entry := range entries {
		if slug == "" || strings.Contains(strings.ToLower(entry.ID), needle) {
			matched = append(matched, entry)
		}
	}
	SortByModTime(matched)

	result := make([]*Experiment, 0, len(matched))
	for _, entry := range matched {
		result = append(result, byPath[entry.Path])
	}
	return result, nil
}

// NewExperiment creates a notebook directory named <ymd>_<slug> with a
// blank RST note whose title is over- and underlined, and returns the new
// experiment. Fails if the directory already exists.
func (w *Workspace) NewExperiment(title string) (*Experiment, error) {
	slug := SlugFromTitle(title)
	if slug == "" {
		return nil, fmt.Errorf("title %q reduces to an empty slug", title)
	}

	dir := filepath.Join(w.NotebookDir(), fmt.Sprintf("%s_%s", ymd(time.Now()), slug))
	if _, err := os.Stat(dir); err == nil {
		return nil, &ExperimentExistsError{Dir: dir}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create experiment directory: %w", err)
	}

	bar := strings.Repeat("*", len([]rune(title)))
	note := fmt.Sprintf("%s\n%s\n%s\n", bar, title, bar)
	notePath := filepath.Join(dir, NoteFileName)
	if err := os.WriteFile(notePath, []byte(note), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write note file: %w", err)
	}

	return &Experiment{work: w, root: dir}, nil
}

// SlugFromTitle turns a human title into a directory-safe slug: letters
// and digits are lowercased, spaces/underscores/hyphens become
// underscores, anything else is dropped.
func SlugFromTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case r == ' ' || r == '_' || r == '-':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// ymd formats a time the way experiment directories are prefixed.
func ymd(t time.Time) string {
	return t.Format("20060102")
}
