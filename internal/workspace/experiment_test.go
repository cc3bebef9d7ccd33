package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSlugFromTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Small Step", "small_step"},
		{"punctuation dropped", "Large Step, With Half-Twist!", "large_step_with_half_twist"},
		{"underscores kept", "already_a_slug", "already_a_slug"},
		{"digits kept", "Run 42", "run_42"},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugFromTitle(tt.title); got != tt.want {
				t.Errorf("SlugFromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestNewExperimentCreatesDatePrefixedDirWithNote(t *testing.T) {
	root := makeWorkspace(t)
	w, err := FromDir(root)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}

	expt, err := w.NewExperiment("Small Step")
	if err != nil {
		t.Fatalf("NewExperiment() error = %v", err)
	}

	wantPrefix := time.Now().Format("20060102") + "_"
	if !strings.HasPrefix(expt.ID(), wantPrefix) || !strings.HasSuffix(expt.ID(), "small_step") {
		t.Errorf("ID() = %q, want %ssmall_step", expt.ID(), wantPrefix)
	}

	data, err := os.ReadFile(expt.NotePath())
	if err != nil {
		t.Fatalf("reading note: %v", err)
	}
	want := "**********\nSmall Step\n**********\n"
	if string(data) != want {
		t.Errorf("note = %q, want %q", data, want)
	}
	if expt.Title() != "Small Step" {
		t.Errorf("Title() = %q, want %q", expt.Title(), "Small Step")
	}
}

func TestNewExperimentRefusesExisting(t *testing.T) {
	root := makeWorkspace(t)
	w, err := FromDir(root)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}

	if _, err := w.NewExperiment("Small Step"); err != nil {
		t.Fatalf("first NewExperiment() error = %v", err)
	}

	_, err = w.NewExperiment("Small Step")
	var exists *ExperimentExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("second NewExperiment() error = %v, want ExperimentExistsError", err)
	}
}

// addExperiment creates an experiment directory directly, bypassing the
// date prefix so tests control identifiers exactly.
func addExperiment(t *testing.T, root, id string, mtime time.Time) {
	t.Helper()
	dir := filepath.Join(root, NotebookDirName, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, NoteFileName), []byte("==\nx\n==\n"), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}
	if err := os.Chtimes(dir, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestExperimentsSkipsDirsWithoutNotes(t *testing.T) {
	root := makeWorkspace(t)
	now := time.Now()
	addExperiment(t, root, "20171005_small_step", now)
	if err := os.MkdirAll(filepath.Join(root, NotebookDirName, "build"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := FromDir(root)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}
	expts, err := w.Experiments()
	if err != nil {
		t.Fatalf("Experiments() error = %v", err)
	}
	if len(expts) != 1 || expts[0].ID() != "20171005_small_step" {
		t.Errorf("Experiments() = %d entries, want just the real experiment", len(expts))
	}
}

func TestPickExperiment(t *testing.T) {
	root := makeWorkspace(t)
	old := time.Now().Add(-48 * time.Hour)
	addExperiment(t, root, "20171005_small_step", old)
	addExperiment(t, root, "20171210_large_step_with_half_twist", time.Now())

	w, err := FromDir(root)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}

	t.Run("unique slug", func(t *testing.T) {
		expt, err := w.PickExperiment("twist")
		if err != nil {
			t.Fatalf("PickExperiment() error = %v", err)
		}
		if expt.ID() != "20171210_large_step_with_half_twist" {
			t.Errorf("PickExperiment() = %q", expt.ID())
		}
	})

	t.Run("empty slug picks newest", func(t *testing.T) {
		expt, err := w.PickExperiment("")
		if err != nil {
			t.Fatalf("PickExperiment() error = %v", err)
		}
		if expt.ID() != "20171210_large_step_with_half_twist" {
			t.Errorf("PickExperiment() = %q, want the newest", expt.ID())
		}
	})

	t.Run("ambiguous slug", func(t *testing.T) {
		_, err := w.PickExperiment("step")
		var amb *AmbiguousSlugError
		if !errors.As(err, &amb) {
			t.Fatalf("PickExperiment() error = %v, want AmbiguousSlugError", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		_, err := w.PickExperiment("zz")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("PickExperiment() error = %v, want NotFoundError", err)
		}
	})
}

func TestListExperimentsNewestFirst(t *testing.T) {
	root := makeWorkspace(t)
	now := time.Now()
	addExperiment(t, root, "20171005_small_step", now.Add(-48*time.Hour))
	addExperiment(t, root, "20171210_large_step_with_half_twist", now)

	w, err := FromDir(root)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}
	expts, err := w.ListExperiments("step")
	if err != nil {
		t.Fatalf("ListExperiments() error = %v", err)
	}
	if len(expts) != 2 {
		t.Fatalf("ListExperiments() = %d entries, want 2", len(expts))
	}
	if expts[0].ID() != "20171210_large_step_with_half_twist" {
		t.Errorf("newest first, got %q", expts[0].ID())
	}
}
