package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wetbench/labbook/internal/scaffold"
	"github.com/wetbench/labbook/internal/workspace"
)

// makeProject scaffolds a project and points the CLI at it.
func makeProject(t *testing.T) string {
	t.Helper()
	res, err := scaffold.Create(t.TempDir(), "Test Project")
	if err != nil {
		t.Fatalf("scaffold.Create() error = %v", err)
	}
	setProjectDir(t, res.Root)
	return res.Root
}

func setProjectDir(t *testing.T, dir string) {
	t.Helper()
	GlobalOpts.ProjectDir = dir
	t.Cleanup(func() { GlobalOpts.ProjectDir = "" })
}

func addExperiment(t *testing.T, root, id string, age time.Duration) string {
	t.Helper()
	dir := filepath.Join(root, "notebook", id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	note := filepath.Join(dir, "notes.rst")
	if err := os.WriteFile(note, []byte("***\nTitle\n***\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	when := time.Now().Add(-age)
	if err := os.Chtimes(dir, when, when); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return dir
}

func TestInitCreatesOpenableProject(t *testing.T) {
	parent := t.TempDir()
	setProjectDir(t, parent)

	if err := runInit(newInitCmd(), []string{"Loop", "dynamics"}); err != nil {
		t.Fatalf("runInit() error = %v", err)
	}

	root := filepath.Join(parent, "loop_dynamics")
	if _, err := workspace.FromDir(root); err != nil {
		t.Errorf("created project is not openable: %v", err)
	}
}

func TestInitRefusesExisting(t *testing.T) {
	parent := t.TempDir()
	setProjectDir(t, parent)

	if err := runInit(newInitCmd(), []string{"twice"}); err != nil {
		t.Fatalf("first runInit() error = %v", err)
	}
	err := runInit(newInitCmd(), []string{"twice"})
	var exists *scaffold.ExistsError
	if !errors.As(err, &exists) {
		t.Errorf("second runInit() error = %v, want ExistsError", err)
	}
}

func TestNoteNewCreatesAndEdits(t *testing.T) {
	root := makeProject(t)
	t.Setenv("EDITOR", "true") // a no-op editor keeps the test headless

	if err := runNoteNew(newNoteNewCmd(), []string{"Test", "gel", "purity"}); err != nil {
		t.Fatalf("runNoteNew() error = %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(root, "notebook", "*_test_gel_purity", "notes.rst"))
	if err != nil || len(matches) != 1 {
		t.Errorf("expected one seeded notes.rst, found %v (err %v)", matches, err)
	}
}

func TestNoteEditResolvesSlug(t *testing.T) {
	root := makeProject(t)
	addExperiment(t, root, "20171005_small_step", 48*time.Hour)
	addExperiment(t, root, "20171210_large_step_with_half_twist", time.Hour)
	t.Setenv("EDITOR", "true")

	if err := runNoteEdit(newNoteEditCmd(), []string{"twist"}); err != nil {
		t.Errorf("runNoteEdit(twist) error = %v", err)
	}

	// Omitted slug means most recent, which is unambiguous here.
	if err := runNoteEdit(newNoteEditCmd(), nil); err != nil {
		t.Errorf("runNoteEdit() error = %v", err)
	}
}

func TestNoteEditOutsideProject(t *testing.T) {
	setProjectDir(t, t.TempDir())

	err := runNoteEdit(newNoteEditCmd(), nil)
	var nf *workspace.NotFoundDirError
	if !errors.As(err, &nf) {
		t.Errorf("runNoteEdit() outside project error = %v, want NotFoundDirError", err)
	}
}

func TestDataLink(t *testing.T) {
	root := makeProject(t)
	raw := filepath.Join(root, "data", "20171005_gel.tif")
	if err := os.WriteFile(raw, []byte("img"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	exptDir := addExperiment(t, root, "20171005_gels", 0)

	if err := runDataLink(newDataLinkCmd(), []string{"gel.tif", exptDir}); err != nil {
		t.Fatalf("runDataLink() error = %v", err)
	}

	target, err := os.Readlink(filepath.Join(exptDir, "20171005_gel.tif"))
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if target != raw {
		t.Errorf("link target = %q, want %q", target, raw)
	}
}

func TestConfigOutsideProject(t *testing.T) {
	setProjectDir(t, t.TempDir())

	cfg, err := loadConfigAnywhere()
	if err != nil {
		t.Fatalf("loadConfigAnywhere() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("loadConfigAnywhere() returned nil config")
	}
}

func TestSlugArg(t *testing.T) {
	if got := slugArg(nil); got != "" {
		t.Errorf("slugArg(nil) = %q, want empty", got)
	}
	if got := slugArg([]string{"twist"}); got != "twist" {
		t.Errorf("slugArg([twist]) = %q", got)
	}
}
