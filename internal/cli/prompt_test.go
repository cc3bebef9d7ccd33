package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/wetbench/labbook/internal/workspace"
)

func TestDisambiguateNonInteractive(t *testing.T) {
	// Test stdin is not a terminal, so the ambiguity must surface as an
	// error carrying the candidate list.
	amb := &workspace.AmbiguousSlugError{
		Kind: "experiments",
		Slug: "step",
		Matches: []workspace.Entry{
			{ID: "20171210_large_step_with_half_twist", ModTime: time.Now()},
			{ID: "20171005_small_step", ModTime: time.Now()},
		},
	}

	_, err := disambiguate(amb)
	var got *workspace.AmbiguousSlugError
	if !errors.As(err, &got) {
		t.Fatalf("disambiguate() error = %v, want AmbiguousSlugError", err)
	}
	if len(got.Matches) != 2 {
		t.Errorf("error carries %d matches, want 2", len(got.Matches))
	}
}

func TestPickExperimentPropagatesAmbiguity(t *testing.T) {
	root := makeProject(t)
	addExperiment(t, root, "20171005_small_step", 48*time.Hour)
	addExperiment(t, root, "20171210_large_step_with_half_twist", time.Hour)

	w, err := workspace.FromDir(root)
	if err != nil {
		t.Fatalf("FromDir() error = %v", err)
	}

	_, err = pickExperiment(w, "step")
	var amb *workspace.AmbiguousSlugError
	if !errors.As(err, &amb) {
		t.Fatalf("pickExperiment(step) error = %v, want AmbiguousSlugError", err)
	}

	expt, err := pickExperiment(w, "twist")
	if err != nil {
		t.Fatalf("pickExperiment(twist) error = %v", err)
	}
	if expt.ID() != "20171210_large_step_with_half_twist" {
		t.Errorf("pickExperiment(twist) = %s", expt.ID())
	}
}
