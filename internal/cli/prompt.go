package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/wetbench/labbook/internal/tui"
	"github.com/wetbench/labbook/internal/workspace"
)

// maxPickerItems caps how large a match set the full-screen picker is
// used for; bigger sets fall back to the numbered prompt.
const maxPickerItems = 20

// disambiguate resolves an AmbiguousSlugError by asking the user which
// entry they meant. Without a terminal on stdin the error is returned
// as-is so scripts fail with the candidate list.
func disambiguate(amb *workspace.AmbiguousSlugError) (workspace.Entry, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return workspace.Entry{}, amb
	}

	if term.IsTerminal(int(os.Stdout.Fd())) && len(amb.Matches) <= maxPickerItems {
		items := make([]tui.Item, len(amb.Matches))
		for i, m := range amb.Matches {
			items[i] = tui.Item{ID: m.ID, Detail: m.ModTime.Format("Jan _2 2006")}
		}
		idx, err := tui.Pick(fmt.Sprintf("%q is ambiguous. Did you mean?", amb.Slug), items)
		if err == nil {
			return amb.Matches[idx], nil
		}
		if errors.Is(err, tui.ErrCanceled) {
			return workspace.Entry{}, err
		}
		// The picker can fail on odd terminals; the line prompt still works.
	}

	return promptEntry(amb)
}

// promptEntry is the plain-terminal fallback: a numbered list on stderr
// and a line read from stdin.
func promptEntry(amb *workspace.AmbiguousSlugError) (workspace.Entry, error) {
	fmt.Fprintf(os.Stderr, "%q is ambiguous. Did you mean?\n", amb.Slug)
	for i, m := range amb.Matches {
		fmt.Fprintf(os.Stderr, "  %d) %s\n", i+1, m.ID)
	}
	fmt.Fprintf(os.Stderr, "> ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return workspace.Entry{}, fmt.Errorf("failed to read selection: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(amb.Matches) {
		return workspace.Entry{}, fmt.Errorf("invalid selection %q", strings.TrimSpace(line))
	}
	return amb.Matches[n-1], nil
}

// pickExperiment resolves a slug to an experiment, handling ambiguity
// interactively.
func pickExperiment(w *workspace.Workspace, slug string) (*workspace.Experiment, error) {
	expt, err := w.PickExperiment(slug)
	var amb *workspace.AmbiguousSlugError
	if !errors.As(err, &amb) {
		return expt, err
	}

	chosen, err := disambiguate(amb)
	if err != nil {
		return nil, err
	}
	all, err := w.Experiments()
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID() == chosen.ID {
			return e, nil
		}
	}
	return nil, &workspace.NotFoundError{Kind: "experiments", Slug: chosen.ID}
}

// pickPath resolves a slug using pick (PickProtocol or PickData),
// handling ambiguity interactively. The chosen entry's path is exact, so
// no second resolution pass is needed.
func pickPath(pick func(string) (string, error), slug string) (string, error) {
	path, err := pick(slug)
	var amb *workspace.AmbiguousSlugError
	if !errors.As(err, &amb) {
		return path, err
	}

	chosen, err := disambiguate(amb)
	if err != nil {
		return "", err
	}
	return chosen.Path, nil
}
