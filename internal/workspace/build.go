package workspace

import (
	"fmt"
	"os"
	"os/exec"
)

// BuildNotebook renders the notebook to HTML by running make in the
// notebook directory. With force, the build directory is cleaned first so
// Sphinx rebuilds from scratch.
func (w *Workspace) BuildNotebook(force bool) error {
	targets := []string{"html"}
	if force {
		targets = []string{"clean", "html"}
	}

	cmd := exec.Command("make", targets...)
	cmd.Dir = w.NotebookDir()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notebook build failed: %w", err)
	}
	return nil
}
