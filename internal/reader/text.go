package reader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wetbench/labbook/internal/workspace"
)

func init() {
	register("text", 0, []string{".txt", ".md", ".rst"}, func(path string, args []string) Reader {
		return &textReader{path: path}
	})
}

// textReader shows plain-text protocols by printing them.
type textReader struct {
	path string
}

func (r *textReader) Name() string { return "text" }

func (r *textReader) Extensions() []string { return []string{".txt", ".md", ".rst"} }

func (r *textReader) Show(w *workspace.Workspace, out io.Writer) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to read protocol: %w", err)
	}
	_, err = fmt.Fprintln(out, strings.TrimSpace(string(data)))
	return err
}

func (r *textReader) Edit(w *workspace.Workspace) error {
	return w.LaunchEditor(r.path)
}

func (r *textReader) Print(w *workspace.Workspace) error {
	return lpr(r.path)
}

func (r *textReader) Save(w *workspace.Workspace, dir string) (string, error) {
	return saveStampedCopy(r.path, dir)
}

// saveStampedCopy copies path into dir under a date-prefixed name so the
// saved protocol records when it was used.
func saveStampedCopy(path, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	dest := filepath.Join(dir, fmt.Sprintf("%s_%s", time.Now().Format("20060102"), filepath.Base(path)))

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read protocol: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save protocol copy: %w", err)
	}
	return dest, nil
}
