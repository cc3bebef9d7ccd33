package reader

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/wetbench/labbook/internal/workspace"
)

func init() {
	register("pdf", 0, []string{".pdf"}, func(path string, args []string) Reader {
		return &pdfReader{path: path}
	})
}

type pdfReader struct {
	path string
}

func (r *pdfReader) Name() string { return "pdf" }

func (r *pdfReader) Extensions() []string { return []string{".pdf"} }

func (r *pdfReader) Show(w *workspace.Workspace, out io.Writer) error {
	return w.LaunchPDF(r.path)
}

func (r *pdfReader) Edit(w *workspace.Workspace) error {
	return &UnsupportedError{Op: "edit", Path: r.path, Reader: r.Name()}
}

func (r *pdfReader) Print(w *workspace.Workspace) error {
	return lpr(r.path)
}

func (r *pdfReader) Save(w *workspace.Workspace, dir string) (string, error) {
	return saveStampedCopy(r.path, dir)
}

// lpr prints a file single-sided, matching how protocols get taped into a
// paper notebook.
func lpr(path string) error {
	cmd := exec.Command("lpr", "-o", "sides=one-sided", path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("lpr failed: %w", err)
	}
	return nil
}

// lprText prints text content by feeding it to lpr on stdin. The title
// shows up in the print queue.
func lprText(content, title string) error {
	cmd := exec.Command("lpr", "-o", "sides=one-sided", "-T", title)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("lpr failed: %w", err)
	}
	return nil
}
