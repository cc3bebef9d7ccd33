package reader

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wetbench/labbook/internal/workspace"
)

var officeExtensions = []string{".docx", ".doc", ".xlsx", ".xls", ".odt", ".ods"}

func init() {
	register("document", 0, officeExtensions, func(path string, args []string) Reader {
		return &docReader{path: path}
	})
}

// docReader handles office documents via libreoffice. Show opens the
// document; printing converts to PDF headlessly first.
type docReader struct {
	path string
}

func (r *docReader) Name() string { return "document" }

func (r *docReader) Extensions() []string { return officeExtensions }

func (r *docReader) Show(w *workspace.Workspace, out io.Writer) error {
	cmd := exec.Command("libreoffice", r.path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch libreoffice: %w", err)
	}
	return cmd.Process.Release()
}

func (r *docReader) Edit(w *workspace.Workspace) error {
	return &UnsupportedError{Op: "edit", Path: r.path, Reader: r.Name()}
}

func (r *docReader) Print(w *workspace.Workspace) error {
	convert := exec.Command("libreoffice", "--headless", "--invisible", "--convert-to-pdf", r.path)
	convert.Stdout = os.Stdout
	convert.Stderr = os.Stderr
	if err := convert.Run(); err != nil {
		return fmt.Errorf("pdf conversion failed: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path))
	return lpr(stem + ".pdf")
}

func (r *docReader) Save(w *workspace.Workspace, dir string) (string, error) {
	return saveStampedCopy(r.path, dir)
}
