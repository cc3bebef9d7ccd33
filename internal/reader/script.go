package reader

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/wetbench/labbook/internal/workspace"
)

// interpreters maps script extensions to the program that runs them.
var interpreters = map[string]string{
	".py": "python",
	".sh": "bash",
}

func init() {
	register("script", 0, []string{".py", ".sh"}, func(path string, args []string) Reader {
		return &scriptReader{path: path, args: args}
	})
}

// scriptReader shows a protocol by executing it; the protocol text is
// whatever the script prints.
type scriptReader struct {
	path string
	args []string
}

func (r *scriptReader) Name() string { return "script" }

func (r *scriptReader) Extensions() []string { return []string{".py", ".sh"} }

func (r *scriptReader) interpreter() string {
	return interpreters[strings.ToLower(filepath.Ext(r.path))]
}

func (r *scriptReader) commandLine() []string {
	return append([]string{r.interpreter(), r.path}, r.args...)
}

func (r *scriptReader) Show(w *workspace.Workspace, out io.Writer) error {
	words := r.commandLine()
	cmd := exec.Command(words[0], words[1:]...)
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("protocol script failed: %w", err)
	}
	return nil
}

func (r *scriptReader) Edit(w *workspace.Workspace) error {
	return w.LaunchEditor(r.path)
}

func (r *scriptReader) Print(w *workspace.Workspace) error {
	output, err := r.capture()
	if err != nil {
		return err
	}
	return lprText(output, filepath.Base(r.path))
}

// Save runs the script and writes its output to a date-stamped text file,
// so the saved protocol reflects the arguments it was run with.
func (r *scriptReader) Save(w *workspace.Workspace, dir string) (string, error) {
	output, err := r.capture()
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	stem := strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path))
	dest := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", time.Now().Format("20060102"), stem))
	if err := os.WriteFile(dest, []byte(output), 0o644); err != nil {
		return "", fmt.Errorf("failed to save protocol output: %w", err)
	}
	return dest, nil
}

func (r *scriptReader) capture() (string, error) {
	words := r.commandLine()
	cmd := exec.Command(words[0], words[1:]...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("protocol script failed: %w", err)
	}
	return string(out), nil
}
