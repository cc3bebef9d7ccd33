package workspace

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// LaunchEditor opens path in the configured editor and waits for it to
// exit. Resolution order: config `editor`, $EDITOR, vim.
func (w *Workspace) LaunchEditor(path string) error {
	return runForeground(w.config.editorCommand(), path)
}

// LaunchTerminal spawns a new terminal with its working directory set to
// dir. The terminal is detached; labbook does not wait for it.
func (w *Workspace) LaunchTerminal(dir string) error {
	words := strings.Fields(w.config.terminalCommand())
	cmd := exec.Command(words[0], words[1:]...)
	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch terminal: %w", err)
	}
	// Detach so the terminal outlives this process.
	return cmd.Process.Release()
}

// LaunchPDF opens path in the configured PDF viewer, detached.
func (w *Workspace) LaunchPDF(path string) error {
	return startDetached(w.config.pdfCommand(), path)
}

// LaunchBrowser opens url in the configured browser, detached. With
// newWindow the configured new-window flag is inserted before the url.
func (w *Workspace) LaunchBrowser(url string, newWindow bool) error {
	command := w.config.browserCommand()
	if newWindow {
		command += " " + w.config.browserNewWindowFlag()
	}
	return startDetached(command, url)
}

// runForeground word-splits command, appends arg, and runs it attached to
// the current terminal. Word-splitting lets config values carry flags,
// e.g. `editor: "emacs -nw"`.
func runForeground(command, arg string) error {
	words := strings.Fields(command)
	cmd := exec.Command(words[0], append(words[1:], arg)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", words[0], err)
	}
	return nil
}

// startDetached launches command with arg appended and releases it.
func startDetached(command, arg string) error {
	words := strings.Fields(command)
	cmd := exec.Command(words[0], append(words[1:], arg)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %s: %w", words[0], err)
	}
	return cmd.Process.Release()
}
