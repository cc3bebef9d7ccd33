package collector

import (
	"fmt"
	"io"
	"strings"

	"github.com/wetbench/labbook/internal/workspace"
)

// defaultRsyncCmd only copies files the project doesn't already have, so
// re-running sync after deleting a bad file won't resurrect it by
// accident but also won't re-transfer everything.
const defaultRsyncCmd = "rsync --archive --ignore-existing {src} {dest}"

// rsyncCollector copies from a local or remote source into the data
// directory using rsync (or whatever command the config substitutes).
type rsyncCollector struct {
	src     string
	dest    string
	cmd     string
	precmd  string
	postcmd string
}

func newRsyncCollector(src workspace.DataSource) (Collector, error) {
	if src.Src == "" {
		return nil, fmt.Errorf("rsync data source has no src")
	}

	dest := src.Dest
	if dest == "" {
		dest = "."
	}
	cmd := src.Cmd
	if cmd == "" {
		cmd = defaultRsyncCmd
	}

	return &rsyncCollector{
		src:     expandHome(src.Src),
		dest:    expandHome(dest),
		cmd:     cmd,
		precmd:  src.PreCmd,
		postcmd: src.PostCmd,
	}, nil
}

func (c *rsyncCollector) Dest() string { return c.dest }

// commandLine substitutes {src} and {dest} into the configured command.
// destDir is the resolved destination inside the data directory.
func (c *rsyncCollector) commandLine(destDir string) []string {
	words := strings.Fields(c.cmd)
	argv := make([]string, len(words))
	for i, w := range words {
		w = strings.ReplaceAll(w, "{src}", c.src)
		w = strings.ReplaceAll(w, "{dest}", destDir)
		argv[i] = w
	}
	return argv
}

func (c *rsyncCollector) Sync(w *workspace.Workspace, out io.Writer, verbose bool) error {
	dataDir := w.DataDir()
	destDir := c.dest

	if err := runShellLines(c.precmd, dataDir, out, verbose); err != nil {
		return err
	}

	// The copy itself runs without a shell so spaces and quotes in file
	// names can't confuse it.
	if err := runCommand(c.commandLine(destDir), dataDir, out, verbose); err != nil {
		return fmt.Errorf("sync of %s failed: %w", c.src, err)
	}

	return runShellLines(c.postcmd, dataDir, out, verbose)
}
