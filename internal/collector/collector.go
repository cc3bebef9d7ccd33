// Package collector copies external data into a workspace's data
// directory. Collectors are configured through the `data` list in the
// workspace config; each entry names a collector type plus its options.
package collector

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/wetbench/labbook/internal/workspace"
)

// Collector syncs one configured data source into the workspace.
type Collector interface {
	// Dest is the sync destination relative to the data directory,
	// used when `data sync` is limited to particular destinations.
	Dest() string

	// Sync copies whatever is available from the source. Progress output
	// goes to out when verbose.
	Sync(w *workspace.Workspace, out io.Writer, verbose bool) error
}

// builders maps config `type` values to collector constructors.
var builders = map[string]func(src workspace.DataSource) (Collector, error){
	"rsync": newRsyncCollector,
	"usb":   newUsbCollector,
}

// MissingTypeError reports a data source with no `type` key.
type MissingTypeError struct {
	Source workspace.DataSource
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("data source %q has no type", e.Source.Src)
}

// UnknownTypeError reports an unrecognized collector type, listing the
// known ones.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown data collector %q; known collectors: %s", e.Type, strings.Join(KnownTypes(), ", "))
}

// KnownTypes lists the registered collector types, sorted.
func KnownTypes() []string {
	types := make([]string, 0, len(builders))
	for t := range builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// FromConfig maps the workspace's configured data sources to collectors.
func FromConfig(cfg *workspace.Config) ([]Collector, error) {
	collectors := make([]Collector, 0, len(cfg.Data))
	for _, src := range cfg.Data {
		if src.Type == "" {
			return nil, &MissingTypeError{Source: src}
		}
		build, ok := builders[src.Type]
		if !ok {
			return nil, &UnknownTypeError{Type: src.Type}
		}
		c, err := build(src)
		if err != nil {
			return nil, err
		}
		collectors = append(collectors, c)
	}
	return collectors, nil
}

// runCommand executes argv from dir, echoing it first when verbose.
func runCommand(argv []string, dir string, out io.Writer, verbose bool) error {
	if len(argv) == 0 {
		return nil
	}
	if verbose {
		fmt.Fprintf(out, "$ %s\n", strings.Join(argv, " "))
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// runShellLines executes each non-empty line of script through the shell
// from dir. Used for the precmd/postcmd hooks, which are documented as
// shell commands.
func runShellLines(script, dir string, out io.Writer, verbose bool) error {
	for _, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if verbose {
			fmt.Fprintf(out, "$ %s\n", line)
		}
		cmd := exec.Command("sh", "-c", line)
		cmd.Dir = dir
		cmd.Stdout = out
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("hook command failed: %w", err)
		}
	}
	return nil
}

// expandHome replaces a leading ~ without clobbering trailing slashes,
// which are significant to rsync.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return home + path[1:]
		}
	}
	return path
}
