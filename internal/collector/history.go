package collector

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/wetbench/labbook/internal/workspace"
)

const historyFile = "sync_history.jsonl"

// SourceResult records the outcome of syncing one data source.
type SourceResult struct {
	Dest   string `json:"dest"`
	Status string `json:"status"` // "ok" or "failed"
	Error  string `json:"error,omitempty"`
}

// Run records one `data sync` invocation.
type Run struct {
	ID         string         `json:"id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Sources    []SourceResult `json:"sources"`
}

// SyncAll runs every collector (optionally limited to the given dests),
// appends a history record, and returns the run. A failing source does
// not stop the remaining ones; the first error is returned after all
// sources have been attempted.
func SyncAll(w *workspace.Workspace, dests []string, out io.Writer, verbose bool) (*Run, error) {
	collectors, err := FromConfig(w.Config())
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(dests))
	for _, d := range dests {
		wanted[d] = true
	}

	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}

	var firstErr error
	for _, c := range collectors {
		if len(wanted) > 0 && !wanted[c.Dest()] {
			continue
		}

		result := SourceResult{Dest: c.Dest(), Status: "ok"}
		if err := c.Sync(w, out, verbose); err != nil {
			result.Status = "failed"
			result.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		run.Sources = append(run.Sources, result)
	}
	run.FinishedAt = time.Now()

	if err := appendRun(w, run); err != nil && firstErr == nil {
		firstErr = err
	}
	return run, firstErr
}

// appendRun adds a run record to the workspace sync history.
func appendRun(w *workspace.Workspace, run *Run) error {
	dir, err := w.StateDir()
	if err != nil {
		return err
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal sync run: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, historyFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open sync history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write sync history: %w", err)
	}
	return nil
}

// History loads past sync runs, oldest first. Corrupt lines are skipped
// with a warning rather than poisoning the whole history.
func History(w *workspace.Workspace) ([]*Run, error) {
	dir, err := w.StateDir()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, historyFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open sync history: %w", err)
	}
	defer f.Close()

	var runs []*Run
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var run Run
		if err := json.Unmarshal(line, &run); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping bad sync history line: %v\n", err)
			continue
		}
		runs = append(runs, &run)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sync history: %w", err)
	}
	return runs, nil
}
