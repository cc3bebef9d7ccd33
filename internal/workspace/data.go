package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataEntries lists every file under data/, recursively. Identifiers are
// paths relative to the data directory.
func (w *Workspace) DataEntries() ([]Entry, error) {
	var entries []Entry
	root := w.DataDir()

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, Entry{ID: rel, Path: path, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan data directory: %w", err)
	}
	return entries, nil
}

// PickData resolves a slug to a single data file path.
func (w *Workspace) PickData(slug string) (string, error) {
	entries, err := w.DataEntries()
	if err != nil {
		return "", err
	}
	entry, err := Resolve(entries, slug, "data files")
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

// ListData returns the relative paths of data files containing the slug,
// in walk order. An empty slug lists everything.
func (w *Workspace) ListData(slug string) ([]string, error) {
	entries, err := w.DataEntries()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(slug)
	var rels []string
	for _, entry := range entries {
		if slug == "" || strings.Contains(strings.ToLower(entry.ID), needle) {
			rels = append(rels, entry.ID)
		}
	}
	return rels, nil
}

// LinkData symlinks the data file matched by slug into dir (default the
// current directory). The link keeps the data file's base name. This is
// how curated data gets surfaced inside experiment directories while the
// data directory stays the single source of truth.
func (w *Workspace) LinkData(slug, dir string) (string, error) {
	target, err := w.PickData(slug)
	if err != nil {
		return "", err
	}
	return w.LinkFile(target, dir)
}

// LinkFile symlinks an already-resolved data file into dir.
func (w *Workspace) LinkFile(target, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	link := filepath.Join(dir, filepath.Base(target))
	if err := os.Symlink(target, link); err != nil {
		return "", fmt.Errorf("failed to link %s: %w", target, err)
	}
	return link, nil
}
