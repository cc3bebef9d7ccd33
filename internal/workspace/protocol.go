package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProtocolDirs returns every directory searched for protocols: the
// in-project protocols/ directory first, then any shared directories from
// config. Directories that don't exist are skipped.
func (w *Workspace) ProtocolDirs() []string {
	dirs := []string{w.ProtocolsDir()}
	for _, d := range w.config.ProtocolDirs {
		dirs = append(dirs, expandHome(d))
	}

	existing := dirs[:0]
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			existing = append(existing, d)
		}
	}
	return existing
}

// ProtocolEntries lists every protocol file across the search directories.
// Identifiers are paths relative to their search directory, so a protocol
// can live in a subdirectory and still be matched by name.
func (w *Workspace) ProtocolEntries() ([]Entry, error) {
	var entries []Entry
	seen := make(map[string]bool)

	for _, dir := range w.ProtocolDirs() {
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			// Earlier search dirs shadow later ones.
			if seen[rel] {
				return nil
			}
			seen[rel] = true

			info, err := d.Info()
			if err != nil {
				return err
			}
			entries = append(entries, Entry{ID: rel, Path: path, ModTime: info.ModTime()})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan protocols in %s: %w", dir, err)
		}
	}
	return entries, nil
}

// PickProtocol resolves a slug to a single protocol file path.
func (w *Workspace) PickProtocol(slug string) (string, error) {
	entries, err := w.ProtocolEntries()
	if err != nil {
		return "", err
	}
	entry, err := Resolve(entries, slug, "protocols")
	if err != nil {
		return "", err
	}
	return entry.Path, nil
}

// ListProtocols groups matching protocols by search directory, preserving
// search order. Used by `labbook protocol ls`.
func (w *Workspace) ListProtocols(slug string) (map[string][]string, []string, error) {
	dirs := w.ProtocolDirs()
	entries, err := w.ProtocolEntries()
	if err != nil {
		return nil, nil, err
	}

	needle := strings.ToLower(slug)
	grouped := make(map[string][]string, len(dirs))
	for _, entry := range entries {
		if slug != "" && !strings.Contains(strings.ToLower(entry.ID), needle) {
			continue
		}
		for _, dir := range dirs {
			if strings.HasPrefix(entry.Path, dir+string(filepath.Separator)) {
				grouped[dir] = append(grouped[dir], entry.ID)
				break
			}
		}
	}
	return grouped, dirs, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
