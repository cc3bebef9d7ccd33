package workspace

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is a named resource inside a workspace collection: an experiment
// directory, a protocol file, or a data file. The identifier is unique
// within its collection, so substring matching is well-defined.
type Entry struct {
	ID      string    // identifier matched against slugs
	Path    string    // absolute path of the underlying file or directory
	ModTime time.Time // modification time, used when no slug is given
}

// NotFoundError indicates a slug matched nothing, or that the collection
// was empty when the most recent entry was requested.
type NotFoundError struct {
	Kind string // what was being looked for, e.g. "experiments"
	Slug string // empty when the collection itself was empty
}

func (e *NotFoundError) Error() string {
	if e.Slug == "" {
		return fmt.Sprintf("no %s found", e.Kind)
	}
	return fmt.Sprintf("no %s matching %q", e.Kind, e.Slug)
}

// AmbiguousSlugError indicates a slug matched two or more entries. Matches
// preserve the order of the source collection so callers can present them
// for disambiguation.
type AmbiguousSlugError struct {
	Kind    string
	Slug    string
	Matches []Entry
}

func (e *AmbiguousSlugError) Error() string {
	ids := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		ids[i] = m.ID
	}
	return fmt.Sprintf("%q matches %d %s: %s", e.Slug, len(e.Matches), e.Kind, strings.Join(ids, ", "))
}

// Resolve picks exactly one entry from the collection. An empty slug means
// "the most recent entry". A non-empty slug is matched case-insensitively
// as a substring of each entry's identifier; zero matches is a
// NotFoundError, two or more is an AmbiguousSlugError carrying the full
// match set. Resolve never modifies its input.
func Resolve(entries []Entry, slug, kind string) (Entry, error) {
	if slug == "" {
		return mostRecent(entries, kind)
	}

	needle := strings.ToLower(slug)
	matches := make([]Entry, 0, 1)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.ID), needle) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, &NotFoundError{Kind: kind, Slug: slug}
	case 1:
		return matches[0], nil
	default:
		return Entry{}, &AmbiguousSlugError{Kind: kind, Slug: slug, Matches: matches}
	}
}

// mostRecent returns the entry with the latest modification time. Entries
// with identical times are ordered by path so the result is deterministic.
func mostRecent(entries []Entry, kind string) (Entry, error) {
	if len(entries) == 0 {
		return Entry{}, &NotFoundError{Kind: kind}
	}

	best := entries[0]
	for _, e := range entries[1:] {
		if e.ModTime.After(best.ModTime) {
			best = e
		} else if e.ModTime.Equal(best.ModTime) && e.Path > best.Path {
			best = e
		}
	}
	return best, nil
}

// SortByModTime orders entries newest first, breaking ties by path. Used
// by listing commands so output matches what an empty slug would pick.
func SortByModTime(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].ModTime.Equal(entries[j].ModTime) {
			return entries[i].Path > entries[j].Path
		}
		return entries[i].ModTime.After(entries[j].ModTime)
	})
}
