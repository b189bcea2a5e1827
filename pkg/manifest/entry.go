package manifest

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmad-code/agent-teams/pkg/errors"
)

// Kind distinguishes file entries from directory entries.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

const (
	DefaultFileMode fs.FileMode = 0644
	DefaultDirMode  fs.FileMode = 0755
)

// Entry is one item to install.
type Entry struct {
	// Source identifies where the content comes from (an embedded asset path).
	// Empty for directories and inline entries.
	Source string

	// Destination is the slash-separated path relative to the target root.
	Destination string

	Kind Kind
	Mode fs.FileMode

	// Data is inline content. When set it wins over Source.
	Data []byte

	fsys fs.FS
}

// Source enumerates manifest entries.
type Source interface {
	Entries() ([]Entry, error)
}

// File returns a file entry with inline content.
func File(dest string, data []byte) Entry {
	return Entry{Destination: dest, Kind: KindFile, Mode: DefaultFileMode, Data: data}
}

// Dir returns a directory entry.
func Dir(dest string) Entry {
	return Entry{Destination: dest, Kind: KindDirectory, Mode: DefaultDirMode}
}

// FromFS returns a file entry whose content is read lazily from fsys.
func FromFS(fsys fs.FS, src, dest string) Entry {
	return Entry{Source: src, Destination: dest, Kind: KindFile, Mode: DefaultFileMode, fsys: fsys}
}

// IsDir reports whether the entry is a directory entry.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Content returns the bytes to write for a file entry.
func (e Entry) Content() ([]byte, error) {
	if e.IsDir() {
		return nil, nil
	}
	if e.Data != nil {
		return e.Data, nil
	}
	if e.fsys == nil {
		return nil, errors.Newf(errors.ErrInvalidManifest, "entry %s has no content", e.Destination)
	}
	data, err := fs.ReadFile(e.fsys, e.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidManifest, "reading asset %s", e.Source)
	}
	return data, nil
}

func (e Entry) String() string {
	if e.IsDir() {
		return e.Destination + "/"
	}
	return e.Destination
}

// Normalize sorts entries by destination and rejects duplicate destinations.
// It returns a new slice; the input is left untouched.
func Normalize(entries []Entry) ([]Entry, error) {
	out := make([]Entry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Destination < out[j].Destination
	})

	for i := 1; i < len(out); i++ {
		if out[i].Destination == out[i-1].Destination {
			return nil, errors.Newf(errors.ErrInvalidManifest, "duplicate destination %q", out[i].Destination)
		}
	}

	return out, nil
}

// WithParents adds a directory entry for every parent directory of the given
// entries that is not already present.
func WithParents(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Destination] = true
	}

	out := append([]Entry(nil), entries...)
	for _, e := range entries {
		for dir := path.Dir(e.Destination); isParentCandidate(dir); dir = path.Dir(dir) {
			if seen[dir] {
				continue
			}
			seen[dir] = true
			out = append(out, Dir(dir))
		}
	}
	return out
}

func isParentCandidate(dir string) bool {
	return dir != "." && dir != ".." && !strings.HasPrefix(dir, "/") && !strings.HasPrefix(dir, "../")
}

// staticSource is a fixed, in-memory Source.
type staticSource struct {
	entries []Entry
}

// NewStatic returns a Source over the given entries. Parents are not added.
func NewStatic(entries ...Entry) Source {
	return &staticSource{entries: entries}
}

func (s *staticSource) Entries() ([]Entry, error) {
	return Normalize(s.entries)
}
