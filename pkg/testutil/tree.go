package testutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/bmad-code/agent-teams/pkg/types"
	"github.com/stretchr/testify/require"
)

// Snapshot describes every path below root, keyed by slash-separated
// relative path. Files map to "file <mode> <sha256>", directories to
// "dir <mode>" and symlinks to "symlink". A missing root yields an empty
// snapshot.
func Snapshot(fsys types.FS, root string) (map[string]string, error) {
	out := map[string]string{}
	if _, err := fsys.Lstat(root); err != nil {
		if isNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	if err := walk(fsys, root, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(fsys types.FS, root, rel string, out map[string]string) error {
	dir := filepath.Join(root, filepath.FromSlash(rel))
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		full := filepath.Join(dir, e.Name())

		info, err := fsys.Lstat(full)
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			out[childRel] = "symlink"
		case info.IsDir():
			out[childRel] = fmt.Sprintf("dir %o", info.Mode().Perm())
			if err := walk(fsys, root, childRel, out); err != nil {
				return err
			}
		default:
			data, err := fsys.ReadFile(full)
			if err != nil {
				return err
			}
			sum := sha256.Sum256(data)
			out[childRel] = fmt.Sprintf("file %o %s", info.Mode().Perm(), hex.EncodeToString(sum[:]))
		}
	}
	return nil
}

// TreeHash folds Snapshot into a single digest.
func TreeHash(t *testing.T, fsys types.FS, root string) string {
	t.Helper()
	snap, err := Snapshot(fsys, root)
	require.NoError(t, err)

	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('\t')
		b.WriteString(snap[k])
		b.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
