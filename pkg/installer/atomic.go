package installer

import (
	"crypto/rand"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/types"
)

// tempMarker appears in every temporary file name so leftovers are
// recognizable.
const tempMarker = ".agent-teams-tmp-"

// tempName returns a hidden sibling name for target.
func tempName(target string) (string, error) {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	name := "." + filepath.Base(target) + tempMarker + hex.EncodeToString(b[:])
	return filepath.Join(filepath.Dir(target), name), nil
}

// atomicWrite writes data to a temporary file next to target, syncs it,
// applies perm and renames it over target. The temporary file is removed on
// any failure, leaving target untouched.
func atomicWrite(fsys types.FS, target string, data []byte, perm fs.FileMode) (err error) {
	tmpPath, err := tempName(target)
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to generate temp file name")
	}

	f, err := fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to create temp file")
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = fsys.Remove(tmpPath)
	}()

	if _, err = f.Write(data); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to write temp file")
	}
	if err = f.Sync(); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to sync temp file")
	}
	closed = true
	if err = f.Close(); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to close temp file")
	}
	if err = fsys.Chmod(tmpPath, perm); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to set permissions")
	}
	if err = fsys.Rename(tmpPath, target); err != nil {
		return errors.Wrap(err, errors.ErrIOFailure, "failed to rename temp file into place")
	}
	return nil
}
