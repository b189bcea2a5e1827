package installer

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bmad-code/agent-teams/pkg/errors"
	"github.com/bmad-code/agent-teams/pkg/paths"
	"github.com/bmad-code/agent-teams/pkg/types"
)

// targetLock is an advisory lock file inside the target root.
type targetLock struct {
	fs   types.FS
	path string
}

func acquireLock(fsys types.FS, root string) (*targetLock, error) {
	lockPath := filepath.Join(root, paths.LockFileName)

	f, err := fsys.OpenFile(lockPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return nil, errors.Newf(errors.ErrLocked,
				"another install is running in %s (remove %s if it is stale)", root, lockPath).
				WithDetail("lock", lockPath)
		}
		return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to create lock file %s", lockPath)
	}

	_, werr := f.Write([]byte(strconv.Itoa(os.Getpid()) + "\n"))
	cerr := f.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = fsys.Remove(lockPath)
		return nil, errors.Wrapf(werr, errors.ErrIOFailure, "failed to write lock file %s", lockPath)
	}

	return &targetLock{fs: fsys, path: lockPath}, nil
}

func (l *targetLock) release() error {
	if err := l.fs.Remove(l.path); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrIOFailure, "failed to remove lock file %s", l.path)
	}
	return nil
}
