package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for install operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	Chmod(name string, mode fs.FileMode) error
	Rename(oldpath, newpath string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error

	// Lstat does not follow a trailing symlink. Implementations without
	// symlink support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}

// File is the subset of an open file the installer writes through.
// *os.File and afero.File both satisfy it.
type File interface {
	io.Writer
	io.Closer
	Name() string
	Sync() error
}
